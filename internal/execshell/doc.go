// Package execshell runs external programs as child processes.
//
// ProcessRunner launches an absolute executable directly, optionally binding
// its standard output to a file, and ShellRunner hands a raw command string to
// a shell interpreter. Both block until the child terminates and report a
// single boolean outcome; failure detail is delivered to a
// CommandEventObserver and never returned to the caller.
package execshell
