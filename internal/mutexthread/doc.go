// Package mutexthread models deferred, timed acquisition of a shared lock.
//
// Launcher.Start spawns a goroutine that waits, acquires a caller-supplied
// SharedLock, holds it for a while, and releases it. The goroutine owns its
// Outcome until it finishes and then hands it to whoever calls Thread.Join.
package mutexthread
