// Package writer implements the write command, which replaces a file's
// contents with a single string and records the result through zap.
package writer
