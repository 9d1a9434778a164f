// Package cli constructs the procsync command-line interface, wiring the
// Cobra command hierarchy, the configuration loader, and the paired
// diagnostic and console loggers shared by every subcommand.
package cli
