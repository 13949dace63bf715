// Package logging provides the leveled, opt-in-verbose logger the lnkstore
// CLI uses, modeled directly on the teacher's own VerboseMode flag and its
// log.Printf/log.Fatalf calls (main.go) rather than pulling in a structured
// logging library the example pack never uses for a CLI of this size.
package logging

import "log"

// Verbose gates Debugf output. Set by the CLI from its -v/--verbose flag,
// mirroring the teacher's package-level VerboseMode variable.
var Verbose bool

// Debugf logs only when Verbose is set, for step-by-step discovery/patch
// tracing that would otherwise be noise on every run.
func Debugf(format string, args ...any) {
	if Verbose {
		log.Printf("[debug] "+format, args...)
	}
}

// Infof always logs, for user-facing progress ("patched 3 slots in 2 files").
func Infof(format string, args ...any) {
	log.Printf(format, args...)
}

// Warnf always logs, prefixed distinctly from Infof so warnings (e.g. a
// Mach-O signature invalidated by a patch) stand out in batch output.
func Warnf(format string, args ...any) {
	log.Printf("warning: "+format, args...)
}

// Fatalf logs and exits, matching the teacher's own log.Fatalf usage for
// unrecoverable CLI-level errors.
func Fatalf(format string, args ...any) {
	log.Fatalf(format, args...)
}
