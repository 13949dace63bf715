package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/xyproto/linkstore/internal/logging"
)

// useColor reports whether stdout is a real terminal, matching the teacher's
// own habit of only decorating output when it won't be piped or redirected.
var useColor = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

func colorize(code, s string) string {
	if !useColor {
		return s
	}
	return fmt.Sprintf("\x1b[%sm%s\x1b[0m", code, s)
}

func ok(s string) string   { return colorize("32", s) }
func fail(s string) string { return colorize("31", s) }

const usage = `lnkstore: locate and patch named slots in compiled binaries

Usage:
  lnkstore list <binary>
  lnkstore read   [-v] <binary> <name> <type>
  lnkstore embed  [-v] <binary> <name> <type> <value>
  lnkstore patch  [-v] <name> <type> <value> <binary> [<binary>...]
  lnkstore fetch  [-v] -owner O -repo R -tag T -asset A -out PATH [-token TOKEN]

Types: uint8 uint16 uint32 uint64 uint128 int8 int16 int32 int64 int128 bool float32 float64
`

func parseVerbose(args []string) []string {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	verbose := fs.Bool("v", false, "verbose mode")
	verboseLong := fs.Bool("verbose", false, "verbose mode")
	// Flag parsing is deliberately lenient here: a parse error is ignored.
	// An unrecognised flag is reported on stderr and dropped, flag parsing
	// stops there, and everything after it is returned as positional args.
	_ = fs.Parse(args)
	logging.Verbose = *verbose || *verboseLong
	return fs.Args()
}
