// Command cirno evaluates a single Cirno source file, doubling as a
// worked example of the cirno package's host embedding API (cirno.Init,
// cirno.Load, cirno.Run, cirno.Unload), a thin consumer of the package's
// generic embedding layer.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hashicorp/logutils"

	"github.com/vv4t/cirno/cirno"
	"github.com/vv4t/cirno/diag"
	"github.com/vv4t/cirno/stdlib"
)

func main() {
	debug := flag.Bool("D", false, "enable the debug allocator report on exit")
	flag.Parse()

	filter := &logutils.LevelFilter{
		Levels:   []logutils.LogLevel{"DEBUG", "WARN", "INFO"},
		MinLevel: logutils.LogLevel("INFO"),
		Writer:   os.Stderr,
	}
	if *debug {
		filter.MinLevel = logutils.LogLevel("DEBUG")
	}
	log.SetOutput(filter)

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: cirno [-D] <file>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	os.Exit(run(path, *debug))
}

// run loads and evaluates path, returning the process exit status:
// 1 if the file could not be read, 0 otherwise (parse/runtime
// diagnostics are printed and counted but do not themselves fail the
// process, per spec.md §6's CLI surface).
func run(path string, debug bool) int {
	rt := cirno.Init(os.Stdout)
	defer rt.Unload()

	tracker := stdlib.NewAllocTracker()
	if debug {
		tracker.Attach(rt)
	}

	stdlib.Math(rt)
	stdlib.IO(rt, os.Stdin)

	tree, err := rt.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cirno: %v\n", err)
		return 1
	}

	if !rt.Failed() {
		rt.Run(tree)
	}
	printDiagnostics(rt.Diagnostics())

	if debug {
		tracker.Report()
	}
	return 0
}

func printDiagnostics(items []diag.Diagnostic) {
	for _, d := range items {
		fmt.Fprintln(os.Stderr, d.String())
	}
}
