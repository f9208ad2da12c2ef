// Package main provides the xornet CLI.
package main

import (
	"fmt"
	"io"
	"os"
)

const version = "v0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stdout)
		return 0
	}

	var err error
	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "xornet %s\n", version)
		return 0
	case "train":
		err = runTrain(args[1:], stdout, stderr)
	case "trials":
		err = runTrials(args[1:], stdout, stderr)
	case "inspect":
		err = runInspect(args[1:], stdout, stderr)
	case "trace":
		err = runTrace(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}

	if err != nil {
		fmt.Fprintf(stderr, "xornet %s: %v\n", args[0], err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "xornet - sigmoid network trainer for XOR")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  train      Train one network and print progress")
	fmt.Fprintln(w, "  trials     Train many networks and report the convergence rate")
	fmt.Fprintln(w, "  inspect    Print a freshly initialized network")
	fmt.Fprintln(w, "  trace      Print the per-neuron calculations of one input")
	fmt.Fprintln(w, "  version    Show version")
}
