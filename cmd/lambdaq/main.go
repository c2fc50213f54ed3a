/*
Lambdaq starts an interactive lambda calculus REPL session.

It reads one lambda expression at a time from stdin, parses and reduces it,
and prints the trace of each reduction step, until the input is exhausted or
the user ends the session.

Usage:

	lambdaq [flags]

The flags are:

	-v, --version
		Give the current version of lambdaq and then exit.

	-c, --config FILE
		Load settings from the given TOML config file.

	-s, --strategy byvalue|normalize
		Select the reduction strategy. Defaults to byvalue.

	-m, --mode named|indexed|nameless
		Select the term-printing mode. Defaults to named.

	-t, --typed
		Parse input as simply-typed lambda terms, requiring type annotations
		on every abstraction.

	-d, --direct
		Force reading directly from stdin instead of going through GNU
		readline where possible.

	--save-session FILE
		Write the most recently evaluated expression's full replay session
		to FILE on exit.

	--replay FILE
		Load and re-run a previously saved replay session before reading
		further input.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/dekarrin/lambdaq"
	"github.com/dekarrin/lambdaq/internal/config"
	"github.com/dekarrin/lambdaq/internal/replay"
	"github.com/dekarrin/lambdaq/internal/version"
)

const (
	ExitSuccess = iota
	ExitInitError
	ExitRunError
	ExitBadArgs
)

var (
	returnCode = ExitSuccess

	flagVersion    = pflag.BoolP("version", "v", false, "Gives the version info")
	configFile     = pflag.StringP("config", "c", "", "Load settings from the given TOML config file")
	strategyFlag   = pflag.StringP("strategy", "s", "", "Reduction strategy: byvalue or normalize")
	modeFlag       = pflag.StringP("mode", "m", "", "Term-printing mode: named, indexed, or nameless")
	typedFlag      = pflag.BoolP("typed", "t", false, "Parse input as simply-typed lambda terms")
	forceDirect    = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
	saveSessionTo  = pflag.String("save-session", "", "Write the final replay session to the given file on exit")
	replayFromFile = pflag.String("replay", "", "Load and re-run a previously saved replay session before reading further input")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitBadArgs
		return
	}

	if *strategyFlag != "" {
		if err := cfg.SetStrategyFlag(*strategyFlag); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitBadArgs
			return
		}
	}
	if *modeFlag != "" {
		if err := cfg.SetPrintModeFlag(*modeFlag); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitBadArgs
			return
		}
	}
	cfg.Typed = cfg.Typed || *typedFlag

	var startCommands []string
	if *replayFromFile != "" {
		sesh, err := replay.Load(*replayFromFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
		startCommands = append(startCommands, sesh.Source)
	}

	eng, initErr := lambdaq.New(os.Stdin, os.Stdout, cfg, *forceDirect, *saveSessionTo)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer eng.Close()

	if err := eng.RunUntilQuit(startCommands); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitRunError
		return
	}
}
