/*
Lambdaqd starts the lambdaq HTTP API server.

It exposes lambda term parsing, reduction, and tracing over JSON, backed by
a session store that is either kept in memory or persisted to a sqlite
database file.

Usage:

	lambdaqd [flags]

The flags are:

	-v, --version
		Give the current version of lambdaq and then exit.

	-c, --config FILE
		Load settings from the given TOML config file.

	-a, --addr HOST:PORT
		Address to listen on. Defaults to the config file's listen_addr, or
		":8080" if unset.

	--db sqlite|inmem
		Select the session store backend. Defaults to the config file's
		db_type, or "inmem" if unset.

	--data-dir DIR
		Directory to store the sqlite database file in. Required if --db is
		sqlite.

	--unauth-delay MILLIS
		Extra time, in milliseconds, to wait before responding to an
		unauthorized or unauthenticated request. Defaults to the config
		file's unauth_delay_ms, or 1000 if unset. A value less than 1
		disables the delay.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/dekarrin/lambdaq/internal/config"
	"github.com/dekarrin/lambdaq/internal/version"
	"github.com/dekarrin/lambdaq/server"
)

const (
	ExitSuccess = iota
	ExitInitError
	ExitServeError
	ExitBadArgs
)

var (
	returnCode = ExitSuccess

	flagVersion     = pflag.BoolP("version", "v", false, "Gives the version info")
	configFile      = pflag.StringP("config", "c", "", "Load settings from the given TOML config file")
	addrFlag        = pflag.StringP("addr", "a", "", "Address to listen on, e.g. \":8080\"")
	dbTypeFlag      = pflag.String("db", "", "Session store backend: sqlite or inmem")
	dataDirFlag     = pflag.String("data-dir", "", "Directory to store the sqlite database file in")
	unauthDelayFlag = pflag.Int("unauth-delay", 0, "Extra milliseconds to wait before an unauthorized/unauthenticated response; <1 disables")
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

	if *addrFlag != "" {
		cfg.Server.ListenAddr = *addrFlag
	}
	if *dbTypeFlag != "" {
		dbType, err := config.ParseDBType(*dbTypeFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitBadArgs
			return
		}
		cfg.Server.Type = dbType
	}
	if *dataDirFlag != "" {
		cfg.Server.DataDir = *dataDirFlag
	}
	if pflag.CommandLine.Changed("unauth-delay") {
		cfg.Server.UnauthDelayMillis = *unauthDelayFlag
	}

	if err := cfg.Server.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: invalid server config: %s\n", err.Error())
		returnCode = ExitBadArgs
		return
	}

	db, err := cfg.Server.Connect()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	defer db.Close()

	srv := server.New(db, []byte(cfg.Server.JWTSecret), cfg.Server.UnauthDelay())

	fmt.Printf("lambdaqd %s listening on %s\n", version.Current, cfg.Server.ListenAddr)
	if err := srv.ListenAndServe(cfg.Server.ListenAddr); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitServeError
		return
	}
}
