// Package main starts the CrowdPad vote relay.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/frudas24/crowdpad/internal/config"
)

// options are the relay command-line flags.
type options struct {
	debug      bool
	configPath string
	listen     string
	staticDir  string
}

// main is the entrypoint for the relay.
func main() {
	var opts options
	flagSet := pflag.NewFlagSet("crowdpad-relay", pflag.ContinueOnError)
	flagSet.BoolVar(&opts.debug, "debug", false, "enable verbose debug logging")
	flagSet.StringVar(&opts.configPath, "config", config.DefaultFile, "YAML configuration file (missing file is ignored)")
	flagSet.StringVar(&opts.listen, "listen", "", "listen address, overrides LISTEN_ADDR")
	flagSet.StringVar(&opts.staticDir, "static", "", "serve the voter page from this directory, overrides STATIC_DIR")
	flagSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: crowdpad-relay [flags]\n\n")
		flagSet.PrintDefaults()
	}
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		logFatal(err)
	}
	if args := flagSet.Args(); len(args) > 0 {
		logFatal(fmt.Errorf("unexpected argument: %s", args[0]))
	}

	if err := run(opts); err != nil {
		logFatal(err)
	}
}
