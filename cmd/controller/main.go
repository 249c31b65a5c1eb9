// Package main runs the CrowdPad input controller.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/frudas24/crowdpad/internal/config"
)

// options are the controller command-line flags.
type options struct {
	debug      bool
	configPath string
	relayURL   string
	whitelist  string
}

// main is the entrypoint for the controller.
func main() {
	var opts options
	flagSet := pflag.NewFlagSet("crowdpad-controller", pflag.ContinueOnError)
	flagSet.BoolVar(&opts.debug, "debug", false, "enable verbose debug logging")
	flagSet.StringVar(&opts.configPath, "config", config.DefaultFile, "YAML configuration file (missing file is ignored)")
	flagSet.StringVar(&opts.relayURL, "relay", "", "relay listener URL, overrides RELAY_URL")
	flagSet.StringVar(&opts.whitelist, "whitelist", "", "key whitelist file, overrides WHITELIST_PATH")
	flagSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: crowdpad-controller [flags]\n\n")
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
