package main

import (
	"fmt"
	"os"

	"github.com/pubky/pubky-app-specs-go/pubkyapp"

	_ "github.com/joho/godotenv/autoload"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(-1)
	}
}

func run(args []string) error {
	return newApp().Run(args)
}

func newApp() *cli.App {
	app := &cli.App{
		Name:    "pubky-specs",
		Usage:   "pubky.app data model CLI tool",
		Version: fmt.Sprintf("%s (data model %s)", versioninfo.Short(), pubkyapp.Version),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to a YAML file overriding protocol limits",
				EnvVars: []string{"PUBKY_SPECS_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log verbosity level (eg: warn, info, debug)",
				Value:   "info",
				EnvVars: []string{"PUBKY_SPECS_LOG_LEVEL", "LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:    "log-json",
				Usage:   "log in JSON instead of text",
				EnvVars: []string{"PUBKY_SPECS_LOG_JSON"},
			},
		},
		Before: func(cctx *cli.Context) error {
			configLogger(cctx, os.Stderr)
			return nil
		},
	}
	app.Commands = []*cli.Command{
		cmdID,
		cmdURI,
		cmdPath,
		cmdImport,
		cmdCheckDir,
	}
	return app
}
