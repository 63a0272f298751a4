package main

import (
	"fmt"

	"github.com/pubky/pubky-app-specs-go/pubkyapp/storecheck"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

var cmdCheckDir = &cli.Command{
	Name:      "check-dir",
	Usage:     "validates every object in a directory of homeserver data, laid out as <root>/<owner>/pub/pubky.app/...",
	ArgsUsage: `<root>`,
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "only check files matching this glob, relative to the root (eg: '*/pub/pubky.app/posts/*')",
		},
		&cli.IntFlag{
			Name:  "jobs",
			Usage: "number of files to check concurrently",
			Value: storecheck.DefaultParallelism,
		},
		&cli.BoolFlag{
			Name:  "quiet",
			Usage: "only output failures",
		},
	},
	Action: runCheckDir,
}

func runCheckDir(cctx *cli.Context) error {
	root := cctx.Args().First()
	if root == "" {
		return fmt.Errorf("need to provide directory path as argument")
	}
	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}

	checker := storecheck.NewChecker(afero.NewOsFs(), cfg)
	checker.Include = cctx.StringSlice("include")
	checker.Parallelism = cctx.Int("jobs")

	report, err := checker.Check(cctx.Context, root)
	if err != nil {
		return err
	}
	w := cctx.App.Writer
	for _, e := range report.Entries {
		switch {
		case e.Err != nil:
			fmt.Fprintf(w, "FAIL\t%s\t%s\n", e.Path, e.Err)
		case !cctx.Bool("quiet"):
			fmt.Fprintf(w, "ok\t%s\t%s\n", e.Path, e.Kind)
		}
	}
	fmt.Fprintf(w, "%d checked, %d failed\n", len(report.Entries), report.Failed())
	return report.Err()
}
