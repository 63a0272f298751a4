package main

import (
	"fmt"

	"github.com/pubky/pubky-app-specs-go/pubkyapp/resource"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/syntax"

	"github.com/urfave/cli/v2"
)

var cmdURI = &cli.Command{
	Name:  "uri",
	Usage: "sub-commands for pubky:// URIs",
	Subcommands: []*cli.Command{
		&cli.Command{
			Name:      "parse",
			Usage:     "parses a URI and outputs owner and resource as JSON",
			ArgsUsage: `<uri>`,
			Action:    runURIParse,
		},
		&cli.Command{
			Name:      "build",
			Usage:     "outputs the URI of a resource",
			ArgsUsage: `<owner> <kind> [<id>]`,
			Action:    runURIBuild,
		},
	},
}

var cmdPath = &cli.Command{
	Name:      "path",
	Usage:     "outputs the storage path of a resource",
	ArgsUsage: `<kind> [<id>]`,
	Action:    runPath,
}

func runURIParse(cctx *cli.Context) error {
	s := cctx.Args().First()
	if s == "" {
		return fmt.Errorf("need to provide URI as argument")
	}
	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}
	parsed, err := resource.NewRegistry(cfg).ParseURI(s)
	if err != nil {
		return err
	}
	return printJSON(cctx.App.Writer, parsed)
}

func runURIBuild(cctx *cli.Context) error {
	args := cctx.Args()
	if args.Len() < 2 {
		return fmt.Errorf("need to provide owner and resource kind as arguments")
	}
	r, err := parseResourceArgs(args.Get(1), args.Get(2))
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}
	uri, err := resource.NewRegistry(cfg).BuildURI(syntax.PubkyID(args.Get(0)), r)
	if err != nil {
		return err
	}
	fmt.Fprintln(cctx.App.Writer, uri)
	return nil
}

func runPath(cctx *cli.Context) error {
	args := cctx.Args()
	if args.Len() < 1 {
		return fmt.Errorf("need to provide resource kind as argument")
	}
	r, err := parseResourceArgs(args.Get(0), args.Get(1))
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}
	path, err := resource.NewRegistry(cfg).BuildPath(r)
	if err != nil {
		return err
	}
	fmt.Fprintln(cctx.App.Writer, path)
	return nil
}

func parseResourceArgs(kind, id string) (resource.Resource, error) {
	k, err := resource.ParseKind(kind)
	if err != nil {
		return resource.Resource{}, err
	}
	if k.Shape() == resource.ShapeSingleton && id != "" {
		return resource.Resource{}, fmt.Errorf("%s does not take an identifier", k)
	}
	return resource.Resource{Kind: k, ID: id}, nil
}
