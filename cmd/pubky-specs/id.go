package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pubky/pubky-app-specs-go/pubkyapp/resource"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/syntax"

	"github.com/urfave/cli/v2"
)

var cmdID = &cli.Command{
	Name:  "id",
	Usage: "sub-commands for object identifiers",
	Subcommands: []*cli.Command{
		&cli.Command{
			Name:  "timestamp",
			Usage: "outputs a new timestamp identifier",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "at",
					Usage: "instant to encode instead of now, as RFC 3339 or UNIX microseconds",
				},
			},
			Action: runIDTimestamp,
		},
		&cli.Command{
			Name:      "inspect",
			Usage:     "parses a timestamp identifier",
			ArgsUsage: `<id>`,
			Action:    runIDInspect,
		},
		&cli.Command{
			Name:      "check",
			Usage:     "validates identifier syntax",
			ArgsUsage: `<timestamp|hash|pubky|resource-kind> <id>`,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "strict",
					Usage: "also require pubky ids to be valid ed25519 public keys",
				},
			},
			Action: runIDCheck,
		},
		&cli.Command{
			Name:  "hash",
			Usage: "outputs the hash identifier of some content",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "file",
					Usage: "file to hash, or '-' for stdin",
				},
				&cli.StringFlag{
					Name:  "text",
					Usage: "string to hash",
				},
			},
			Action: runIDHash,
		},
	},
}

func runIDTimestamp(cctx *cli.Context) error {
	at := cctx.String("at")
	if at == "" {
		fmt.Fprintln(cctx.App.Writer, syntax.NewTimestampID())
		return nil
	}
	if micros, err := strconv.ParseInt(at, 10, 64); err == nil {
		fmt.Fprintln(cctx.App.Writer, syntax.NewTimestampIDFromMicros(micros))
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return fmt.Errorf("invalid --at value: %w", err)
	}
	fmt.Fprintln(cctx.App.Writer, syntax.NewTimestampIDFromTime(t))
	return nil
}

func runIDInspect(cctx *cli.Context) error {
	s := cctx.Args().First()
	if s == "" {
		return fmt.Errorf("need to provide identifier as argument")
	}
	id, err := syntax.ParseTimestampID(s)
	if err != nil {
		return err
	}
	w := cctx.App.Writer
	fmt.Fprintf(w, "Timestamp (UTC): %s\n", id.Time().UTC().Format(time.RFC3339Nano))
	fmt.Fprintf(w, "Timestamp (Local): %s\n", id.Time().Local().Format(time.RFC3339))
	fmt.Fprintf(w, "Microseconds: %d\n", id.Micros())
	return nil
}

func runIDCheck(cctx *cli.Context) error {
	if cctx.Args().Len() != 2 {
		return fmt.Errorf("need to provide identifier type and identifier as arguments")
	}
	typ, s := cctx.Args().Get(0), cctx.Args().Get(1)

	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}
	switch idType(typ) {
	case "timestamp":
		err = syntax.ValidateTimestampID(cfg, s)
	case "hash":
		_, err = syntax.ParseHashID(s)
	case "pubky":
		var id syntax.PubkyID
		id, err = syntax.ParsePubkyID(s)
		if err == nil && cctx.Bool("strict") {
			err = id.VerifyKey()
		}
	default:
		return fmt.Errorf("no identifier for %q", typ)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cctx.App.Writer, "valid")
	return nil
}

// idType maps a resource kind to the identifier type it is keyed by.
func idType(name string) string {
	switch name {
	case "timestamp", "hash", "pubky":
		return name
	}
	kind, err := resource.ParseKind(name)
	if err != nil {
		return ""
	}
	switch kind {
	case resource.KindPost, resource.KindFile:
		return "timestamp"
	case resource.KindTag, resource.KindBookmark, resource.KindBlob, resource.KindFeed:
		return "hash"
	case resource.KindFollow, resource.KindMute:
		return "pubky"
	}
	return ""
}

func runIDHash(cctx *cli.Context) error {
	path, text := cctx.String("file"), cctx.String("text")
	switch {
	case path != "" && cctx.IsSet("text"):
		return fmt.Errorf("--file and --text are mutually exclusive")
	case path != "":
		data, err := readFileOrStdin(path)
		if err != nil {
			return err
		}
		fmt.Fprintln(cctx.App.Writer, syntax.NewHashID(data))
	case cctx.IsSet("text"):
		fmt.Fprintln(cctx.App.Writer, syntax.NewHashIDFromString(text))
	default:
		return fmt.Errorf("need to provide --file or --text")
	}
	return nil
}
