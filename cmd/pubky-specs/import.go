package main

import (
	"fmt"
	"log/slog"

	"github.com/pubky/pubky-app-specs-go/pubkyapp/importer"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/models"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/resource"

	"github.com/urfave/cli/v2"
)

var cmdImport = &cli.Command{
	Name:      "import",
	Usage:     "validates an object against the URI it is stored at, and outputs the sanitized object",
	ArgsUsage: `<uri> <file|->`,
	Action:    runImport,
}

type importOutput struct {
	Kind   resource.Kind `json:"kind"`
	Object any           `json:"object"`
}

type blobSummary struct {
	ID   string `json:"id"`
	Size int    `json:"size"`
}

func runImport(cctx *cli.Context) error {
	args := cctx.Args()
	if args.Len() != 2 {
		return fmt.Errorf("need to provide URI and file path as arguments")
	}
	uri, path := args.Get(0), args.Get(1)

	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}
	raw, err := readFileOrStdin(path)
	if err != nil {
		return err
	}
	obj, err := importer.Import(cfg, uri, raw)
	if err != nil {
		return err
	}
	slog.Debug("imported object", "uri", uri, "kind", obj.ResourceKind(), "size", len(raw))

	out := importOutput{Kind: obj.ResourceKind(), Object: obj}
	if blob, ok := obj.(models.Blob); ok {
		out.Object = blobSummary{ID: blob.HashID().String(), Size: len(blob.Data)}
	}
	return printJSON(cctx.App.Writer, out)
}
