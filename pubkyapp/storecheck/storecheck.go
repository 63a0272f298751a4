// Package storecheck validates a directory tree mirroring homeserver storage.
//
// The expected layout is one directory per owner, each holding that owner's public data:
//
//	<root>/<pubky id>/pub/pubky.app/profile.json
//	<root>/<pubky id>/pub/pubky.app/posts/0032X1AHXAH40
//	...
//
// Every file is mapped to its pubky:// URI and run through the importer.
package storecheck

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pubky/pubky-app-specs-go/pubkyapp/config"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/importer"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/resource"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

const DefaultParallelism = 8

type Checker struct {
	Fs     afero.Fs
	Config *config.Config
	Logger *slog.Logger

	// Include restricts the check to files whose slash-separated path relative to the root matches one of these doublestar patterns. Empty means every file.
	Include []string

	Parallelism int
}

// Entry is the outcome for one file.
type Entry struct {
	Path string
	URI  string
	Kind resource.Kind
	Err  error
}

type Report struct {
	Entries []Entry
}

func (r *Report) Failed() int {
	n := 0
	for _, e := range r.Entries {
		if e.Err != nil {
			n++
		}
	}
	return n
}

// Err aggregates every failure, or returns nil if all files passed.
func (r *Report) Err() error {
	var result *multierror.Error
	for _, e := range r.Entries {
		if e.Err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", e.Path, e.Err))
		}
	}
	return result.ErrorOrNil()
}

func NewChecker(fs afero.Fs, cfg *config.Config) *Checker {
	return &Checker{
		Fs:          fs,
		Config:      cfg,
		Logger:      slog.Default(),
		Parallelism: DefaultParallelism,
	}
}

// Check walks root and imports every matching file. The returned error covers the walk itself; per-file failures are in the report.
func (c *Checker) Check(ctx context.Context, root string) (*Report, error) {
	for _, pat := range c.Include {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("invalid include pattern: %q", pat)
		}
	}
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("root", root)

	files, err := c.collect(root)
	if err != nil {
		return nil, err
	}
	logger.Debug("collected files", "count", len(files))

	entries := make([]Entry, len(files))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(c.Parallelism, 1))
	for i, rel := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entries[i] = c.checkFile(logger, root, rel)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return &Report{Entries: entries}, nil
}

// collect returns the slash-separated paths of all regular files below root that pass the include filter.
func (c *Checker) collect(root string) ([]string, error) {
	var files []string
	err := afero.Walk(c.Fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if c.included(rel) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

func (c *Checker) included(rel string) bool {
	if len(c.Include) == 0 {
		return true
	}
	for _, pat := range c.Include {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}

func (c *Checker) checkFile(logger *slog.Logger, root, rel string) Entry {
	ent := Entry{Path: rel}

	owner, path, ok := strings.Cut(rel, "/")
	if !ok {
		ent.Err = fmt.Errorf("%w: file outside of an owner directory", resource.ErrInvalidURI)
		logger.Warn("skipping file", "path", rel, "err", ent.Err)
		return ent
	}
	cfg := config.OrDefault(c.Config)
	ent.URI = cfg.Scheme + "://" + owner + "/" + path

	raw, err := afero.ReadFile(c.Fs, filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		ent.Err = err
		logger.Error("failed to read file", "path", rel, "err", err)
		return ent
	}
	obj, err := importer.Import(c.Config, ent.URI, raw)
	if err != nil {
		ent.Err = err
		logger.Info("invalid object", "path", rel, "uri", ent.URI, "err", err)
		return ent
	}
	ent.Kind = obj.ResourceKind()
	logger.Debug("valid object", "path", rel, "uri", ent.URI, "kind", ent.Kind)
	return ent
}
