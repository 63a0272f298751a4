package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"slices"
	"strings"

	"github.com/pubky/pubky-app-specs-go/pubkyapp/config"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/resource"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/syntax"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// File describes an uploaded file. It is stored at "/pub/pubky.app/files/<timestamp id>"; Src points at the [Blob] with the content.
type File struct {
	Name        string `json:"name"`
	CreatedAt   int64  `json:"created_at"`
	Src         string `json:"src"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

func (File) ResourceKind() resource.Kind {
	return resource.KindFile
}

func (f *File) UnmarshalJSON(raw []byte) error {
	if err := requireFields(raw, "name", "created_at", "src", "content_type", "size"); err != nil {
		return err
	}
	type file File
	return json.Unmarshal(raw, (*file)(f))
}

func (f File) Sanitize(cfg *config.Config) File {
	lim := config.OrDefault(cfg).File

	out := File{
		Name:        trimTruncate(f.Name, lim.MaxNameLength),
		CreatedAt:   f.CreatedAt,
		ContentType: strings.TrimSpace(f.ContentType),
		Size:        f.Size,
	}
	if src := trimTruncate(f.Src, lim.MaxSrcLength); isURL(src) {
		out.Src = src
	}
	return out
}

func (f File) Validate(cfg *config.Config, id string) error {
	cfg = config.OrDefault(cfg)
	lim := cfg.File

	if id != "" {
		if err := syntax.ValidateTimestampID(cfg, id); err != nil {
			return err
		}
	}
	err := check("name", f.Name,
		minRunes(lim.MinNameLength, "name"),
		maxRunes(lim.MaxNameLength, "name"),
	)
	if err != nil {
		return err
	}
	err = check("src", f.Src,
		validation.Required.Error("invalid src"),
		maxRunes(lim.MaxSrcLength, "src"),
		urlRule,
	)
	if err != nil {
		return err
	}
	if err := check("content_type", f.ContentType, mimeRule(lim.MimeTypes)); err != nil {
		return err
	}
	return check("size", f.Size,
		positive,
		validation.Max(lim.MaxSize).Error(fmt.Sprintf("exceeds maximum of %d bytes", lim.MaxSize)),
	)
}

func mimeRule(allowed []string) validation.Rule {
	return validation.By(func(v any) error {
		s, _ := v.(string)
		essence, _, err := mime.ParseMediaType(s)
		if err != nil {
			return errors.New("invalid content type")
		}
		if !slices.Contains(allowed, essence) {
			return fmt.Errorf("invalid content type: %s", essence)
		}
		return nil
	})
}
