package models

import (
	"encoding/json"

	"github.com/pubky/pubky-app-specs-go/pubkyapp/config"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/resource"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/syntax"
)

// Bookmark is stored at "/pub/pubky.app/bookmarks/<hash id>", the id being derived from the bookmarked URI.
type Bookmark struct {
	URI       string `json:"uri"`
	CreatedAt int64  `json:"created_at"`
}

func (Bookmark) ResourceKind() resource.Kind {
	return resource.KindBookmark
}

func (b Bookmark) HashID() syntax.HashID {
	return syntax.NewHashIDFromString(b.URI)
}

func (b *Bookmark) UnmarshalJSON(raw []byte) error {
	if err := requireFields(raw, "uri", "created_at"); err != nil {
		return err
	}
	type bookmark Bookmark
	return json.Unmarshal(raw, (*bookmark)(b))
}

func (b Bookmark) Sanitize(cfg *config.Config) Bookmark {
	return Bookmark{
		URI:       normalizeOrTrim(b.URI),
		CreatedAt: b.CreatedAt,
	}
}

func (b Bookmark) Validate(cfg *config.Config, id string) error {
	if id != "" {
		if err := syntax.ValidateHashID(b.HashID(), id); err != nil {
			return err
		}
	}
	return check("uri", b.URI, urlRule)
}
