package models

import (
	"encoding/json"

	"github.com/pubky/pubky-app-specs-go/pubkyapp/config"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/resource"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/syntax"
)

// Tag labels the resource at URI. It is stored at "/pub/pubky.app/tags/<hash id>", the id being derived from "<uri>:<label>".
type Tag struct {
	URI       string `json:"uri"`
	Label     string `json:"label"`
	CreatedAt int64  `json:"created_at"`
}

func (Tag) ResourceKind() resource.Kind {
	return resource.KindTag
}

func (t Tag) HashID() syntax.HashID {
	return syntax.NewHashIDFromString(t.URI + ":" + t.Label)
}

func (t *Tag) UnmarshalJSON(raw []byte) error {
	if err := requireFields(raw, "uri", "label", "created_at"); err != nil {
		return err
	}
	type tag Tag
	return json.Unmarshal(raw, (*tag)(t))
}

func (t Tag) Sanitize(cfg *config.Config) Tag {
	return Tag{
		URI:       normalizeOrTrim(t.URI),
		Label:     SanitizeTagLabel(t.Label),
		CreatedAt: t.CreatedAt,
	}
}

func (t Tag) Validate(cfg *config.Config, id string) error {
	cfg = config.OrDefault(cfg)
	if id != "" {
		if err := syntax.ValidateHashID(t.HashID(), id); err != nil {
			return err
		}
	}
	if err := validateTagLabel(cfg, "label", t.Label); err != nil {
		return err
	}
	return check("uri", t.URI, urlRule)
}
