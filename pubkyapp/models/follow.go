package models

import (
	"encoding/json"

	"github.com/pubky/pubky-app-specs-go/pubkyapp/config"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/resource"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/syntax"
)

// Follow is stored at "/pub/pubky.app/follows/<followed pubky id>". The path carries all the information; the body only records when.
type Follow struct {
	CreatedAt int64 `json:"created_at"`
}

// Mute is stored at "/pub/pubky.app/mutes/<muted pubky id>".
type Mute struct {
	CreatedAt int64 `json:"created_at"`
}

func (Follow) ResourceKind() resource.Kind {
	return resource.KindFollow
}

func (Mute) ResourceKind() resource.Kind {
	return resource.KindMute
}

func (f *Follow) UnmarshalJSON(raw []byte) error {
	if err := requireFields(raw, "created_at"); err != nil {
		return err
	}
	type follow Follow
	return json.Unmarshal(raw, (*follow)(f))
}

func (m *Mute) UnmarshalJSON(raw []byte) error {
	if err := requireFields(raw, "created_at"); err != nil {
		return err
	}
	type mute Mute
	return json.Unmarshal(raw, (*mute)(m))
}

func (f Follow) Sanitize(cfg *config.Config) Follow {
	return f
}

func (m Mute) Sanitize(cfg *config.Config) Mute {
	return m
}

// Validate checks that id, when given, is the followed user's [syntax.PubkyID].
func (f Follow) Validate(cfg *config.Config, id string) error {
	return validateTarget(id)
}

func (m Mute) Validate(cfg *config.Config, id string) error {
	return validateTarget(id)
}

func validateTarget(id string) error {
	if id == "" {
		return nil
	}
	_, err := syntax.ParsePubkyID(id)
	return err
}
