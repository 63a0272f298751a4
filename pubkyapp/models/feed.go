package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/pubky/pubky-app-specs-go/pubkyapp/config"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/resource"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/syntax"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type FeedReach string

const (
	ReachFollowing FeedReach = "following"
	ReachFollowers FeedReach = "followers"
	ReachFriends   FeedReach = "friends"
	ReachAll       FeedReach = "all"
)

type FeedLayout string

const (
	LayoutColumns FeedLayout = "columns"
	LayoutWide    FeedLayout = "wide"
	LayoutVisual  FeedLayout = "visual"
)

type FeedSort string

const (
	SortRecent     FeedSort = "recent"
	SortPopularity FeedSort = "popularity"
)

var (
	feedReaches = []FeedReach{ReachFollowing, ReachFollowers, ReachFriends, ReachAll}
	feedLayouts = []FeedLayout{LayoutColumns, LayoutWide, LayoutVisual}
	feedSorts   = []FeedSort{SortRecent, SortPopularity}
)

func parseEnum[T ~string](what string, valid []T, text []byte) (T, error) {
	v := T(text)
	if !slices.Contains(valid, v) {
		return "", fmt.Errorf("invalid feed %s: %s", what, text)
	}
	return v, nil
}

func (r *FeedReach) UnmarshalText(text []byte) (err error) {
	*r, err = parseEnum("reach", feedReaches, text)
	return err
}

func (l *FeedLayout) UnmarshalText(text []byte) (err error) {
	*l, err = parseEnum("layout", feedLayouts, text)
	return err
}

func (s *FeedSort) UnmarshalText(text []byte) (err error) {
	*s, err = parseEnum("sort", feedSorts, text)
	return err
}

// FeedConfig selects and arranges the posts shown in a feed. Its JSON form is hashed into the feed id, so field order matters.
type FeedConfig struct {
	Tags    []string   `json:"tags"`
	Reach   FeedReach  `json:"reach"`
	Layout  FeedLayout `json:"layout"`
	Sort    FeedSort   `json:"sort"`
	Content *PostKind  `json:"content"`
}

// Feed is a saved feed configuration, stored at "/pub/pubky.app/feeds/<hash id>".
type Feed struct {
	Config    FeedConfig `json:"feed"`
	Name      string     `json:"name"`
	CreatedAt int64      `json:"created_at"`
}

func (Feed) ResourceKind() resource.Kind {
	return resource.KindFeed
}

// HashID hashes the compact JSON encoding of the feed configuration.
func (f Feed) HashID() syntax.HashID {
	return syntax.NewHashID(f.Config.canonicalJSON())
}

func (c FeedConfig) canonicalJSON() []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		// only strings, slices, and pointers to strings; encoding cannot fail
		return nil
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}

func (c *FeedConfig) UnmarshalJSON(raw []byte) error {
	if err := requireFields(raw, "reach", "layout", "sort"); err != nil {
		return err
	}
	type feedConfig FeedConfig
	return json.Unmarshal(raw, (*feedConfig)(c))
}

func (f *Feed) UnmarshalJSON(raw []byte) error {
	if err := requireFields(raw, "feed", "name", "created_at"); err != nil {
		return err
	}
	type feed Feed
	return json.Unmarshal(raw, (*feed)(f))
}

func (f Feed) Sanitize(cfg *config.Config) Feed {
	out := f
	out.Name = strings.TrimSpace(f.Name)
	if f.Config.Tags != nil {
		out.Config.Tags = make([]string, len(f.Config.Tags))
		for i, t := range f.Config.Tags {
			out.Config.Tags[i] = SanitizeTagLabel(t)
		}
	}
	if f.Config.Content != nil {
		content := *f.Config.Content
		out.Config.Content = &content
	}
	return out
}

func (f Feed) Validate(cfg *config.Config, id string) error {
	cfg = config.OrDefault(cfg)

	if id != "" {
		if err := syntax.ValidateHashID(f.HashID(), id); err != nil {
			return err
		}
	}
	err := check("name", f.Name,
		validation.Required.Error("feed name cannot be empty"),
		maxRunes(cfg.Feed.MaxNameLength, "feed name"),
	)
	if err != nil {
		return err
	}
	c := f.Config
	if err := check("feed.reach", c.Reach, validation.Required, validation.In(toAny(feedReaches)...).Error("invalid feed reach")); err != nil {
		return err
	}
	if err := check("feed.layout", c.Layout, validation.Required, validation.In(toAny(feedLayouts)...).Error("invalid feed layout")); err != nil {
		return err
	}
	if err := check("feed.sort", c.Sort, validation.Required, validation.In(toAny(feedSorts)...).Error("invalid feed sort")); err != nil {
		return err
	}
	if c.Content != nil {
		if err := check("feed.content", *c.Content, validation.Required, validation.In(toAny(postKinds)...).Error("unknown post kind")); err != nil {
			return err
		}
	}
	for i, t := range c.Tags {
		if err := validateTagLabel(cfg, fmt.Sprintf("feed.tags[%d]", i), t); err != nil {
			return err
		}
	}
	return nil
}
