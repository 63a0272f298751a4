package models

import (
	"encoding/json"
	"fmt"

	"github.com/pubky/pubky-app-specs-go/pubkyapp/config"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/resource"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Name given to profiles whose requested name is reserved.
const AnonymousName = "anonymous"

// User is the profile stored at "/pub/pubky.app/profile.json".
type User struct {
	Name   string     `json:"name"`
	Bio    *string    `json:"bio"`
	Image  *string    `json:"image"`
	Links  []UserLink `json:"links"`
	Status *string    `json:"status"`
}

type UserLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// DefaultUser is the profile shown for users who never wrote one.
func DefaultUser() User {
	return User{Name: AnonymousName}
}

func (User) ResourceKind() resource.Kind {
	return resource.KindProfile
}

func (u *User) UnmarshalJSON(raw []byte) error {
	if err := requireFields(raw, "name"); err != nil {
		return err
	}
	type user User
	return json.Unmarshal(raw, (*user)(u))
}

func (l *UserLink) UnmarshalJSON(raw []byte) error {
	if err := requireFields(raw, "title", "url"); err != nil {
		return err
	}
	type link UserLink
	return json.Unmarshal(raw, (*link)(l))
}

func (u User) Sanitize(cfg *config.Config) User {
	lim := config.OrDefault(cfg).User

	out := User{
		Name:   trimTruncate(u.Name, lim.MaxNameLength),
		Bio:    sanitizeOptional(u.Bio, lim.MaxBioLength),
		Status: sanitizeOptional(u.Status, lim.MaxStatusLength),
	}
	if out.Name == deletedKeyword {
		out.Name = AnonymousName
	}
	if u.Image != nil {
		if img := trimTruncate(*u.Image, lim.MaxImageLength); isURL(img) {
			out.Image = &img
		}
	}
	if u.Links != nil {
		links := u.Links[:min(len(u.Links), lim.MaxLinks)]
		out.Links = make([]UserLink, 0, len(links))
		for _, l := range links {
			l = l.Sanitize(cfg)
			if l.URL != "" {
				out.Links = append(out.Links, l)
			}
		}
	}
	return out
}

// Validate ignores id: profiles live at a fixed path.
func (u User) Validate(cfg *config.Config, id string) error {
	cfg = config.OrDefault(cfg)
	lim := cfg.User

	err := check("name", u.Name,
		validation.Required.Error("invalid name length"),
		validation.RuneLength(lim.MinNameLength, lim.MaxNameLength).Error("invalid name length"),
		notReserved,
	)
	if err != nil {
		return err
	}
	if u.Bio != nil {
		if err := check("bio", *u.Bio, maxRunes(lim.MaxBioLength, "bio")); err != nil {
			return err
		}
	}
	if u.Image != nil {
		if err := check("image", *u.Image, maxRunes(lim.MaxImageLength, "image URI"), urlRule); err != nil {
			return err
		}
	}
	if err := check("links", u.Links, maxItems(lim.MaxLinks, "too many links")); err != nil {
		return err
	}
	for i, l := range u.Links {
		if err := l.validate(cfg, fmt.Sprintf("links[%d]", i)); err != nil {
			return err
		}
	}
	if u.Status != nil {
		if err := check("status", *u.Status, maxRunes(lim.MaxStatusLength, "status")); err != nil {
			return err
		}
	}
	return nil
}

func (l UserLink) Sanitize(cfg *config.Config) UserLink {
	lim := config.OrDefault(cfg).User
	return UserLink{
		Title: trimTruncate(l.Title, lim.MaxLinkTitleLength),
		URL:   sanitizeURL(l.URL, lim.MaxLinkURLLength),
	}
}

func (l UserLink) validate(cfg *config.Config, field string) error {
	lim := cfg.User
	if err := check(field+".title", l.Title, maxRunes(lim.MaxLinkTitleLength, "link title")); err != nil {
		return err
	}
	return check(field+".url", l.URL,
		maxRunes(lim.MaxLinkURLLength, "link URL"),
		urlRule,
	)
}
