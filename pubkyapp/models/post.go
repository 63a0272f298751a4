package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/pubky/pubky-app-specs-go/pubkyapp/config"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/resource"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/syntax"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type PostKind string

const (
	PostShort PostKind = "short"
	PostLong  PostKind = "long"
	PostImage PostKind = "image"
	PostVideo PostKind = "video"
	PostLink  PostKind = "link"
	PostFile  PostKind = "file"
)

var postKinds = []PostKind{PostShort, PostLong, PostImage, PostVideo, PostLink, PostFile}

func ParsePostKind(s string) (PostKind, error) {
	k := PostKind(s)
	if !slices.Contains(postKinds, k) {
		return "", fmt.Errorf("unknown post kind: %q", s)
	}
	return k, nil
}

func (k PostKind) String() string {
	return string(k)
}

func (k *PostKind) UnmarshalText(text []byte) error {
	v, err := ParsePostKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// maxContentLength is the content limit for posts of this kind. Only long posts get the larger limit.
func (k PostKind) maxContentLength(lim config.PostLimits) int {
	if k == PostLong {
		return lim.MaxLongContentLength
	}
	return lim.MaxShortContentLength
}

// Post is stored at "/pub/pubky.app/posts/<timestamp id>".
type Post struct {
	Content     string     `json:"content"`
	Kind        PostKind   `json:"kind"`
	Parent      *string    `json:"parent"`
	Embed       *PostEmbed `json:"embed"`
	Attachments []string   `json:"attachments"`
}

// PostEmbed references another resource, usually a post being reposted.
type PostEmbed struct {
	Kind PostKind `json:"kind"`
	URI  string   `json:"uri"`
}

func (Post) ResourceKind() resource.Kind {
	return resource.KindPost
}

func (p *Post) UnmarshalJSON(raw []byte) error {
	if err := requireFields(raw, "content", "kind"); err != nil {
		return err
	}
	type post Post
	return json.Unmarshal(raw, (*post)(p))
}

func (e *PostEmbed) UnmarshalJSON(raw []byte) error {
	if err := requireFields(raw, "kind", "uri"); err != nil {
		return err
	}
	type embed PostEmbed
	return json.Unmarshal(raw, (*embed)(e))
}

// Sanitize keeps "[DELETED]" content as is; Validate rejects it.
func (p Post) Sanitize(cfg *config.Config) Post {
	lim := config.OrDefault(cfg).Post

	out := Post{
		Content: trimTruncate(p.Content, p.Kind.maxContentLength(lim)),
		Kind:    p.Kind,
	}
	if p.Parent != nil {
		if parent, ok := normalizeURL(strings.TrimSpace(*p.Parent)); ok {
			out.Parent = &parent
		}
	}
	if p.Embed != nil {
		if uri, ok := normalizeURL(strings.TrimSpace(p.Embed.URI)); ok {
			out.Embed = &PostEmbed{Kind: p.Embed.Kind, URI: uri}
		}
	}
	if p.Attachments != nil {
		out.Attachments = make([]string, 0, len(p.Attachments))
		for _, a := range p.Attachments {
			if norm, ok := normalizeURL(strings.TrimSpace(a)); ok {
				out.Attachments = append(out.Attachments, norm)
			}
		}
	}
	return out
}

func (p Post) Validate(cfg *config.Config, id string) error {
	cfg = config.OrDefault(cfg)
	lim := cfg.Post

	if id != "" {
		if err := syntax.ValidateTimestampID(cfg, id); err != nil {
			return err
		}
	}
	if err := check("kind", p.Kind, validation.Required, validation.In(toAny(postKinds)...).Error("unknown post kind")); err != nil {
		return err
	}
	maxLen := p.Kind.maxContentLength(lim)
	err := check("content", p.Content,
		notReserved,
		maxRunes(maxLen, fmt.Sprintf("%s post content", p.Kind)),
	)
	if err != nil {
		return err
	}
	if p.Parent != nil {
		if err := check("parent", *p.Parent, urlRule); err != nil {
			return err
		}
	}
	if p.Embed != nil {
		if err := check("embed.kind", p.Embed.Kind, validation.Required, validation.In(toAny(postKinds)...).Error("unknown post kind")); err != nil {
			return err
		}
		if err := check("embed.uri", p.Embed.URI, urlRule); err != nil {
			return err
		}
	}
	if err := check("attachments", p.Attachments, maxItems(lim.MaxAttachments, "too many attachments")); err != nil {
		return err
	}
	for i, a := range p.Attachments {
		if err := check(fmt.Sprintf("attachments[%d]", i), a, schemeRule(lim.AttachmentSchemes)); err != nil {
			return err
		}
	}
	return nil
}

func toAny[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
