package resource

import (
	"encoding/json"
	"errors"

	"github.com/pubky/pubky-app-specs-go/pubkyapp/syntax"
)

// ErrInvalidURI is wrapped by errors from URI and path parsing: a bad scheme, owner, or fixed path prefix.
var ErrInvalidURI = errors.New("invalid URI")

// Resource addresses one object inside an owner's namespace.
//
// Kind selects the variant. ID is the object identifier for identifier-bearing kinds, the target [syntax.PubkyID] for follows and mutes, and empty for singletons and [KindUnknown]. Use the constructors below instead of filling the struct by hand.
type Resource struct {
	Kind Kind
	ID   string
}

func Profile() Resource  { return Resource{Kind: KindProfile} }
func LastRead() Resource { return Resource{Kind: KindLastRead} }
func Unknown() Resource  { return Resource{Kind: KindUnknown} }

func Post(id string) Resource     { return Resource{Kind: KindPost, ID: id} }
func Bookmark(id string) Resource { return Resource{Kind: KindBookmark, ID: id} }
func Tag(id string) Resource      { return Resource{Kind: KindTag, ID: id} }
func File(id string) Resource     { return Resource{Kind: KindFile, ID: id} }
func Blob(id string) Resource     { return Resource{Kind: KindBlob, ID: id} }
func Feed(id string) Resource     { return Resource{Kind: KindFeed, ID: id} }

func Follow(target syntax.PubkyID) Resource { return Resource{Kind: KindFollow, ID: target.String()} }
func Mute(target syntax.PubkyID) Resource   { return Resource{Kind: KindMute, ID: target.String()} }

// Target returns the followed or muted user.
func (r Resource) Target() (syntax.PubkyID, bool) {
	if r.Kind.Shape() != ShapeOwner {
		return "", false
	}
	id, err := syntax.ParsePubkyID(r.ID)
	if err != nil {
		return "", false
	}
	return id, true
}

func (r Resource) IsUnknown() bool {
	return r.Kind == KindUnknown
}

// String returns the path below the app root, eg "posts/0032X1AHXAH40", or "unknown".
func (r Resource) String() string {
	switch r.Kind.Shape() {
	case ShapeID, ShapeOwner:
		return r.Kind.Segment() + r.ID
	case ShapeSingleton:
		return r.Kind.Segment()
	}
	return KindUnknown.String()
}

// ParsedURI is an owner plus the resource addressed inside their namespace.
type ParsedURI struct {
	Owner    syntax.PubkyID
	Resource Resource
}

// URI rebuilds the canonical URI under the default configuration, whichever registry parsed it. Use [Registry.URI] for custom roots.
func (p ParsedURI) URI() (string, error) {
	return defaultRegistry.BuildURI(p.Owner, p.Resource)
}

func (p ParsedURI) MarshalJSON() ([]byte, error) {
	out := struct {
		UserID     string  `json:"user_id"`
		Resource   Kind    `json:"resource"`
		ResourceID *string `json:"resource_id"`
	}{
		UserID:   p.Owner.String(),
		Resource: p.Resource.Kind,
	}
	if p.Resource.ID != "" {
		out.ResourceID = &p.Resource.ID
	}
	return json.Marshal(out)
}
