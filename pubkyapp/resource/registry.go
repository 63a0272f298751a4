// Package resource maps pubky.app object kinds to storage paths and parses pubky:// URIs.
//
// A full URI looks like:
//
//	pubky://<pubky id>/pub/pubky.app/posts/0032X1AHXAH40
//
// Malformed scheme, owner, or fixed "/pub/pubky.app/" prefix are errors. Anything unrecognized below the prefix parses to an unknown [Resource] instead.
package resource

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pubky/pubky-app-specs-go/pubkyapp/config"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/syntax"
)

// Registry resolves segments to kinds for one configuration. It is immutable and safe for concurrent use.
type Registry struct {
	cfg        *config.Config
	singletons map[string]Kind
	segments   map[string]Kind
}

var defaultRegistry = NewRegistry(nil)

func NewRegistry(cfg *config.Config) *Registry {
	r := &Registry{
		cfg:        config.OrDefault(cfg),
		singletons: make(map[string]Kind),
		segments:   make(map[string]Kind),
	}
	for _, k := range Kinds() {
		switch k.Shape() {
		case ShapeSingleton:
			r.singletons[k.Segment()] = k
		case ShapeID, ShapeOwner:
			r.segments[strings.TrimSuffix(k.Segment(), "/")] = k
		}
	}
	return r
}

// DefaultRegistry returns the registry for [config.Default].
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// BuildPath returns the storage path of a resource, eg "/pub/pubky.app/posts/0032X1AHXAH40".
func (reg *Registry) BuildPath(r Resource) (string, error) {
	switch r.Kind.Shape() {
	case ShapeSingleton:
		return reg.cfg.Root() + r.Kind.Segment(), nil
	case ShapeOwner:
		if _, err := syntax.ParsePubkyID(r.ID); err != nil {
			return "", fmt.Errorf("%w: %s target: %w", ErrInvalidURI, r.Kind, err)
		}
		return reg.cfg.Root() + r.Kind.Segment() + r.ID, nil
	case ShapeID:
		if r.ID == "" || strings.Contains(r.ID, "/") {
			return "", fmt.Errorf("%w: %s identifier must be a single non-empty path segment", ErrInvalidURI, r.Kind)
		}
		return reg.cfg.Root() + r.Kind.Segment() + r.ID, nil
	}
	return "", fmt.Errorf("%w: cannot convert unknown resource to URI", ErrInvalidURI)
}

// BuildURI returns the full pubky:// URI of a resource owned by owner.
func (reg *Registry) BuildURI(owner syntax.PubkyID, r Resource) (string, error) {
	if _, err := syntax.ParsePubkyID(owner.String()); err != nil {
		return "", fmt.Errorf("%w: owner: %w", ErrInvalidURI, err)
	}
	path, err := reg.BuildPath(r)
	if err != nil {
		return "", err
	}
	return reg.cfg.Scheme + "://" + owner.String() + path, nil
}

// URI rebuilds the URI of a parsed owner and resource with this registry's scheme and roots.
func (reg *Registry) URI(p ParsedURI) (string, error) {
	return reg.BuildURI(p.Owner, p.Resource)
}

// ParsePath resolves a storage path such as "/pub/pubky.app/posts/0032X1AHXAH40" into a Resource.
func (reg *Registry) ParsePath(path string) (Resource, error) {
	if !strings.HasPrefix(path, "/") {
		return Resource{}, fmt.Errorf("%w: cannot parse path segments of %q", ErrInvalidURI, path)
	}
	return reg.resolve(strings.Split(path[1:], "/"))
}

// ParseURI parses a full pubky:// URI.
func (reg *Registry) ParseURI(raw string) (*ParsedURI, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURI, err)
	}
	if u.Scheme != reg.cfg.Scheme {
		return nil, fmt.Errorf("%w: invalid scheme, expected %q, found %q", ErrInvalidURI, reg.cfg.Scheme, u.Scheme)
	}
	if u.User != nil {
		return nil, fmt.Errorf("%w: user info is not allowed", ErrInvalidURI)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURI)
	}
	owner, err := syntax.ParsePubkyID(u.Host)
	if err != nil {
		return nil, fmt.Errorf("%w: owner: %w", ErrInvalidURI, err)
	}
	res, err := reg.ParsePath(u.EscapedPath())
	if err != nil {
		return nil, err
	}
	return &ParsedURI{Owner: owner, Resource: res}, nil
}

func (reg *Registry) resolve(segs []string) (Resource, error) {
	if len(segs) < 2 {
		return Resource{}, fmt.Errorf("%w: not enough path segments", ErrInvalidURI)
	}
	if segs[0] != reg.cfg.PublicSegment() {
		return Resource{}, fmt.Errorf("%w: expected public path %q, found %q", ErrInvalidURI, reg.cfg.PublicSegment(), segs[0])
	}
	if segs[1] != reg.cfg.AppSegment() {
		return Resource{}, fmt.Errorf("%w: expected app path %q, found %q", ErrInvalidURI, reg.cfg.AppSegment(), segs[1])
	}
	rest := segs[2:]

	switch len(rest) {
	case 0:
		return Unknown(), nil
	case 1:
		if k, ok := reg.singletons[rest[0]]; ok {
			return Resource{Kind: k}, nil
		}
		return Unknown(), nil
	}

	segment, id := rest[0], rest[1]
	k, ok := reg.segments[segment]
	if !ok || id == "" {
		return Unknown(), nil
	}
	if k.Shape() == ShapeOwner {
		target, err := syntax.ParsePubkyID(id)
		if err != nil {
			return Resource{}, fmt.Errorf("%w: %s target: %w", ErrInvalidURI, k, err)
		}
		id = target.String()
	}
	return Resource{Kind: k, ID: id}, nil
}

func BuildPath(r Resource) (string, error) {
	return defaultRegistry.BuildPath(r)
}

func BuildURI(owner syntax.PubkyID, r Resource) (string, error) {
	return defaultRegistry.BuildURI(owner, r)
}

func ParsePath(path string) (Resource, error) {
	return defaultRegistry.ParsePath(path)
}

func ParseURI(raw string) (*ParsedURI, error) {
	return defaultRegistry.ParseURI(raw)
}
