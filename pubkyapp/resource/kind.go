package resource

import (
	"fmt"
	"strings"
)

// Kind identifies the type of object stored at a resource path.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindProfile
	KindPost
	KindFollow
	KindMute
	KindBookmark
	KindTag
	KindFile
	KindBlob
	KindFeed
	KindLastRead
)

// Shape describes what follows a kind's segment in a resource path.
type Shape uint8

const (
	ShapeNone Shape = iota
	// <root><segment><id>, the id being an opaque timestamp or hash identifier
	ShapeID
	// <root><segment><pubky id>
	ShapeOwner
	// <root><name>, no identifier
	ShapeSingleton
)

type kindInfo struct {
	segment string
	shape   Shape
	aliases []string
}

// One row per kind. Segments of identifier-bearing kinds end in a slash; singleton names do not.
var kindTable = [...]kindInfo{
	KindUnknown:  {"", ShapeNone, nil},
	KindProfile:  {"profile.json", ShapeSingleton, []string{"profile", "user"}},
	KindPost:     {"posts/", ShapeID, []string{"post"}},
	KindFollow:   {"follows/", ShapeOwner, []string{"follow"}},
	KindMute:     {"mutes/", ShapeOwner, []string{"mute"}},
	KindBookmark: {"bookmarks/", ShapeID, []string{"bookmark"}},
	KindTag:      {"tags/", ShapeID, []string{"tag"}},
	KindFile:     {"files/", ShapeID, []string{"file"}},
	KindBlob:     {"blobs/", ShapeID, []string{"blob"}},
	KindFeed:     {"feeds/", ShapeID, []string{"feed"}},
	KindLastRead: {"last_read", ShapeSingleton, []string{"lastread", "last-read"}},
}

// Kinds returns every concrete kind, in table order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindTable)-1)
	for k := range kindTable {
		if Kind(k) != KindUnknown {
			out = append(out, Kind(k))
		}
	}
	return out
}

func (k Kind) info() kindInfo {
	if int(k) >= len(kindTable) {
		return kindTable[KindUnknown]
	}
	return kindTable[k]
}

// Segment is the path component for this kind, eg "posts/" or "profile.json". Empty for [KindUnknown].
func (k Kind) Segment() string {
	return k.info().segment
}

func (k Kind) Shape() Shape {
	return k.info().shape
}

// String is the segment without its trailing slash: "posts", "profile.json", "last_read", or "unknown".
func (k Kind) String() string {
	if s := strings.TrimSuffix(k.Segment(), "/"); s != "" {
		return s
	}
	return "unknown"
}

// ParseKind accepts a segment name ("posts", "profile.json") or a singular alias ("post", "profile").
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, k := range Kinds() {
		if name == k.String() {
			return k, nil
		}
		for _, alias := range k.info().aliases {
			if name == alias {
				return k, nil
			}
		}
	}
	return KindUnknown, fmt.Errorf("unknown resource kind: %q", name)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
