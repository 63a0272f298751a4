// Package importer turns a pubky:// URI and the bytes stored at it into a validated [models.Object].
//
// The URI selects the kind and supplies the identifier; the payload is decoded, sanitized, and validated by that kind.
// Callers switch on the concrete type:
//
//	obj, err := importer.Import(nil, uri, raw)
//	if err != nil {
//		return err
//	}
//	switch v := obj.(type) {
//	case models.Post:
//		...
//	}
package importer

import (
	"errors"
	"fmt"

	"github.com/pubky/pubky-app-specs-go/pubkyapp/config"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/models"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/resource"
)

// ErrUnrecognizedResource is returned for URIs which parse but do not address a known kind. Nothing is decoded.
var ErrUnrecognizedResource = errors.New("unrecognized resource")

type decodeFunc func(cfg *config.Config, raw []byte, id string) (models.Object, error)

func record[T models.Record[T]](cfg *config.Config, raw []byte, id string) (models.Object, error) {
	v, err := models.DecodeAndValidate[T](cfg, raw, id)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func blob(cfg *config.Config, raw []byte, id string) (models.Object, error) {
	v, err := models.DecodeBlob(cfg, raw, id)
	if err != nil {
		return nil, err
	}
	return v, nil
}

var decoders = map[resource.Kind]decodeFunc{
	resource.KindProfile:  record[models.User],
	resource.KindPost:     record[models.Post],
	resource.KindFollow:   record[models.Follow],
	resource.KindMute:     record[models.Mute],
	resource.KindBookmark: record[models.Bookmark],
	resource.KindTag:      record[models.Tag],
	resource.KindFile:     record[models.File],
	resource.KindBlob:     blob,
	resource.KindFeed:     record[models.Feed],
	resource.KindLastRead: record[models.LastRead],
}

// Import parses uri and decodes raw as the kind it addresses.
func Import(cfg *config.Config, uri string, raw []byte) (models.Object, error) {
	parsed, err := registry(cfg).ParseURI(uri)
	if err != nil {
		return nil, err
	}
	return ImportResource(cfg, parsed.Resource, raw)
}

// ImportResource decodes raw as the kind of an already parsed resource. Singletons are decoded without an identifier; every other kind requires one.
func ImportResource(cfg *config.Config, r resource.Resource, raw []byte) (models.Object, error) {
	if r.IsUnknown() {
		return nil, ErrUnrecognizedResource
	}
	decode, ok := decoders[r.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnrecognizedResource, r.Kind)
	}
	id := r.ID
	switch r.Kind.Shape() {
	case resource.ShapeSingleton:
		id = ""
	case resource.ShapeID, resource.ShapeOwner:
		if id == "" {
			return nil, fmt.Errorf("%w: %s without identifier", ErrUnrecognizedResource, r.Kind)
		}
	}
	return decode(cfg, raw, id)
}

func registry(cfg *config.Config) *resource.Registry {
	if cfg == nil {
		return resource.DefaultRegistry()
	}
	return resource.NewRegistry(cfg)
}
