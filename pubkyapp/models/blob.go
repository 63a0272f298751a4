package models

import (
	"errors"
	"fmt"

	"github.com/pubky/pubky-app-specs-go/pubkyapp/config"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/resource"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/syntax"
)

// Blob is raw file content, stored at "/pub/pubky.app/blobs/<hash id>".
//
// The id is the BLAKE3 hash of the entire payload, however large.
type Blob struct {
	Data []byte
}

func (Blob) ResourceKind() resource.Kind {
	return resource.KindBlob
}

func (b Blob) HashID() syntax.HashID {
	return syntax.NewHashID(b.Data)
}

func (b Blob) Sanitize(cfg *config.Config) Blob {
	return b
}

func (b Blob) Validate(cfg *config.Config, id string) error {
	lim := config.OrDefault(cfg).Blob

	if len(b.Data) == 0 {
		return &FieldError{Field: "data", Err: errors.New("blob size cannot be zero")}
	}
	if int64(len(b.Data)) > lim.MaxSize {
		return &FieldError{Field: "data", Err: fmt.Errorf("blob size exceeds maximum limit of %s", formatSize(lim.MaxSize))}
	}
	if id != "" {
		return syntax.ValidateHashID(b.HashID(), id)
	}
	return nil
}

// DecodeBlob runs the pipeline over a raw payload. The payload is used as is, not copied.
func DecodeBlob(cfg *config.Config, raw []byte, id string) (Blob, error) {
	b := Blob{Data: raw}.Sanitize(cfg)
	if err := b.Validate(cfg, id); err != nil {
		return Blob{}, err
	}
	return b, nil
}

func formatSize(n int64) string {
	if n%(1<<20) == 0 {
		return fmt.Sprintf("%dMB", n/(1<<20))
	}
	return fmt.Sprintf("%d bytes", n)
}
