package models

import (
	"encoding/json"
	"time"

	"github.com/pubky/pubky-app-specs-go/pubkyapp/config"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/resource"
)

// LastRead is the notification read marker, stored at "/pub/pubky.app/last_read".
type LastRead struct {
	// UNIX time in milliseconds
	Timestamp int64 `json:"timestamp"`
}

func NewLastRead(t time.Time) LastRead {
	return LastRead{Timestamp: t.UnixMilli()}
}

func (l LastRead) Time() time.Time {
	return time.UnixMilli(l.Timestamp)
}

func (LastRead) ResourceKind() resource.Kind {
	return resource.KindLastRead
}

func (l *LastRead) UnmarshalJSON(raw []byte) error {
	if err := requireFields(raw, "timestamp"); err != nil {
		return err
	}
	type lastRead LastRead
	return json.Unmarshal(raw, (*lastRead)(l))
}

func (l LastRead) Sanitize(cfg *config.Config) LastRead {
	return l
}

func (l LastRead) Validate(cfg *config.Config, id string) error {
	return check("timestamp", l.Timestamp, positive)
}
