// Package config holds the protocol constants and limits shared by the pubky.app validators.
//
// A [Config] is a plain value. Callers either use [Default] or load an overlay with [Load], and pass a pointer into the syntax, resource, and models packages. A nil *Config is treated as [Default] everywhere.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	Version    = "0.4.0"
	Scheme     = "pubky"
	Protocol   = Scheme + "://"
	PublicPath = "/pub/"
	AppPath    = "pubky.app/"

	// MaxBlobSize is the largest accepted blob payload, in bytes.
	MaxBlobSize = 100 * (1 << 20)

	// MaxFileSize is the largest size a file record may declare, in bytes.
	MaxFileSize = 10 * (1 << 20)

	// EpochMicros is 2024-10-01T00:00:00Z in microseconds. Timestamp identifiers before this are rejected.
	EpochMicros int64 = 1727740800000000
)

// DefaultMimeTypes are the MIME essences a file record may declare.
var DefaultMimeTypes = []string{
	"application/javascript",
	"application/json",
	"application/octet-stream",
	"application/pdf",
	"application/x-www-form-urlencoded",
	"application/xml",
	"application/zip",
	"audio/mpeg",
	"audio/wav",
	"image/gif",
	"image/jpeg",
	"image/png",
	"image/svg+xml",
	"image/webp",
	"multipart/form-data",
	"text/css",
	"text/html",
	"text/plain",
	"text/xml",
	"video/mp4",
	"video/mpeg",
}

type Config struct {
	Scheme     string `yaml:"scheme"`
	PublicPath string `yaml:"public_path"`
	AppPath    string `yaml:"app_path"`

	Timestamp TimestampLimits `yaml:"timestamp"`
	User      UserLimits      `yaml:"user"`
	Post      PostLimits      `yaml:"post"`
	Tag       TagLimits       `yaml:"tag"`
	File      FileLimits      `yaml:"file"`
	Blob      BlobLimits      `yaml:"blob"`
	Feed      FeedLimits      `yaml:"feed"`
}

type TimestampLimits struct {
	EpochMicros int64         `yaml:"epoch_micros"`
	MaxSkew     time.Duration `yaml:"max_skew"`

	// Clock is the current time that timestamp ids are checked against. Nil means time.Now.
	Clock func() time.Time `yaml:"-"`
}

func (t TimestampLimits) Now() time.Time {
	if t.Clock == nil {
		return time.Now()
	}
	return t.Clock()
}

type UserLimits struct {
	MinNameLength      int `yaml:"min_name_length"`
	MaxNameLength      int `yaml:"max_name_length"`
	MaxBioLength       int `yaml:"max_bio_length"`
	MaxImageLength     int `yaml:"max_image_length"`
	MaxStatusLength    int `yaml:"max_status_length"`
	MaxLinks           int `yaml:"max_links"`
	MaxLinkTitleLength int `yaml:"max_link_title_length"`
	MaxLinkURLLength   int `yaml:"max_link_url_length"`
}

type PostLimits struct {
	MaxShortContentLength int      `yaml:"max_short_content_length"`
	MaxLongContentLength  int      `yaml:"max_long_content_length"`
	MaxAttachments        int      `yaml:"max_attachments"`
	AttachmentSchemes     []string `yaml:"attachment_schemes"`
}

type TagLimits struct {
	MinLabelLength int    `yaml:"min_label_length"`
	MaxLabelLength int    `yaml:"max_label_length"`
	InvalidChars   string `yaml:"invalid_chars"`
}

type FileLimits struct {
	MinNameLength int      `yaml:"min_name_length"`
	MaxNameLength int      `yaml:"max_name_length"`
	MaxSrcLength  int      `yaml:"max_src_length"`
	MaxSize       int64    `yaml:"max_size"`
	MimeTypes     []string `yaml:"mime_types"`
}

type BlobLimits struct {
	MaxSize int64 `yaml:"max_size"`
}

type FeedLimits struct {
	MaxNameLength int `yaml:"max_name_length"`
}

// Default returns the protocol configuration. Each call returns a fresh copy.
func Default() *Config {
	return &Config{
		Scheme:     Scheme,
		PublicPath: PublicPath,
		AppPath:    AppPath,
		Timestamp: TimestampLimits{
			EpochMicros: EpochMicros,
			MaxSkew:     2 * time.Hour,
		},
		User: UserLimits{
			MinNameLength:      3,
			MaxNameLength:      50,
			MaxBioLength:       160,
			MaxImageLength:     300,
			MaxStatusLength:    50,
			MaxLinks:           5,
			MaxLinkTitleLength: 100,
			MaxLinkURLLength:   300,
		},
		Post: PostLimits{
			MaxShortContentLength: 2000,
			MaxLongContentLength:  50000,
			MaxAttachments:        3,
			AttachmentSchemes:     []string{"pubky", "http", "https"},
		},
		Tag: TagLimits{
			MinLabelLength: 1,
			MaxLabelLength: 20,
			InvalidChars:   ",:",
		},
		File: FileLimits{
			MinNameLength: 1,
			MaxNameLength: 255,
			MaxSrcLength:  1024,
			MaxSize:       MaxFileSize,
			MimeTypes:     slices.Clone(DefaultMimeTypes),
		},
		Blob: BlobLimits{
			MaxSize: MaxBlobSize,
		},
		Feed: FeedLimits{
			MaxNameLength: 64,
		},
	}
}

// OrDefault returns c, or [Default] when c is nil.
func OrDefault(c *Config) *Config {
	if c == nil {
		return Default()
	}
	return c
}

// Load reads a YAML file and applies it on top of [Default]. Keys not present in the file keep their default values; unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse is like [Load] but takes the YAML document directly.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Scheme == "" || strings.ContainsAny(c.Scheme, ":/") {
		return fmt.Errorf("invalid config: scheme %q", c.Scheme)
	}
	if !strings.HasPrefix(c.PublicPath, "/") || !strings.HasSuffix(c.PublicPath, "/") || strings.Count(c.PublicPath, "/") != 2 {
		return fmt.Errorf("invalid config: public_path must look like /name/, got %q", c.PublicPath)
	}
	if strings.HasPrefix(c.AppPath, "/") || !strings.HasSuffix(c.AppPath, "/") || strings.Count(c.AppPath, "/") != 1 {
		return fmt.Errorf("invalid config: app_path must look like name/, got %q", c.AppPath)
	}
	if c.Timestamp.MaxSkew < 0 {
		return errors.New("invalid config: timestamp.max_skew is negative")
	}
	if c.User.MinNameLength > c.User.MaxNameLength {
		return errors.New("invalid config: user name bounds are inverted")
	}
	if c.Tag.MinLabelLength < 1 || c.Tag.MinLabelLength > c.Tag.MaxLabelLength {
		return errors.New("invalid config: tag label bounds are inverted")
	}
	if c.File.MinNameLength > c.File.MaxNameLength {
		return errors.New("invalid config: file name bounds are inverted")
	}
	if c.File.MaxSize <= 0 || c.Blob.MaxSize <= 0 {
		return errors.New("invalid config: size limits must be positive")
	}
	if c.Post.MaxAttachments < 0 {
		return errors.New("invalid config: post.max_attachments is negative")
	}
	return nil
}

// Root returns the path prefix every resource path starts with, eg "/pub/pubky.app/".
func (c *Config) Root() string {
	return c.PublicPath + c.AppPath
}

// PublicSegment is the public path root without slashes, eg "pub".
func (c *Config) PublicSegment() string {
	return strings.Trim(c.PublicPath, "/")
}

// AppSegment is the application root without slashes, eg "pubky.app".
func (c *Config) AppSegment() string {
	return strings.Trim(c.AppPath, "/")
}
