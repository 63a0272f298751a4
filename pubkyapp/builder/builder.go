// Package builder creates new pubky.app objects on behalf of one owner.
//
// Each Create method stamps creation times and identifiers, sanitizes and validates the object, and returns it together with the path and URI to write it at.
package builder

import (
	"fmt"
	"time"

	"github.com/pubky/pubky-app-specs-go/pubkyapp/config"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/models"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/resource"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/syntax"
)

// Meta locates a created object. ID is empty for singletons.
type Meta struct {
	ID   string `json:"id"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

type Result[T models.Object] struct {
	Object T    `json:"object"`
	Meta   Meta `json:"meta"`
}

type Builder struct {
	owner syntax.PubkyID
	cfg   *config.Config
	reg   *resource.Registry

	// Now is the clock used for creation times and timestamp ids.
	Now func() time.Time
}

func New(owner string, cfg *config.Config) (*Builder, error) {
	id, err := syntax.ParsePubkyID(owner)
	if err != nil {
		return nil, err
	}
	b := &Builder{
		owner: id,
		Now:   time.Now,
	}
	// ids are stamped and checked with the same clock
	bcfg := *config.OrDefault(cfg)
	bcfg.Timestamp.Clock = func() time.Time { return b.Now() }
	b.cfg = &bcfg
	b.reg = resource.NewRegistry(b.cfg)
	return b, nil
}

func (b *Builder) Owner() syntax.PubkyID {
	return b.owner
}

func (b *Builder) meta(r resource.Resource) (Meta, error) {
	path, err := b.reg.BuildPath(r)
	if err != nil {
		return Meta{}, err
	}
	return Meta{
		ID:   r.ID,
		Path: path,
		URL:  b.cfg.Scheme + "://" + b.owner.String() + path,
	}, nil
}

func build[T models.Record[T]](b *Builder, obj T, r resource.Resource) (*Result[T], error) {
	obj = obj.Sanitize(b.cfg)
	if r.ID == "" && r.Kind.Shape() != resource.ShapeSingleton {
		r.ID = identify(obj)
	}
	if err := obj.Validate(b.cfg, r.ID); err != nil {
		return nil, err
	}
	m, err := b.meta(r)
	if err != nil {
		return nil, err
	}
	return &Result[T]{Object: obj, Meta: m}, nil
}

// identify derives the id of content-addressed kinds from the sanitized value.
func identify(obj models.Object) string {
	if h, ok := obj.(interface{ HashID() syntax.HashID }); ok {
		return h.HashID().String()
	}
	return ""
}

func (b *Builder) CreateUser(name string, bio, image *string, links []models.UserLink, status *string) (*Result[models.User], error) {
	user := models.User{
		Name:   name,
		Bio:    bio,
		Image:  image,
		Links:  links,
		Status: status,
	}
	return build(b, user, resource.Profile())
}

func (b *Builder) CreatePost(content string, kind models.PostKind, parent *string, embed *models.PostEmbed, attachments []string) (*Result[models.Post], error) {
	post := models.Post{
		Content:     content,
		Kind:        kind,
		Parent:      parent,
		Embed:       embed,
		Attachments: attachments,
	}
	id := syntax.NewTimestampIDFromTime(b.Now())
	return build(b, post, resource.Post(id.String()))
}

// EditPost replaces the content of an existing post. The id, and so the path, stay the same.
func (b *Builder) EditPost(original models.Post, postID, content string) (*Result[models.Post], error) {
	if postID == "" {
		return nil, fmt.Errorf("%w: missing post id", syntax.ErrInvalidIdentifier)
	}
	post := original
	post.Content = content
	return build(b, post, resource.Post(postID))
}

func (b *Builder) CreateTag(uri, label string) (*Result[models.Tag], error) {
	tag := models.Tag{
		URI:       uri,
		Label:     label,
		CreatedAt: b.Now().UnixMicro(),
	}
	return build(b, tag, resource.Resource{Kind: resource.KindTag})
}

func (b *Builder) CreateBookmark(uri string) (*Result[models.Bookmark], error) {
	bm := models.Bookmark{
		URI:       uri,
		CreatedAt: b.Now().UnixMicro(),
	}
	return build(b, bm, resource.Resource{Kind: resource.KindBookmark})
}

func (b *Builder) CreateFollow(followee string) (*Result[models.Follow], error) {
	target, err := syntax.ParsePubkyID(followee)
	if err != nil {
		return nil, err
	}
	return build(b, models.Follow{CreatedAt: b.Now().UnixMicro()}, resource.Follow(target))
}

func (b *Builder) CreateMute(mutee string) (*Result[models.Mute], error) {
	target, err := syntax.ParsePubkyID(mutee)
	if err != nil {
		return nil, err
	}
	return build(b, models.Mute{CreatedAt: b.Now().UnixMicro()}, resource.Mute(target))
}

func (b *Builder) CreateFile(name, src, contentType string, size int64) (*Result[models.File], error) {
	now := b.Now()
	file := models.File{
		Name:        name,
		CreatedAt:   now.UnixMicro(),
		Src:         src,
		ContentType: contentType,
		Size:        size,
	}
	return build(b, file, resource.File(syntax.NewTimestampIDFromTime(now).String()))
}

func (b *Builder) CreateBlob(data []byte) (*Result[models.Blob], error) {
	return build(b, models.Blob{Data: data}, resource.Resource{Kind: resource.KindBlob})
}

func (b *Builder) CreateFeed(tags []string, reach models.FeedReach, layout models.FeedLayout, sort models.FeedSort, content *models.PostKind, name string) (*Result[models.Feed], error) {
	feed := models.Feed{
		Config: models.FeedConfig{
			Tags:    tags,
			Reach:   reach,
			Layout:  layout,
			Sort:    sort,
			Content: content,
		},
		Name:      name,
		CreatedAt: b.Now().UnixMicro(),
	}
	return build(b, feed, resource.Resource{Kind: resource.KindFeed})
}

func (b *Builder) CreateLastRead() (*Result[models.LastRead], error) {
	return build(b, models.NewLastRead(b.Now()), resource.LastRead())
}
