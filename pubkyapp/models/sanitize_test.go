package models

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
)

// messy pads and re-cases generated text, and sometimes repeats it past the field limits.
func messy(f *gofakeit.Faker, s string) string {
	if f.Bool() {
		s = strings.ToUpper(s)
	}
	if f.Number(0, 9) == 0 {
		s = strings.Repeat(s+" "+f.Emoji(), 200)
	}
	return f.RandomString([]string{"", " ", "\t", "\n "}) + s + f.RandomString([]string{"", " ", "  \n"})
}

func optional(f *gofakeit.Faker, s string) *string {
	if f.Bool() {
		return nil
	}
	return &s
}

func fakeURL(f *gofakeit.Faker) string {
	switch f.Number(0, 3) {
	case 0:
		return f.Word()
	case 1:
		return "pubky://" + testOwner + "/pub/pubky.app/posts/0032X1AHXAH40"
	default:
		return f.URL()
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	assert := assert.New(t)
	f := gofakeit.New(1727740800)

	for i := 0; i < 500; i++ {
		var links []UserLink
		for j := f.Number(0, 8); j > 0; j-- {
			links = append(links, UserLink{Title: messy(f, f.Word()), URL: messy(f, fakeURL(f))})
		}
		user := User{
			Name:   messy(f, f.Name()),
			Bio:    optional(f, messy(f, f.Sentence(12))),
			Image:  optional(f, messy(f, fakeURL(f))),
			Links:  links,
			Status: optional(f, messy(f, f.Emoji()+" "+f.Word())),
		}.Sanitize(nil)
		assert.Equal(user, user.Sanitize(nil))

		post := Post{
			Content:     messy(f, f.Sentence(f.Number(1, 40))),
			Kind:        PostKind(f.RandomString([]string{"short", "long", "image", "video", "link", "file"})),
			Parent:      optional(f, fakeURL(f)),
			Attachments: []string{fakeURL(f), messy(f, fakeURL(f))},
		}
		if f.Bool() {
			post.Embed = &PostEmbed{Kind: PostShort, URI: messy(f, fakeURL(f))}
		}
		post = post.Sanitize(nil)
		assert.Equal(post, post.Sanitize(nil))

		tag := Tag{URI: messy(f, fakeURL(f)), Label: messy(f, f.Word()), CreatedAt: f.Int64()}.Sanitize(nil)
		assert.Equal(tag, tag.Sanitize(nil))
		assert.Equal(tag.HashID(), tag.Sanitize(nil).HashID())

		bookmark := Bookmark{URI: messy(f, fakeURL(f))}.Sanitize(nil)
		assert.Equal(bookmark, bookmark.Sanitize(nil))

		file := File{
			Name:        messy(f, f.Word()+".png"),
			Src:         messy(f, fakeURL(f)),
			ContentType: messy(f, "image/png"),
			Size:        int64(f.Number(1, 1<<20)),
		}.Sanitize(nil)
		assert.Equal(file, file.Sanitize(nil))

		feed := Feed{
			Config: FeedConfig{Tags: []string{messy(f, f.Word()), messy(f, f.Word())}, Reach: ReachAll, Layout: LayoutWide, Sort: SortRecent},
			Name:   messy(f, f.Word()),
		}.Sanitize(nil)
		assert.Equal(feed, feed.Sanitize(nil))
		assert.Equal(feed.HashID(), feed.Sanitize(nil).HashID())
	}
}
