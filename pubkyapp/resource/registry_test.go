package resource

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/pubky/pubky-app-specs-go/pubkyapp/config"
	"github.com/pubky/pubky-app-specs-go/pubkyapp/syntax"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testOwner  = "operrr8wsbpr3ue9d4qj41ge1kcc6r7fdiy6o3ugjrrhi4y77rdo"
	testTarget = "pxnu33x7jtpx9ar1ytsi4yxbp6a5o36gwhffs8zoxmbuptici1jy"
)

func readLines(t *testing.T, path string) []string {
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	var out []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		out = append(out, line)
	}
	require.NoError(t, scanner.Err())
	return out
}

func TestInteropURIsValid(t *testing.T) {
	assert := assert.New(t)
	for _, line := range readLines(t, "testdata/uri_syntax_valid.txt") {
		p, err := ParseURI(line)
		if err != nil {
			fmt.Println("GOOD: " + line)
			assert.NoError(err)
			continue
		}
		assert.Equal(syntax.PubkyID(testOwner), p.Owner)
		assert.False(p.Resource.IsUnknown(), line)
		out, err := p.URI()
		assert.NoError(err)
		assert.Equal(line, out)
	}
}

func TestInteropURIsUnknown(t *testing.T) {
	assert := assert.New(t)
	for _, line := range readLines(t, "testdata/uri_syntax_unknown.txt") {
		p, err := ParseURI(line)
		if err != nil {
			fmt.Println("UNKNOWN: " + line)
			assert.NoError(err)
			continue
		}
		assert.Equal(Unknown(), p.Resource, line)
		_, err = p.URI()
		assert.ErrorIs(err, ErrInvalidURI)
	}
}

func TestInteropURIsInvalid(t *testing.T) {
	assert := assert.New(t)
	for _, line := range readLines(t, "testdata/uri_syntax_invalid.txt") {
		_, err := ParseURI(line)
		if err == nil {
			fmt.Println("BAD: " + line)
		}
		assert.ErrorIs(err, ErrInvalidURI, line)
	}
}

func TestParseURIResources(t *testing.T) {
	assert := assert.New(t)
	target := syntax.PubkyID(testTarget)

	cases := map[string]Resource{
		UserURI(testOwner):                                  Profile(),
		LastReadURI(testOwner):                              LastRead(),
		PostURI(testOwner, "0032X1AHXAH40"):                 Post("0032X1AHXAH40"),
		FollowURI(testOwner, testTarget):                    Follow(target),
		MuteURI(testOwner, testTarget):                      Mute(target),
		BookmarkURI(testOwner, "2GN0JCHX9NYXPECQDS8KSMSE7M"): Bookmark("2GN0JCHX9NYXPECQDS8KSMSE7M"),
		TagURI(testOwner, "CBYS8P6VJPHC5XXT4WDW26662W"):      Tag("CBYS8P6VJPHC5XXT4WDW26662W"),
		FileURI(testOwner, "0032GAGWYZ000"):                 File("0032GAGWYZ000"),
		BlobURI(testOwner, "PZBQ010FF079VVZPQG1RNFN6DR"):     Blob("PZBQ010FF079VVZPQG1RNFN6DR"),
		FeedURI(testOwner, "QEGZD1YWG8S61ADWN3NAWJK86C"):     Feed("QEGZD1YWG8S61ADWN3NAWJK86C"),
		BaseURI(testOwner) + "posts/0032X1AHXAH40/comments": Post("0032X1AHXAH40"),
		BaseURI(testOwner) + "posts/0032X1AHXAH40?x=1#frag": Post("0032X1AHXAH40"),
	}
	for raw, want := range cases {
		p, err := ParseURI(raw)
		if !assert.NoError(err, raw) {
			continue
		}
		assert.Equal(want, p.Resource, raw)
	}

	p, err := ParseURI(FollowURI(testOwner, testTarget))
	assert.NoError(err)
	got, ok := p.Resource.Target()
	assert.True(ok)
	assert.Equal(target, got)

	_, ok = Post("0032X1AHXAH40").Target()
	assert.False(ok)
}

func TestParseURIErrorKinds(t *testing.T) {
	assert := assert.New(t)

	_, err := ParseURI("https://" + testOwner + "/pub/pubky.app/posts/0032X1AHXAH40")
	assert.ErrorIs(err, ErrInvalidURI)
	assert.ErrorContains(err, "invalid scheme")

	_, err = ParseURI(FollowURI(testOwner, "user_id"))
	assert.ErrorIs(err, ErrInvalidURI)
	assert.ErrorIs(err, syntax.ErrInvalidIdentifier)

	_, err = ParseURI("pubky://user_id/pub/pubky.app/profile.json")
	assert.ErrorIs(err, syntax.ErrInvalidIdentifier)

	_, err = ParseURI("pubky://alice:pw@" + testOwner + "/pub/pubky.app/profile.json")
	assert.ErrorIs(err, ErrInvalidURI)
	assert.ErrorContains(err, "user info")
}

func TestPathRoundTrip(t *testing.T) {
	assert := assert.New(t)
	faker := gofakeit.New(3)

	for _, k := range Kinds() {
		for i := 0; i < 20; i++ {
			var r Resource
			switch k.Shape() {
			case ShapeSingleton:
				r = Resource{Kind: k}
			case ShapeOwner:
				r = Resource{Kind: k, ID: testTarget}
			default:
				r = Resource{Kind: k, ID: faker.Regex("[0-9A-Z]{13,26}")}
			}

			path, err := BuildPath(r)
			if !assert.NoError(err) {
				continue
			}
			back, err := ParsePath(path)
			assert.NoError(err)
			assert.Equal(r, back)

			uri, err := BuildURI(testOwner, r)
			assert.NoError(err)
			p, err := ParseURI(uri)
			assert.NoError(err)
			assert.Equal(ParsedURI{Owner: testOwner, Resource: r}, *p)
			again, err := p.URI()
			assert.NoError(err)
			assert.Equal(uri, again)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := BuildPath(Unknown())
	assert.ErrorContains(err, "cannot convert unknown resource to URI")
	_, err = BuildPath(Post(""))
	assert.ErrorIs(err, ErrInvalidURI)
	_, err = BuildPath(Post("a/b"))
	assert.ErrorIs(err, ErrInvalidURI)
	_, err = BuildPath(Resource{Kind: KindFollow, ID: "user_id"})
	assert.ErrorIs(err, syntax.ErrInvalidIdentifier)
	_, err = BuildURI("user_id", Profile())
	assert.ErrorIs(err, ErrInvalidURI)
	_, err = BuildPath(Resource{Kind: Kind(200)})
	assert.Error(err)
}

func TestKinds(t *testing.T) {
	assert := assert.New(t)

	assert.Len(Kinds(), 10)
	assert.Equal("posts", KindPost.String())
	assert.Equal("profile.json", KindProfile.String())
	assert.Equal("last_read", KindLastRead.String())
	assert.Equal("unknown", KindUnknown.String())
	assert.Equal("unknown", Kind(99).String())
	assert.Equal("posts/0032X1AHXAH40", Post("0032X1AHXAH40").String())
	assert.Equal("profile.json", Profile().String())

	for _, k := range Kinds() {
		parsed, err := ParseKind(k.String())
		assert.NoError(err)
		assert.Equal(k, parsed)
	}
	k, err := ParseKind("Post")
	assert.NoError(err)
	assert.Equal(KindPost, k)
	k, err = ParseKind("user")
	assert.NoError(err)
	assert.Equal(KindProfile, k)
	_, err = ParseKind("unknown")
	assert.Error(err)
}

func TestCustomRoots(t *testing.T) {
	assert := assert.New(t)

	cfg := config.Default()
	cfg.PublicPath = "/public/"
	cfg.AppPath = "example.app/"
	reg := NewRegistry(cfg)

	path, err := reg.BuildPath(Post("0032X1AHXAH40"))
	assert.NoError(err)
	assert.Equal("/public/example.app/posts/0032X1AHXAH40", path)

	raw := "pubky://" + testOwner + "/public/example.app/posts/0032X1AHXAH40"
	p, err := reg.ParseURI(raw)
	assert.NoError(err)
	assert.Equal(Post("0032X1AHXAH40"), p.Resource)

	uri, err := reg.URI(*p)
	assert.NoError(err)
	assert.Equal(raw, uri)
	uri, err = p.URI()
	assert.NoError(err)
	assert.Equal(PostURI(testOwner, "0032X1AHXAH40"), uri)

	_, err = reg.ParseURI(PostURI(testOwner, "0032X1AHXAH40"))
	assert.ErrorIs(err, ErrInvalidURI)
}

func TestParsedURIJSON(t *testing.T) {
	assert := assert.New(t)

	p, err := ParseURI(PostURI(testOwner, "0032X1AHXAH40"))
	assert.NoError(err)
	b, err := json.Marshal(p)
	assert.NoError(err)
	assert.JSONEq(`{"user_id":"`+testOwner+`","resource":"posts","resource_id":"0032X1AHXAH40"}`, string(b))

	p, err = ParseURI(UserURI(testOwner))
	assert.NoError(err)
	b, err = json.Marshal(p)
	assert.NoError(err)
	assert.JSONEq(`{"user_id":"`+testOwner+`","resource":"profile.json","resource_id":null}`, string(b))
}
