package resource

import (
	"github.com/pubky/pubky-app-specs-go/pubkyapp/config"
)

// The helpers below format URIs under the default configuration without validating their arguments. They are convenient for building test fixtures and references between objects; use [BuildURI] for untrusted input.

func BaseURI(owner string) string {
	return config.Protocol + owner + config.PublicPath + config.AppPath
}

func UserURI(owner string) string {
	return BaseURI(owner) + KindProfile.Segment()
}

func LastReadURI(owner string) string {
	return BaseURI(owner) + KindLastRead.Segment()
}

func PostURI(owner, id string) string {
	return BaseURI(owner) + KindPost.Segment() + id
}

func FollowURI(owner, target string) string {
	return BaseURI(owner) + KindFollow.Segment() + target
}

func MuteURI(owner, target string) string {
	return BaseURI(owner) + KindMute.Segment() + target
}

func BookmarkURI(owner, id string) string {
	return BaseURI(owner) + KindBookmark.Segment() + id
}

func TagURI(owner, id string) string {
	return BaseURI(owner) + KindTag.Segment() + id
}

func FileURI(owner, id string) string {
	return BaseURI(owner) + KindFile.Segment() + id
}

func BlobURI(owner, id string) string {
	return BaseURI(owner) + KindBlob.Segment() + id
}

func FeedURI(owner, id string) string {
	return BaseURI(owner) + KindFeed.Segment() + id
}
