// Package pubkyapp is the root of the pubky.app data model packages: syntax (identifiers), resource (paths and URIs), models (object kinds and validation), and importer (URI-driven decoding).
package pubkyapp

import (
	"github.com/pubky/pubky-app-specs-go/pubkyapp/config"
)

// Version of the data model implemented by this module.
const Version = config.Version
