// Package util is a set of utility variables or methods
package util

import mapset "github.com/deckarep/golang-set/v2"

// PexelsHosts are the only hosts a collection url may point at
var PexelsHosts = mapset.NewSet(
	"www.pexels.com", "pexels.com",
)

// SensitiveQueryKeys are stripped from the visible address once consumed
var SensitiveQueryKeys = mapset.NewSet(
	"apiKey", "collectionUrl",
)

// DisplayableMediaTypes are the api media types the slideshow can show
var DisplayableMediaTypes = mapset.NewSet(
	"Photo",
)
