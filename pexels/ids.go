// Package pexels talks to the Pexels API and parses Pexels urls
package pexels

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/aouyang1/pexelwallpaper/util"
)

// PageBaseURL is the prefix of a photo's public page
const PageBaseURL = "https://www.pexels.com/photo/"

var (
	validCollectionID = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	photoSlugPath     = regexp.MustCompile(`(?i)/photo/(?:[^/]*-)?(\d+)/?$`)
	photoImagePath    = regexp.MustCompile(`(?i)/photos/(\d+)(?:/|$)`)
)

// ExtractCollectionID pulls the collection id out of a collection url such as
// https://www.pexels.com/collections/wallpapers-vmnecek/. The id is the last
// hyphen separated part of the slug.
func ExtractCollectionID(rawURL string) (string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", false
	}
	if !util.PexelsHosts.Contains(strings.ToLower(parsed.Hostname())) {
		return "", false
	}

	var segments []string
	for segment := range strings.SplitSeq(parsed.Path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	if len(segments) < 2 || segments[0] != "collections" {
		return "", false
	}

	idParts := strings.Split(segments[1], "-")
	if len(idParts) < 2 {
		return "", false
	}
	potentialID := idParts[len(idParts)-1]
	if !validCollectionID.MatchString(potentialID) {
		return "", false
	}
	return potentialID, true
}

// ExtractPhotoID finds a numeric photo id in either a photo page url
// (/photo/some-slug-123/) or an image url (/photos/123/...).
func ExtractPhotoID(text string) (string, bool) {
	slug := strings.TrimSuffix(strings.TrimSpace(text), "/")
	if slug == "" {
		return "", false
	}

	if m := photoSlugPath.FindStringSubmatch(slug); m != nil {
		return m[1], true
	}
	if m := photoImagePath.FindStringSubmatch(slug); m != nil {
		return m[1], true
	}
	return "", false
}

// PageURL is the public page of the photo with the given id
func PageURL(id string) string {
	return PageBaseURL + id + "/"
}
