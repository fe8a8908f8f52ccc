package services

import (
	"regexp"
	"strings"

	"challenge-tracker/models"
)

// Accepted link shapes. Matching is purely structural — no fetch, no
// existence check.
var (
	twitterStatusRe = regexp.MustCompile(`^https://twitter\.com/[A-Za-z0-9_]+/status/[0-9]+$`)
	linkedinPostsRe = regexp.MustCompile(`^https://www\.linkedin\.com/posts/[A-Za-z0-9_-]+.*$`)
)

// ValidateLink reports whether a raw link matches one of the accepted
// progress-post shapes.
func ValidateLink(link string) bool {
	return twitterStatusRe.MatchString(link) || linkedinPostsRe.MatchString(link)
}

// ClassifyLink maps a link to its platform by domain. Total — malformed input
// classifies as Unknown rather than failing. Callers are expected to have run
// ValidateLink first; ClassifyLink does not re-check shape.
func ClassifyLink(link string) models.Platform {
	switch {
	case strings.Contains(link, "twitter.com"):
		return models.PlatformTwitter
	case strings.Contains(link, "linkedin.com"):
		return models.PlatformLinkedIn
	default:
		return models.PlatformUnknown
	}
}
