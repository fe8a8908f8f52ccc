package services

import (
	"testing"

	"challenge-tracker/models"
)

func TestValidateLink(t *testing.T) {
	tests := []struct {
		link string
		want bool
	}{
		{"https://twitter.com/gopher/status/1234567890", true},
		{"https://www.linkedin.com/posts/gopher-dev_30daysofcode-activity-7100", true},
		{"https://www.linkedin.com/posts/abc123", true},
		{"not-a-url", false},
		{"", false},
		{"https://twitter.com/gopher", false},
		{"https://twitter.com/gopher/status/", false},
		{"https://twitter.com/gopher/status/notanumber", false},
		{"http://twitter.com/gopher/status/123", false},
		{"https://linkedin.com/posts/abc", false}, // missing www
		{"https://example.com/posts/abc", false},
	}

	for _, tt := range tests {
		if got := ValidateLink(tt.link); got != tt.want {
			t.Errorf("ValidateLink(%q) = %v, want %v", tt.link, got, tt.want)
		}
	}
}

func TestClassifyLink(t *testing.T) {
	tests := []struct {
		link string
		want models.Platform
	}{
		{"https://twitter.com/gopher/status/123", models.PlatformTwitter},
		{"https://www.linkedin.com/posts/gopher-abc", models.PlatformLinkedIn},
		{"https://example.com/whatever", models.PlatformUnknown},
		{"not-a-url", models.PlatformUnknown},
		{"", models.PlatformUnknown},
	}

	for _, tt := range tests {
		if got := ClassifyLink(tt.link); got != tt.want {
			t.Errorf("ClassifyLink(%q) = %v, want %v", tt.link, got, tt.want)
		}
	}
}

// Every link that validates must classify to a concrete platform.
func TestValidatedLinksNeverClassifyUnknown(t *testing.T) {
	links := []string{
		"https://twitter.com/a_b_c/status/99999999999",
		"https://www.linkedin.com/posts/jane-doe_day12-activity-456/",
		"https://www.linkedin.com/posts/x",
	}
	for _, link := range links {
		if !ValidateLink(link) {
			t.Fatalf("expected %q to validate", link)
		}
		if got := ClassifyLink(link); got == models.PlatformUnknown {
			t.Errorf("ClassifyLink(%q) = Unknown for a validated link", link)
		}
	}
}
