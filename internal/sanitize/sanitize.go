// Package sanitize implements the content pipeline that gates every
// user-submitted text field: markup sanitization, visible-length computation
// and structural field validation. Stages fail fast with user-facing messages.
package sanitize

import (
	"html"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	internal_errors "github.com/Pangeneses/NeonServer/internal/errors"
)

var (
	fullPolicy   = newFullPolicy()
	strictPolicy = bluemonday.StrictPolicy()

	tagRe          = regexp.MustCompile(`<[^>]*>`)
	categoryJunkRe = regexp.MustCompile(`[\s_]`)
	categoryRe     = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	hashtagRe      = regexp.MustCompile(`^#[a-zA-Z0-9]{1,29}$`)
	imageRe        = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\.(webp|jpg)$`)
	lowerUpperRe   = regexp.MustCompile(`([a-z])([A-Z])`)
)

// newFullPolicy builds the rich-text allow-list: basic formatting, lists,
// links, images and headings. Links are forced to open in a new tab with
// rel="noopener noreferrer".
func newFullPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"b", "i", "em", "strong", "u", "ul", "ol", "li",
		"p", "br", "span", "blockquote", "code", "pre",
		"img", "a", "h1", "h2", "h3",
	)
	p.AllowAttrs("style").Globally()
	p.AllowAttrs("href", "name", "target", "rel").OnElements("a")
	p.AllowAttrs("src", "alt", "width", "height").OnElements("img")

	p.AllowURLSchemes("http", "https", "data", "mailto")
	p.AllowDataURIImages()
	p.AllowRelativeURLs(false)
	p.RequireNoFollowOnLinks(false)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return p
}

// Full applies the rich-text allow-list policy. Idempotent: running it over
// already-sanitized content returns identical output.
func Full(body string) string {
	return fullPolicy.Sanitize(body)
}

// Strict removes all markup, leaving plain text only.
func Strict(body string) string {
	return strictPolicy.Sanitize(body)
}

// VisibleLength counts the characters a reader actually sees: tags stripped,
// entities decoded, surrounding whitespace trimmed. Length rules compare
// against this, never against the raw markup length.
func VisibleLength(body string) int {
	plain := tagRe.ReplaceAllString(body, "")
	decoded := html.UnescapeString(plain)
	return utf8.RuneCountInString(strings.TrimSpace(decoded))
}

// NormalizeCategory strips whitespace and underscores, collapsing user
// spellings like "Sci Fi" and "Sci_Fi" into the stored token "SciFi".
func NormalizeCategory(category string) string {
	return categoryJunkRe.ReplaceAllString(category, "")
}

// CategoryLabel reverses NormalizeCategory for display, inserting a space at
// every lower-to-upper boundary ("SciFi" -> "Sci Fi").
func CategoryLabel(category string) string {
	return lowerUpperRe.ReplaceAllString(category, "$1 $2")
}

// ValidateCategory normalizes and checks the category token, returning the
// cleaned value that should be persisted.
func ValidateCategory(category string) (string, error) {
	cleaned := NormalizeCategory(category)
	if cleaned == "" || len(cleaned) > 50 || !categoryRe.MatchString(cleaned) {
		return "", &internal_errors.ErrorWithStatusCode{
			Message:    "ThreadCategory must be a non-empty string under 50 chars using letters, numbers, _ or -.",
			StatusCode: http.StatusBadRequest,
		}
	}
	return cleaned, nil
}

// ValidateHashtags enforces at most ten tags of the form #Alnum (30 chars max
// including the #).
func ValidateHashtags(tags []string) error {
	if len(tags) > 10 {
		return hashtagError()
	}
	for _, tag := range tags {
		if !hashtagRe.MatchString(tag) {
			return hashtagError()
		}
	}
	return nil
}

func hashtagError() error {
	return &internal_errors.ErrorWithStatusCode{
		Message:    "Each hashtag must start with # and contain only letters and numbers (max 30 chars total).",
		StatusCode: http.StatusBadRequest,
	}
}

// ValidateImageFilename accepts the empty string (no image) or a UUID stem
// with a .webp or .jpg extension.
func ValidateImageFilename(filename string) error {
	if filename == "" {
		return nil
	}
	if !imageRe.MatchString(filename) {
		return &internal_errors.ErrorWithStatusCode{
			Message:    "ThreadImage must be a UUID with .webp or .jpg extension.",
			StatusCode: http.StatusBadRequest,
		}
	}
	return nil
}
