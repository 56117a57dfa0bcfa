package catalog

import (
	"net/url"
	"regexp"
	"strings"
)

const placeholderBase = "https://source.unsplash.com/400x300/?"

var (
	invalidImageValues = map[string]bool{"": true, "#": true, "n/a": true, "na": true, "null": true, "undefined": true}
	nonAlphanumeric    = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
)

type ImageInput struct {
	Image       string
	Name        string
	Description string
	Category    string
}

// ResolvedImage carries the image to show and the placeholder to fall back to
// when Src fails to load.
type ResolvedImage struct {
	Src         string `json:"src"`
	Placeholder string `json:"placeholder"`
}

func ResolveProductImage(in ImageInput) ResolvedImage {
	placeholder := PlaceholderImage(in)
	if src, ok := sanitizeImageURL(in.Image); ok {
		return ResolvedImage{Src: src, Placeholder: placeholder}
	}
	return ResolvedImage{Src: placeholder, Placeholder: placeholder}
}

// PlaceholderImage builds a keyword image URL from the category, name and
// description. "glass" is always the first keyword.
func PlaceholderImage(in ImageInput) string {
	return placeholderBase + url.QueryEscape(keywords(in))
}

func sanitizeImageURL(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if invalidImageValues[strings.ToLower(trimmed)] {
		return "", false
	}
	return trimmed, true
}

func keywords(in ImageInput) string {
	var parts []string
	for _, s := range []string{in.Category, in.Name, in.Description} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	tokens := strings.Fields(nonAlphanumeric.ReplaceAllString(strings.Join(parts, " "), " "))
	if len(tokens) > 6 {
		tokens = tokens[:6]
	}

	out := []string{"glass"}
	seen := map[string]bool{"glass": true}
	for _, tok := range tokens {
		tok = strings.ToLower(tok)
		if seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return strings.Join(out, ",")
}
