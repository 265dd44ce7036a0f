// Package normalize turns raw tag values into the canonical TrackRecord fields.
//
// Everything here is pure: no I/O, no logging.
package normalize

import (
	"math"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/listenupapp/tagexport/internal/domain"
)

// ArtistSeparator joins multi-valued artist fields.
const ArtistSeparator = ", "

var (
	mp3Suffix      = regexp.MustCompile(`(?i)\.mp3$`)
	leadingTrackNo = regexp.MustCompile(`^\d+\s*-\s*`)
	leadingDigits  = regexp.MustCompile(`^\s*(\d+)`)
	lower          = cases.Lower(language.Und)
)

// TitleCase lowercases s and capitalizes the first letter of each
// whitespace-separated word. Runs of whitespace collapse to one space.
//
//	"indie   ROCK" -> "Indie Rock"
func TitleCase(s string) string {
	words := strings.Fields(lower.String(s))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// CleanTitle strips a trailing ".mp3" (any case) and a leading "NN - "
// track prefix from a file name.
//
//	"03 - Song Name.mp3" -> "Song Name"
func CleanTitle(filename string) string {
	s := mp3Suffix.ReplaceAllString(filename, "")
	s = leadingTrackNo.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// TitleFromFilename returns the base name of path without its extension.
// Used when a file has no title tag or cannot be parsed.
func TitleFromFilename(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" && ext != base {
		return strings.TrimSuffix(base, ext)
	}
	return base
}

// SanitizeGenres trims, drops empties, title-cases and dedupes genres,
// keeping first-seen order. The result is never nil.
//
//	["rock", "ROCK", " rock ", ""] -> ["Rock"]
func SanitizeGenres(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, g := range raw {
		g = strings.TrimSpace(stripNUL(g))
		if g == "" {
			continue
		}
		g = TitleCase(g)
		key := norm.NFC.String(g)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, g)
	}
	return out
}

// Artist flattens the artist sum type into the record's single string.
func Artist(a domain.Artist) string {
	switch a.Kind() {
	case domain.ArtistSingle:
		return a.Names()[0]
	case domain.ArtistMultiple:
		return strings.Join(a.Names(), ArtistSeparator)
	default:
		return ""
	}
}

// LeadingInt parses the number at the start of s: "3/12" -> 3,
// "2004-06-01" -> 2004. Returns nil when s has no leading digits.
func LeadingInt(s string) *int {
	m := leadingDigits.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

// PositiveInt maps readers that report "unknown" as 0 onto nil.
func PositiveInt(n int) *int {
	if n <= 0 {
		return nil
	}
	return &n
}

// Duration clamps negative and NaN durations to 0.
func Duration(seconds float64) float64 {
	if math.IsNaN(seconds) || seconds < 0 {
		return 0
	}
	return seconds
}

// Fallback is the record used when a file cannot be parsed: title from the
// file name and nothing else.
func Fallback(path string) domain.TrackRecord {
	return domain.TrackRecord{
		Path:  domain.FileName(path),
		Title: TitleFromFilename(path),
		Genre: []string{},
	}
}

// Text trims s and removes NUL bytes some ID3 writers leave behind.
func Text(s string) string {
	return strings.TrimSpace(stripNUL(s))
}

func stripNUL(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 {
			return -1
		}
		return r
	}, s)
}
