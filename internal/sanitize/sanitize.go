// Package sanitize coerces loosely typed fields from the upstream APIs into
// strict values or an explicit missing marker.
package sanitize

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MissingRating is the sentinel the ratings API uses for an unrated title.
const MissingRating = "N/A"

var (
	decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	nonWordPattern = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s]`)
	parenPattern   = regexp.MustCompile(`\(.*?\)`)
	alnumPattern   = regexp.MustCompile(`[a-z0-9]+`)
	nonPrintable   = regexp.MustCompile(`[^\x20-\x7E]`)

	entityReplacer = strings.NewReplacer("&amp;", "&", "&#39;", "'")
)

// ParseRating returns a finite float for any numeric value or decimal string.
// nil, "", "N/A" and anything else that is not a finite decimal report false.
func ParseRating(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case string:
		return ParseRatingString(v)
	case []byte:
		return ParseRatingString(string(v))
	case json.Number:
		return ParseRatingString(v.String())
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case *string:
		if v == nil {
			return 0, false
		}
		return ParseRatingString(*v)
	default:
		return 0, false
	}
}

// ParseRatingString is ParseRating for string input.
func ParseRatingString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == MissingRating {
		return 0, false
	}
	if !decimalPattern.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// SplitGenres splits a comma separated genre list and trims each token.
// Empty tokens keep their position; a blank list yields nil.
func SplitGenres(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// FirstGenre returns the first token of SplitGenres. Only this token is kept
// per rating record; an empty first token or "N/A" is missing.
func FirstGenre(s string) (string, bool) {
	parts := SplitGenres(s)
	if len(parts) == 0 || parts[0] == "" || parts[0] == MissingRating {
		return "", false
	}
	return parts[0], true
}

// NormalizeTitle lowercases, drops everything that is not a word character or
// whitespace, and trims.
func NormalizeTitle(s string) string {
	return strings.TrimSpace(nonWordPattern.ReplaceAllString(strings.ToLower(s), ""))
}

// TrailerKey reduces a video title to the key used for trailer dedup:
// "Movie X | Official Trailer" and "Movie X (2024) official trailer HD"
// both become "movie x".
func TrailerKey(s string) string {
	base := strings.ToLower(s)
	base, _, _ = strings.Cut(base, "|")
	base, _, _ = strings.Cut(base, "official")
	base = parenPattern.ReplaceAllString(base, "")
	return strings.Join(alnumPattern.FindAllString(base, -1), " ")
}

// CleanVideoTitle undoes the HTML escaping the video search API applies and
// strips characters outside printable ASCII.
func CleanVideoTitle(s string) string {
	s = entityReplacer.Replace(s)
	return strings.TrimSpace(nonPrintable.ReplaceAllString(s, ""))
}

// IsEpisodic reports whether a video title looks like TV content.
func IsEpisodic(title string) bool {
	t := strings.ToLower(title)
	return strings.Contains(t, "season") || strings.Contains(t, "episode:")
}
