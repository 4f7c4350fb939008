package artifact

import (
	"strings"
	"time"
	"unicode"
)

var preReleaseTokens = map[string]bool{
	"alpha":      true,
	"beta":       true,
	"rc":         true,
	"cr":         true,
	"snapshot":   true,
	"preview":    true,
	"dev":        true,
	"incubating": true,
	"ea":         true,
}

// IsPreRelease reports whether a version string carries a pre-release
// qualifier: alpha, beta, rc, cr, m<digit>, snapshot, preview, dev,
// incubating or ea, compared case-insensitively.
//
// Matching is done on qualifier tokens rather than substrings, so "RELEASE"
// or "1.0-jre" do not match, while "2.0.0-SNAPSHOT", "5.0.0.Beta1" and
// "6.0.0-M2" do.
func IsPreRelease(version string) bool {
	tokens := versionTokens(version)
	for i, t := range tokens {
		if preReleaseTokens[t] {
			return true
		}
		if t == "m" && i+1 < len(tokens) && isDigits(tokens[i+1]) {
			return true
		}
	}
	return false
}

// versionTokens lowercases v and splits it on separators and on transitions
// between letters and digits.
func versionTokens(v string) []string {
	var (
		tokens []string
		cur    strings.Builder
		prev   rune
	)
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range strings.ToLower(v) {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
			prev = 0
			continue
		case prev != 0 && unicode.IsDigit(r) != unicode.IsDigit(prev):
			flush()
		}
		cur.WriteRune(r)
		prev = r
	}
	flush()
	return tokens
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// VersionRecord describes one published version of an artifact.
// Timestamp is the zero time when the registry does not report one.
type VersionRecord struct {
	Version    string    `json:"version"`
	Packaging  string    `json:"packaging,omitempty"`
	Timestamp  time.Time `json:"timestamp,omitzero"`
	IsRelease  bool      `json:"isRelease"`
	Repository string    `json:"repository"`
}

// NewVersionRecord builds a record, classifying the version as a release
// when it carries no pre-release qualifier.
func NewVersionRecord(version string, ts time.Time, repository string) VersionRecord {
	return VersionRecord{
		Version:    version,
		Timestamp:  ts,
		IsRelease:  !IsPreRelease(version),
		Repository: repository,
	}
}
