package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// Input bounds shared by the CLI and API.
const (
	// MaxManifestSize is the largest accepted manifest, in bytes.
	MaxManifestSize = 512 * 1024

	// MaxCustomRepositories is the number of caller-supplied repositories
	// accepted in addition to the default registry.
	MaxCustomRepositories = 5

	maxCoordinatePart = 256
)

// ValidateManifestSize rejects manifests over [MaxManifestSize].
// A manifest of exactly MaxManifestSize bytes is accepted.
func ValidateManifestSize(size int) error {
	if size > MaxManifestSize {
		return New(ErrCodeOversizeInput, "manifest exceeds maximum size of %d KB", MaxManifestSize/1024)
	}
	return nil
}

// ValidateRepositories checks caller-supplied repository URLs before any
// network access. It rejects more than [MaxCustomRepositories] entries and
// any entry that is not an https URL with a non-empty host.
func ValidateRepositories(urls []string) error {
	if len(urls) > MaxCustomRepositories {
		return InvalidRepository("too many custom repositories: %d (max %d)", len(urls), MaxCustomRepositories)
	}
	for _, raw := range urls {
		if err := ValidateRepositoryURL(raw); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRepositoryURL checks a single repository URL.
func ValidateRepositoryURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return InvalidRepository("repository URL cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Wrap(ErrCodeInvalidRepository, err, "malformed repository URL %q", raw)
	}
	if !strings.EqualFold(u.Scheme, "https") {
		return InvalidRepository("repository URL must use https: %q", raw)
	}
	if u.Hostname() == "" {
		return InvalidRepository("repository URL has no host: %q", raw)
	}
	return nil
}

// ValidateCoordinatePart validates a groupId, artifactId or version segment.
// It rejects names that could be used for path traversal or injection when
// the segment is spliced into a repository URL.
func ValidateCoordinatePart(kind, value string) error {
	if value == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", kind)
	}
	if len(value) > maxCoordinatePart {
		return New(ErrCodeInvalidInput, "%s too long (max %d characters)", kind, maxCoordinatePart)
	}
	for _, r := range value {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "%s contains invalid characters", kind)
		}
	}
	for _, pattern := range []string{"..", "/", "\\", "\x00"} {
		if strings.Contains(value, pattern) {
			return New(ErrCodeInvalidInput, "%s contains invalid characters: %q", kind, pattern)
		}
	}
	return nil
}
