package errors

import (
	"strings"
	"testing"
)

func TestValidateManifestSize(t *testing.T) {
	if err := ValidateManifestSize(MaxManifestSize); err != nil {
		t.Errorf("exact limit rejected: %v", err)
	}
	err := ValidateManifestSize(MaxManifestSize + 1)
	if !Is(err, ErrCodeOversizeInput) {
		t.Errorf("limit+1: got %v, want OVERSIZE_INPUT", err)
	}
}

func TestValidateRepositories(t *testing.T) {
	tests := []struct {
		name    string
		urls    []string
		wantErr bool
	}{
		{"none", nil, false},
		{"https", []string{"https://repo.example.com/maven2"}, false},
		{"https uppercase scheme", []string{"HTTPS://repo.example.com"}, false},
		{"plain http", []string{"http://repo.example.com"}, true},
		{"ftp", []string{"ftp://repo.example.com"}, true},
		{"no host", []string{"https:///path"}, true},
		{"empty", []string{" "}, true},
		{"one bad among good", []string{"https://a.example.com", "http://b.example.com"}, true},
		{"five allowed", []string{"https://a.io", "https://b.io", "https://c.io", "https://d.io", "https://e.io"}, false},
		{"six rejected", []string{"https://a.io", "https://b.io", "https://c.io", "https://d.io", "https://e.io", "https://f.io"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRepositories(tt.urls)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateRepositories() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidRepository) {
				t.Errorf("code = %v, want INVALID_REPOSITORY", GetCode(err))
			}
		})
	}
}

func TestValidateCoordinatePart(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"org.apache.commons", false},
		{"3.12.0-SNAPSHOT", false},
		{"", true},
		{"../etc", true},
		{"a/b", true},
		{"a b", true},
		{strings.Repeat("a", 257), true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := ValidateCoordinatePart("groupId", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoordinatePart(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}
