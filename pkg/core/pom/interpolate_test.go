package pom

import "testing"

func TestInterpolate(t *testing.T) {
	props := map[string]string{
		"spring.version": "6.1.0",
		"nested":         "${spring.version}",
		"empty":          "",
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no placeholder", "1.0.0", "1.0.0"},
		{"whole value", "${spring.version}", "6.1.0"},
		{"embedded", "v${spring.version}-jre", "v6.1.0-jre"},
		{"two placeholders", "${spring.version}/${spring.version}", "6.1.0/6.1.0"},
		{"unmatched stays literal", "${missing.version}", "${missing.version}"},
		{"mixed matched and unmatched", "${spring.version}-${missing}", "6.1.0-${missing}"},
		{"no recursive expansion", "${nested}", "${spring.version}"},
		{"empty value", "a${empty}b", "ab"},
		{"unterminated", "${spring.version", "${spring.version"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Interpolate(tt.in, props); got != tt.want {
				t.Errorf("Interpolate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestInterpolateIdempotent(t *testing.T) {
	props := map[string]string{"v": "1.2.3", "g": "org.example"}
	inputs := []string{"${v}", "${g}:${v}", "${unknown}-${v}", "plain"}

	for _, in := range inputs {
		once := Interpolate(in, props)
		twice := Interpolate(once, props)
		if once != twice {
			t.Errorf("Interpolate not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
