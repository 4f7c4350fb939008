package artifact

import "testing"

func TestIsPreRelease(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"2.0.0-SNAPSHOT", true},
		{"1.0.0-alpha", true},
		{"5.0.0.Beta1", true},
		{"1.0.0-RC2", true},
		{"3.0.0.CR1", true},
		{"6.0.0-M2", true},
		{"6.0.0.m1", true},
		{"3.0.0-preview5", true},
		{"1.0-dev", true},
		{"2.1.0-incubating", true},
		{"21-ea", true},
		{"3.12.0", false},
		{"32.1.3-jre", false},
		{"RELEASE", false},
		{"5.3.30.RELEASE", false},
		{"1.0.0-final", false},
		{"2.0-m", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			if got := IsPreRelease(tt.version); got != tt.want {
				t.Errorf("IsPreRelease(%q) = %v, want %v", tt.version, got, tt.want)
			}
		})
	}
}

func TestVersionTokens(t *testing.T) {
	got := versionTokens("6.0.0-M2a")
	want := []string{"6", "0", "0", "m", "2", "a"}
	if len(got) != len(want) {
		t.Fatalf("versionTokens() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("versionTokens() = %v, want %v", got, want)
		}
	}
}
