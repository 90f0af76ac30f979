package nodeopts

import "testing"

func TestIsExplicitMemorySize(t *testing.T) {
	for _, region := range []string{"old-space", "semi-space", "heap"} {
		for _, option := range []string{"--max-" + region + "-size", "--max-" + region + "-size=400"} {
			if !IsExplicitMemorySize(option) {
				t.Fatalf("%s: expected match", option)
			}
		}
		for _, option := range []string{
			"--max-" + region + "-size-something-unknown",
			"--max-" + region + "-size-something-unknown=400",
			"--max-" + region + "-size=",
			"--max-" + region + "-size=lots",
			" --max-" + region + "-size",
		} {
			if IsExplicitMemorySize(option) {
				t.Fatalf("%s: expected no match", option)
			}
		}
	}
	if IsExplicitMemorySize("--max-young-space-size=1") {
		t.Fatalf("unexpected match for unknown region")
	}
}

func TestHasExplicitMemorySize(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   bool
	}{
		{name: "empty", tokens: nil, want: false},
		{name: "env string", tokens: Fields("  --inspect   --max-old-space-size=512\t--trace-warnings "), want: true},
		{name: "argv", tokens: []string{"app.js", "--max-heap-size=64"}, want: true},
		{name: "none", tokens: Fields("--inspect --enable-source-maps"), want: false},
	}
	for _, tc := range tests {
		if got := HasExplicitMemorySize(tc.tokens); got != tc.want {
			t.Fatalf("%s: HasExplicitMemorySize = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestMaxSizeFlagRoundTrips(t *testing.T) {
	flag := MaxSizeFlag("old-space", 300)
	if flag != "--max-old-space-size=300" {
		t.Fatalf("unexpected flag %q", flag)
	}
	if !IsExplicitMemorySize(flag) {
		t.Fatalf("expected formatted flag to be detected")
	}
}
