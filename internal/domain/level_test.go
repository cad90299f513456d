package domain

import "testing"

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want Level
	}{
		{"B1", LevelB1},
		{"b1", LevelB1},
		{" c2 ", LevelC2},
		{"a1", LevelA1},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}

	for _, in := range []string{"", "D1", "B3", "beginner"} {
		if _, err := ParseLevel(in); err == nil {
			t.Fatalf("ParseLevel(%q) should fail", in)
		}
	}
}

func TestLevelKey(t *testing.T) {
	t.Parallel()

	if got := LevelB2.Key(); got != "b2" {
		t.Fatalf("expected lowercase key, got %q", got)
	}
}

func TestLevelNext(t *testing.T) {
	t.Parallel()

	if got := LevelA1.Next(); got != LevelA2 {
		t.Fatalf("A1.Next() = %s", got)
	}
	if got := LevelC2.Next(); got != LevelA1 {
		t.Fatalf("C2 should wrap to A1, got %s", got)
	}
	if got := Level("b1").Next(); got != LevelB2 {
		t.Fatalf("lowercase input should normalize first, got %s", got)
	}
	if got := Level("junk").Next(); got != DefaultLevel {
		t.Fatalf("unknown input should reset to the default, got %s", got)
	}
}

func TestSettingsSourceEnabled(t *testing.T) {
	t.Parallel()

	settings := DefaultSettings()
	for _, src := range Sources() {
		if !settings.SourceEnabled(src) {
			t.Fatalf("source %s should default to enabled", src)
		}
	}

	settings.NewsSources[SourceMicrosoft] = false
	if settings.SourceEnabled(SourceMicrosoft) {
		t.Fatal("explicit false must win")
	}

	// A source absent from the map counts as enabled.
	delete(settings.NewsSources, SourceGoogle)
	if !settings.SourceEnabled(SourceGoogle) {
		t.Fatal("missing key should read as enabled")
	}
}

func TestSettingsClone(t *testing.T) {
	t.Parallel()

	original := DefaultSettings()
	clone := original.Clone()
	clone.NewsSources[SourceAWS] = false

	if !original.SourceEnabled(SourceAWS) {
		t.Fatal("clone must not share the sources map")
	}
}

func TestArticleVariant(t *testing.T) {
	t.Parallel()

	article := Article{Content: "base", ContentC1: "c1 text"}

	if got := article.Variant(LevelC1); got != "c1 text" {
		t.Fatalf("Variant(C1) = %q", got)
	}
	if got := article.Variant(LevelA1); got != "" {
		t.Fatalf("missing variant should be empty, got %q", got)
	}
	if got := article.Variant(Level("c1")); got != "c1 text" {
		t.Fatalf("variant lookup should normalize casing, got %q", got)
	}
}
