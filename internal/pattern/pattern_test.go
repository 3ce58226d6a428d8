package pattern

import (
	"testing"
)

func TestPatternFormat(t *testing.T) {
	tt := []struct {
		ext  string
		want string
	}{
		{"txt", "*.txt"},
		{"c", "*.c"},
		{"tar.gz", "*.tar.gz"},
		{"", "*."},
	}

	var b Buffer
	for _, tc := range tt {
		got := string(b.Pattern(tc.ext))
		if got != tc.want {
			t.Fatalf("Pattern(%q): got %q, want %q", tc.ext, got, tc.want)
		}
	}
}

func TestBufferMonotonicGrowth(t *testing.T) {
	tt := []struct {
		ext       string
		wantGrows int
		wantCap   int
	}{
		{"a", 1, 3},     // first pattern always allocates
		{"bcd", 2, 5},   // longer, grows to exactly the needed size
		{"xy", 2, 5},    // shorter, reuses the existing array
		{"bcd", 2, 5},   // equal to the longest seen, no growth
		{"efghi", 3, 7}, // longer again
		{"a", 3, 7},     // never shrinks
	}

	var b Buffer
	for _, tc := range tt {
		b.Pattern(tc.ext)
		if b.Grows() != tc.wantGrows {
			t.Fatalf("after Pattern(%q): got %d grows, want %d", tc.ext, b.Grows(), tc.wantGrows)
		}
		if b.Cap() != tc.wantCap {
			t.Fatalf("after Pattern(%q): got cap %d, want %d", tc.ext, b.Cap(), tc.wantCap)
		}
	}
}

func TestApplyRegistersEveryExtension(t *testing.T) {
	tt := []struct {
		name         string
		filters      []Filter
		wantGroups   int
		wantPatterns int
	}{
		{
			name:         "no filters",
			filters:      nil,
			wantGroups:   0,
			wantPatterns: 0,
		},
		{
			name:         "single filter",
			filters:      []Filter{{Name: "Text", Extensions: []string{"txt", "md"}}},
			wantGroups:   1,
			wantPatterns: 2,
		},
		{
			name: "several filters",
			filters: []Filter{
				{Name: "Images", Extensions: []string{"png", "jpg", "gif"}},
				{Name: "Video", Extensions: []string{"mp4"}},
			},
			wantGroups:   2,
			wantPatterns: 4,
		},
		{
			name: "filter with no extensions still registers",
			filters: []Filter{
				{Name: "Anything"},
				{Name: "Text", Extensions: []string{"txt"}},
			},
			wantGroups:   2,
			wantPatterns: 1,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			var list List
			Apply(tc.filters, &list)

			if len(list.Groups) != tc.wantGroups {
				t.Fatalf("got %d groups, want %d", len(list.Groups), tc.wantGroups)
			}
			if list.Patterns() != tc.wantPatterns {
				t.Fatalf("got %d patterns, want %d", list.Patterns(), tc.wantPatterns)
			}
		})
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	filters := []Filter{
		{Name: "Text", Extensions: []string{"txt", "md"}},
		{Name: "Images", Extensions: []string{"png"}},
	}

	var list List
	Apply(filters, &list)

	if list.Groups[0].Name != "Text" || list.Groups[1].Name != "Images" {
		t.Fatalf("group order not preserved: %+v", list.Groups)
	}
	want := []string{"*.txt", "*.md"}
	for i, p := range list.Groups[0].Patterns {
		if p != want[i] {
			t.Fatalf("pattern %d: got %q, want %q", i, p, want[i])
		}
	}
	if list.Groups[1].Patterns[0] != "*.png" {
		t.Fatalf("got %q, want %q", list.Groups[1].Patterns[0], "*.png")
	}
}

func TestApplySharesOneBuffer(t *testing.T) {
	// Patterns handed to the sink must be stable even though the
	// scratch buffer is reused for every extension.
	filters := []Filter{
		{Name: "Mixed", Extensions: []string{"longer", "a", "medium"}},
	}

	var list List
	Apply(filters, &list)

	want := []string{"*.longer", "*.a", "*.medium"}
	for i, p := range list.Groups[0].Patterns {
		if p != want[i] {
			t.Fatalf("pattern %d: got %q, want %q", i, p, want[i])
		}
	}
}

func TestListUnnamedGroup(t *testing.T) {
	var list List
	list.AddPattern("*.txt")

	if len(list.Groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(list.Groups))
	}
	if list.Groups[0].Name != "" {
		t.Fatalf("got name %q, want empty", list.Groups[0].Name)
	}
	if list.Patterns() != 1 {
		t.Fatalf("got %d patterns, want 1", list.Patterns())
	}
}
