package index

import (
	"reflect"
	"testing"

	"github.com/MrSnakeDoc/golink/internal/domain"
)

func searchConfig() *domain.Config {
	return &domain.Config{
		Version: 1,
		Groups: []domain.Group{
			{Name: "dev", Title: "Development", Links: []domain.Link{
				{Title: "GitHub", URL: "https://github.com", Keywords: []string{"code"}},
				{Title: "Gitlab", URL: "https://gitlab.com"},
			}},
			{Name: "mail", Title: "Mail", Links: []domain.Link{}},
			{Name: "docs", Title: "Docs", Links: []domain.Link{
				{Title: "Go Reference", URL: "https://pkg.go.dev", Keywords: []string{"golang", "Stdlib"}},
			}},
		},
	}
}

func titles(entries []Entry) []string {
	out := []string{}
	for _, e := range entries {
		out = append(out, e.Link.Title)
	}
	return out
}

func TestFlatten(t *testing.T) {
	entries := Flatten(searchConfig())

	if got := titles(entries); !reflect.DeepEqual(got, []string{"GitHub", "Gitlab", "Go Reference"}) {
		t.Errorf("Flatten() titles = %v", got)
	}
	if entries[2].GroupName != "docs" || entries[2].GroupTitle != "Docs" {
		t.Errorf("Flatten() group = %q/%q, want docs/Docs", entries[2].GroupName, entries[2].GroupTitle)
	}
	if Flatten(nil) != nil {
		t.Error("Flatten(nil) should be nil")
	}
}

func TestFilter(t *testing.T) {
	entries := Flatten(searchConfig())

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query keeps all", "", []string{"GitHub", "Gitlab", "Go Reference"}},
		{"title prefix", "git", []string{"GitHub", "Gitlab"}},
		{"case insensitive", "GITLAB", []string{"Gitlab"}},
		{"url", "pkg.go", []string{"Go Reference"}},
		{"keyword", "stdlib", []string{"Go Reference"}},
		{"keyword substring", "cod", []string{"GitHub"}},
		{"no match", "zzz", []string{}},
		{"whitespace is literal", " ", []string{"Go Reference"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := titles(Filter(entries, tt.query)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFilter_IsSubsequenceOfInput(t *testing.T) {
	entries := Flatten(searchConfig())

	for _, q := range []string{"g", "o", "h", "com", "dev"} {
		got := Filter(entries, q)
		j := 0
		for _, e := range got {
			for j < len(entries) && entries[j].Link.URL != e.Link.URL {
				j++
			}
			if j == len(entries) {
				t.Fatalf("Filter(%q) reordered or invented entries: %v", q, titles(got))
			}
			j++
		}
	}
}
