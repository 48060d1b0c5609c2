package homepage

import (
	"reflect"
	"testing"
)

func TestGroups_Services(t *testing.T) {
	doc, err := Parse([]byte(servicesYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	groups, err := Groups(doc)
	if err != nil {
		t.Fatalf("Groups() error = %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("Groups() returned %d groups, want 2", len(groups))
	}

	infra := groups[0]
	if infra.Name != "infrastructure" || infra.Title != "Infrastructure" {
		t.Errorf("group = %q/%q, want infrastructure/Infrastructure", infra.Name, infra.Title)
	}

	adguard := infra.Links[1]
	if adguard.Title != "AdGuard Home" || adguard.URL != "https://adguard.domain.ext" {
		t.Errorf("link = %+v", adguard)
	}
	if !reflect.DeepEqual(adguard.Keywords, []string{"adguard"}) {
		t.Errorf("Keywords = %v, want [adguard]", adguard.Keywords)
	}
	if want := dashboardIcons + "/svg/adguard-home.svg"; adguard.Icon != want {
		t.Errorf("Icon = %q, want %q", adguard.Icon, want)
	}

	// the host label equals the title, so no keyword is added
	jellyfin := groups[1].Links[0]
	if len(jellyfin.Keywords) != 0 {
		t.Errorf("Keywords = %v, want none", jellyfin.Keywords)
	}
	if jellyfin.Icon != "iconify:mdi:jellyfish" {
		t.Errorf("Icon = %q, want iconify:mdi:jellyfish", jellyfin.Icon)
	}
}

func TestGroups_Bookmarks(t *testing.T) {
	doc, err := Parse([]byte(bookmarksYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	groups, err := Groups(doc)
	if err != nil {
		t.Fatalf("Groups() error = %v", err)
	}

	gh := groups[0].Links[0]
	if !reflect.DeepEqual(gh.Keywords, []string{"gh"}) {
		t.Errorf("Keywords = %v, want [gh]", gh.Keywords)
	}
	if gh.Icon != "" {
		t.Errorf("Icon = %q, want empty", gh.Icon)
	}
	if got := groups[1].Links[0].Icon; got != "iconify:simple-icons:reddit" {
		t.Errorf("Icon = %q, want iconify:simple-icons:reddit", got)
	}
}

func TestGroups_SkipsUnusableItems(t *testing.T) {
	doc := Document{
		{Name: "Broken", Items: []Item{
			{Name: "No href"},
			{Name: "Relative", Entry: Entry{Href: "/admin"}},
			{Name: "Templated", Entry: Entry{Href: `https://""/x`}},
		}},
	}

	groups, err := Groups(doc)
	if err == nil {
		t.Errorf("Groups() = %+v, want error for a document without links", groups)
	}
}

func TestMapIcon(t *testing.T) {
	tests := []struct {
		icon string
		want string
	}{
		{"", ""},
		{"https://example.com/icon.png", "https://example.com/icon.png"},
		{"mdi-github", "iconify:mdi:github"},
		{"si-github", "iconify:simple-icons:github"},
		{"/icons/local.png", ""},
		{"sonarr.png", dashboardIcons + "/png/sonarr.png"},
		{"sonarr.webp", dashboardIcons + "/webp/sonarr.webp"},
		{"sonarr", dashboardIcons + "/png/sonarr.png"},
	}

	for _, tt := range tests {
		t.Run(tt.icon, func(t *testing.T) {
			if got := mapIcon(tt.icon); got != tt.want {
				t.Errorf("mapIcon(%q) = %q, want %q", tt.icon, got, tt.want)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Infrastructure", "infrastructure"},
		{"Home Automation", "home-automation"},
		{"  Dev / Ops  ", "dev-ops"},
		{"Media 2", "media-2"},
		{"★★", "homepage"},
	}

	for _, tt := range tests {
		if got := slug(tt.in); got != tt.want {
			t.Errorf("slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
