package homepage

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/MrSnakeDoc/golink/internal/domain"
	"github.com/MrSnakeDoc/golink/internal/store/configfile"
)

// dashboardIcons serves the icon names Homepage accepts without a prefix.
const dashboardIcons = "https://cdn.jsdelivr.net/gh/homarr-labs/dashboard-icons"

// Groups converts a Homepage document into golink groups. Categories
// become groups named after a slug of their title; items without a usable
// absolute URL are skipped.
func Groups(doc Document) ([]domain.Group, error) {
	var groups []domain.Group
	for _, category := range doc {
		group := domain.Group{Name: slug(category.Name), Title: category.Name}
		for _, item := range category.Items {
			if link, ok := mapItem(item); ok {
				group.Links = append(group.Links, link)
			}
		}
		if len(group.Links) > 0 {
			groups = append(groups, group)
		}
	}

	if len(groups) == 0 {
		return nil, fmt.Errorf("no valid links found in homepage config")
	}
	return groups, nil
}

func mapItem(item Item) (domain.Link, bool) {
	href := strings.TrimSpace(item.Entry.Href)
	// a quote is what a stripped template variable leaves behind
	if href == "" || strings.Contains(href, `"`) || !configfile.IsAbsoluteURL(href) {
		return domain.Link{}, false
	}

	title := strings.TrimSpace(item.Name)
	if title == "" {
		title = href
	}

	return domain.Link{
		Title:    title,
		URL:      href,
		Keywords: keywords(item, title, href),
		Icon:     mapIcon(item.Entry.Icon),
	}, true
}

// keywords uses the bookmark abbreviation, and for services the first DNS
// label of the host: "jellyfin.domain.ext" -> "jellyfin".
func keywords(item Item, title, href string) []string {
	var out []string
	add := func(k string) {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || k == strings.ToLower(title) {
			return
		}
		for _, existing := range out {
			if existing == k {
				return
			}
		}
		out = append(out, k)
	}

	add(item.Entry.Abbr)
	if !item.Bookmark {
		if u, err := url.Parse(href); err == nil {
			add(extractServiceName(u.Hostname()))
		}
	}
	return out
}

// extractServiceName extracts the first DNS label as service name
func extractServiceName(hostname string) string {
	name, _, _ := strings.Cut(hostname, ".")
	return name
}

// mapIcon translates Homepage icon values into golink icon specifiers:
// "mdi-" and "si-" prefixes become Iconify sets, URLs pass through and
// bare names point at the dashboard-icons collection Homepage uses.
func mapIcon(icon string) string {
	icon = strings.TrimSpace(icon)
	switch {
	case icon == "":
		return ""
	case strings.HasPrefix(icon, "http://"), strings.HasPrefix(icon, "https://"):
		return icon
	case strings.HasPrefix(icon, "mdi-"):
		return "iconify:mdi:" + strings.TrimPrefix(icon, "mdi-")
	case strings.HasPrefix(icon, "si-"):
		return "iconify:simple-icons:" + strings.TrimPrefix(icon, "si-")
	case strings.HasPrefix(icon, "/"):
		// served by the dashboard itself, unreachable from here
		return ""
	}

	ext := "png"
	name := icon
	if i := strings.LastIndex(icon, "."); i > 0 {
		ext = strings.ToLower(icon[i+1:])
		name = icon[:i]
	}
	return fmt.Sprintf("%s/%s/%s.%s", dashboardIcons, ext, name, ext)
}

// slug lowercases s and joins its letter and digit runs with dashes.
func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return "homepage"
	}
	return b.String()
}
