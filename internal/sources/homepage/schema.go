// Package homepage imports links from a Homepage dashboard
// (gethomepage.dev) services.yaml or bookmarks.yaml.
package homepage

// Both files share one layout, a list of single-key category maps whose
// values list single-key item maps:
//
//	- Infrastructure:
//	    - AdGuard Home:            # services.yaml: item is a mapping
//	        href: https://adguard.domain.ext
//	        icon: adguard-home.svg
//	- Developer:
//	    - Github:                  # bookmarks.yaml: item is a one-entry list
//	        - abbr: GH
//	          href: https://github.com

// Entry holds the item properties golink understands. Widgets, pings and
// other dashboard-only keys are ignored.
type Entry struct {
	Href        string `yaml:"href"`
	Icon        string `yaml:"icon,omitempty"`
	Abbr        string `yaml:"abbr,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Item is a named service or bookmark.
type Item struct {
	Name     string
	Bookmark bool
	Entry    Entry
}

// Category is a Homepage group in file order.
type Category struct {
	Name  string
	Items []Item
}

// Document is a parsed services.yaml or bookmarks.yaml.
type Document []Category
