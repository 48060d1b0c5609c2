package domain

// Config is the user-authored link configuration.
//
// It is read fresh from disk on every load and replaced wholesale by its
// owner on reload. Groups and links keep file order.
type Config struct {
	// Version is a schema marker. Required and numeric; no behaviour
	// branches on it today.
	Version float64 `json:"version" yaml:"version"`

	Settings *Settings `json:"settings,omitempty" yaml:"settings,omitempty"`

	// Groups must contain at least one entry.
	Groups []Group `json:"groups" yaml:"groups"`

	// Templates are carried through load and save untouched.
	Templates []Template `json:"templates,omitempty" yaml:"templates,omitempty"`
}

// Settings holds user defaults applied to links that do not override them.
type Settings struct {
	// DefaultBrowser is an application identifier, or "default" for the
	// system browser.
	DefaultBrowser string `json:"defaultBrowser,omitempty" yaml:"defaultBrowser,omitempty"`

	// DefaultProfile is a browser profile name, e.g. "Work" or "Profile 1".
	DefaultProfile string `json:"defaultProfile,omitempty" yaml:"defaultProfile,omitempty"`

	ShowFavicons *bool `json:"showFavicons,omitempty" yaml:"showFavicons,omitempty"`
}

// Group is a named, ordered collection of links.
//
// Name is the lookup key for mutations. Uniqueness is assumed, not enforced
// at load time: lookups return the first group with a matching name.
type Group struct {
	Name  string `json:"name" yaml:"name"`
	Title string `json:"title" yaml:"title"`
	Icon  string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Links []Link `json:"links" yaml:"links"`
}

// Link is a single bookmarked URL.
//
// Within a group a link is identified by its URL for update purposes.
type Link struct {
	Title    string   `json:"title" yaml:"title"`
	URL      string   `json:"url" yaml:"url"`
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Icon     string   `json:"icon,omitempty" yaml:"icon,omitempty"`

	// Application is an app name or bundle identifier,
	// e.g. "com.google.Chrome" or "Firefox".
	Application string `json:"application,omitempty" yaml:"application,omitempty"`

	// Profile is a browser profile name, e.g. "Work" or "Profile 1".
	Profile string `json:"profile,omitempty" yaml:"profile,omitempty"`
}

// Template is a URL pattern with {placeholders}.
type Template struct {
	Name    string `json:"name" yaml:"name"`
	Pattern string `json:"pattern" yaml:"pattern"`
	Icon    string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// FindGroup returns the index of the first group named name, or -1.
func (c *Config) FindGroup(name string) int {
	for i := range c.Groups {
		if c.Groups[i].Name == name {
			return i
		}
	}
	return -1
}

// FindLink returns the index of the first link whose URL equals url, or -1.
func (g *Group) FindLink(url string) int {
	for i := range g.Links {
		if g.Links[i].URL == url {
			return i
		}
	}
	return -1
}

// LinkCount returns the number of links across all groups.
func (c *Config) LinkCount() int {
	n := 0
	for _, g := range c.Groups {
		n += len(g.Links)
	}
	return n
}

// DefaultBrowser returns the configured default browser, or "".
func (c *Config) DefaultBrowser() string {
	if c == nil || c.Settings == nil {
		return ""
	}
	return c.Settings.DefaultBrowser
}

// DefaultProfile returns the configured default profile, or "".
func (c *Config) DefaultProfile() string {
	if c == nil || c.Settings == nil {
		return ""
	}
	return c.Settings.DefaultProfile
}

// FaviconsEnabled reports whether domain icons are shown. Unset means true.
func (c *Config) FaviconsEnabled() bool {
	if c == nil || c.Settings == nil || c.Settings.ShowFavicons == nil {
		return true
	}
	return *c.Settings.ShowFavicons
}
