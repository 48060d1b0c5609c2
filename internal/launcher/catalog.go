package launcher

import "strings"

// Family decides which profile flag a browser understands.
type Family int

const (
	FamilyOther Family = iota
	FamilyChromium
	FamilyFirefox
)

// Browser describes a known browser. Binaries and StateDirs are keyed by
// GOOS; StateDirs are relative to the per-user state root.
type Browser struct {
	ID        string
	AppName   string
	ShortName string
	Binaries  map[string]string
	StateDirs map[string]string
}

var browsers = []Browser{
	{
		ID:        "com.google.Chrome",
		AppName:   "Google Chrome",
		ShortName: "Chrome",
		Binaries: map[string]string{
			"darwin":  "/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"linux":   "google-chrome",
			"windows": `C:\Program Files\Google\Chrome\Application\chrome.exe`,
		},
		StateDirs: map[string]string{
			"darwin":  "Google/Chrome",
			"linux":   "google-chrome",
			"windows": "Google/Chrome/User Data",
		},
	},
	{
		ID:        "com.brave.Browser",
		AppName:   "Brave Browser",
		ShortName: "Brave",
		Binaries: map[string]string{
			"darwin":  "/Applications/Brave Browser.app/Contents/MacOS/Brave Browser",
			"linux":   "brave-browser",
			"windows": `C:\Program Files\BraveSoftware\Brave-Browser\Application\brave.exe`,
		},
		StateDirs: map[string]string{
			"darwin":  "BraveSoftware/Brave-Browser",
			"linux":   "BraveSoftware/Brave-Browser",
			"windows": "BraveSoftware/Brave-Browser/User Data",
		},
	},
	{
		ID:        "org.mozilla.firefox",
		AppName:   "Firefox",
		ShortName: "Firefox",
		Binaries: map[string]string{
			"darwin":  "/Applications/Firefox.app/Contents/MacOS/firefox",
			"linux":   "firefox",
			"windows": `C:\Program Files\Mozilla Firefox\firefox.exe`,
		},
	},
	{
		ID:        "com.apple.Safari",
		AppName:   "Safari",
		ShortName: "Safari",
	},
	{
		ID:        "company.thebrowser.Browser",
		AppName:   "Arc",
		ShortName: "Arc",
	},
	{
		ID:        "com.microsoft.edgemac",
		AppName:   "Microsoft Edge",
		ShortName: "Edge",
		Binaries: map[string]string{
			"darwin":  "/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
			"linux":   "microsoft-edge",
			"windows": `C:\Program Files (x86)\Microsoft\Edge\Application\msedge.exe`,
		},
		StateDirs: map[string]string{
			"darwin":  "Microsoft Edge",
			"linux":   "microsoft-edge",
			"windows": "Microsoft/Edge/User Data",
		},
	},
}

// chromiumBrowsers lists the identifiers that take --profile-directory with
// a resolved directory name.
var chromiumBrowsers = []string{
	"com.google.Chrome",
	"com.brave.Browser",
	"com.microsoft.edgemac",
	"Google Chrome",
	"Brave Browser",
	"Microsoft Edge",
}

// Lookup finds a browser by bundle identifier or application name.
func Lookup(app string) (Browser, bool) {
	for _, b := range browsers {
		if b.ID == app || b.AppName == app {
			return b, true
		}
	}
	return Browser{}, false
}

// AppName maps a bundle identifier to its application name. Unknown values
// are returned unchanged.
func AppName(app string) string {
	if b, ok := Lookup(app); ok {
		return b.AppName
	}
	return app
}

// ShortName returns the compact label shown next to a link.
func ShortName(app string) string {
	if b, ok := Lookup(app); ok {
		return b.ShortName
	}
	return app
}

// FamilyOf classifies app by its identifier or application name.
func FamilyOf(app string) Family {
	name := AppName(app)
	for _, c := range chromiumBrowsers {
		if strings.EqualFold(c, app) || strings.EqualFold(c, name) {
			return FamilyChromium
		}
	}
	if strings.Contains(app, "firefox") || strings.Contains(strings.ToLower(name), "firefox") {
		return FamilyFirefox
	}
	return FamilyOther
}
