package launcher

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/MrSnakeDoc/golink/internal/utils"
)

type profileInfo struct {
	Name     string `json:"name"`
	GaiaName string `json:"gaia_name"`
	UserName string `json:"user_name"`
}

// ResolveProfileDirectory maps a profile display name such as "Work" to
// its directory name such as "Profile 1" using the browser's Local State
// file. Any failure returns profile unchanged, since it may already be a
// directory name.
func (l *Launcher) ResolveProfileDirectory(app, profile string) string {
	b, ok := Lookup(app)
	if !ok {
		return profile
	}
	rel, ok := b.StateDirs[l.goos]
	if !ok || l.stateRoot == "" {
		return profile
	}

	f, err := os.Open(filepath.Join(l.stateRoot, filepath.FromSlash(rel), "Local State"))
	if err != nil {
		return profile
	}
	defer utils.Close(f)

	if dir, ok := matchProfile(f, profile); ok {
		return dir
	}
	return profile
}

// matchProfile walks profile.info_cache in file order and returns the first
// directory whose name, gaia_name or user_name equals profile, or whose
// directory name does.
func matchProfile(r io.Reader, profile string) (string, bool) {
	dec := json.NewDecoder(r)

	if !enterObject(dec, "profile") || !enterObject(dec, "info_cache") || !expectDelim(dec, '{') {
		return "", false
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return "", false
		}
		dir, _ := tok.(string)

		var info profileInfo
		if err := dec.Decode(&info); err != nil {
			return "", false
		}
		if info.Name == profile || info.GaiaName == profile || info.UserName == profile || dir == profile {
			return dir, true
		}
	}
	return "", false
}

// enterObject expects an object at the decoder position and stops right
// after key, leaving its value as the next token.
func enterObject(dec *json.Decoder, key string) bool {
	if !expectDelim(dec, '{') {
		return false
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return false
		}
		if tok == key {
			return true
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return false
		}
	}
	return false
}

func expectDelim(dec *json.Decoder, d json.Delim) bool {
	tok, err := dec.Token()
	return err == nil && tok == d
}

// defaultStateRoot is where Chromium browsers keep per-user data.
func defaultStateRoot(goos string) string {
	if goos == "windows" {
		return os.Getenv("LOCALAPPDATA")
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return dir
}
