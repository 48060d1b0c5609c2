// Package icons turns icon specifiers and link URLs into icon descriptors.
package icons

import (
	"regexp"
	"strings"

	"github.com/MrSnakeDoc/golink/internal/domain"
)

const iconifyBase = "https://api.iconify.design"

// Kind tags the variant held by a Descriptor.
type Kind int

const (
	KindDefault Kind = iota
	KindIconify
	KindURL
	KindCatalog
	KindSymbol
	KindAsset
)

func (k Kind) String() string {
	switch k {
	case KindIconify:
		return "iconify"
	case KindURL:
		return "url"
	case KindCatalog:
		return "catalog"
	case KindSymbol:
		return "symbol"
	case KindAsset:
		return "asset"
	default:
		return "default"
	}
}

// Descriptor is a resolved icon. Which fields are set depends on Kind:
//
//	KindDefault, KindCatalog: Name is the catalog key
//	KindIconify:              Set, Name and Source (the SVG URL)
//	KindURL, KindAsset:       Source
//	KindSymbol:               Name and Source ("sf-symbol:<name>")
type Descriptor struct {
	Kind   Kind
	Set    string
	Name   string
	Source string
}

// Default is the fallback icon.
var Default = Descriptor{Kind: KindDefault, Name: "Link"}

// String renders the descriptor the way it would be handed to a renderer.
func (d Descriptor) String() string {
	if d.Source != "" {
		return d.Source
	}
	return d.Name
}

// Glyph returns a terminal-friendly symbol for the icon.
func (d Descriptor) Glyph() string {
	switch d.Kind {
	case KindCatalog, KindDefault:
		if g, ok := catalog[d.Name]; ok {
			return g
		}
	case KindIconify, KindURL:
		return "◆"
	case KindSymbol, KindAsset:
		return "◇"
	}
	return catalog["Link"]
}

var assetExt = regexp.MustCompile(`(?i)\.(png|jpg|jpeg|svg|gif)$`)

// Resolve parses an icon specifier. The first matching rule wins:
// iconify triple, http(s) URL, catalog key, sf-symbol prefix, image asset
// path, dotted symbol name, and finally the default icon.
func Resolve(spec string) Descriptor {
	if spec == "" {
		return Default
	}

	if strings.HasPrefix(spec, "iconify:") {
		if parts := strings.Split(spec, ":"); len(parts) == 3 {
			return Iconify(parts[1], parts[2])
		}
	}

	if strings.HasPrefix(spec, "http://") || strings.HasPrefix(spec, "https://") {
		return Descriptor{Kind: KindURL, Source: spec}
	}

	if _, ok := catalog[spec]; ok {
		return Descriptor{Kind: KindCatalog, Name: spec}
	}

	if name, ok := strings.CutPrefix(spec, "sf-symbol:"); ok {
		return Symbol(name)
	}
	if name, ok := strings.CutPrefix(spec, "sf."); ok {
		return Symbol(name)
	}

	if assetExt.MatchString(spec) {
		return Descriptor{Kind: KindAsset, Source: spec}
	}

	if strings.Contains(spec, ".") {
		return Symbol(spec)
	}

	return Default
}

// Iconify builds the descriptor for an icon served by the Iconify API.
func Iconify(set, name string) Descriptor {
	return Descriptor{
		Kind:   KindIconify,
		Set:    set,
		Name:   name,
		Source: iconifyBase + "/" + set + "/" + name + ".svg",
	}
}

// Symbol builds an SF Symbol descriptor.
func Symbol(name string) Descriptor {
	return Descriptor{Kind: KindSymbol, Name: name, Source: "sf-symbol:" + name}
}

// ForLink picks the icon shown for a link: its explicit icon, then the
// domain icon, then the default.
func ForLink(link domain.Link, favicons bool) Descriptor {
	if link.Icon != "" {
		return Resolve(link.Icon)
	}
	if favicons {
		if d, ok := ForURL(link.URL); ok {
			return d
		}
	}
	return Default
}
