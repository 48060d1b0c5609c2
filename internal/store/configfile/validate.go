package configfile

import (
	"fmt"
	"net/url"

	"github.com/MrSnakeDoc/golink/internal/domain"
)

const titleConfigError = "Configuration Error"

// Validate checks a generic decoded tree against the configuration schema
// and reports the first violation, scanning groups and links in file order.
func Validate(raw interface{}) error {
	root, ok := asMap(raw)
	if !ok {
		return schemaError("Configuration file is empty or invalid")
	}

	if v, ok := root["version"]; !ok || !isNumber(v) {
		return schemaError("Configuration missing required 'version' field (must be a number)")
	}

	groups, ok := root["groups"].([]interface{})
	if !ok {
		return schemaError("Configuration missing required 'groups' field (must be an array)")
	}
	if len(groups) == 0 {
		return schemaError("Configuration must contain at least one group")
	}

	for i, g := range groups {
		group, _ := asMap(g)

		name, ok := nonEmptyString(group["name"])
		if !ok {
			return schemaError("Group %d is missing required 'name' field", i+1)
		}
		if _, ok := nonEmptyString(group["title"]); !ok {
			return schemaError("Group '%s' is missing required 'title' field", name)
		}
		links, ok := group["links"].([]interface{})
		if !ok {
			return schemaError("Group '%s' is missing required 'links' field (must be an array)", name)
		}

		for j, l := range links {
			link, _ := asMap(l)

			title, ok := nonEmptyString(link["title"])
			if !ok {
				return schemaError("Link %d in group '%s' is missing required 'title' field", j+1, name)
			}
			rawURL, ok := nonEmptyString(link["url"])
			if !ok {
				return schemaError("Link '%s' in group '%s' is missing required 'url' field", title, name)
			}
			if !IsAbsoluteURL(rawURL) {
				return schemaError("Link '%s' in group '%s' has invalid URL: %s", title, name, rawURL)
			}
		}
	}

	return nil
}

// IsAbsoluteURL reports whether s parses as a URL with a scheme and a host.
func IsAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

func schemaError(format string, args ...interface{}) error {
	return domain.Errorf(domain.KindConfigSchema, titleConfigError, format, args...)
}

// asMap accepts both JSON objects and YAML mappings
func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func isNumber(v interface{}) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

func nonEmptyString(v interface{}) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
