package homepage

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"
)

// templateVar matches Homepage substitutions such as {{HOMEPAGE_VAR_URL}}.
var templateVar = regexp.MustCompile(`\{\{[^}]+\}\}`)

// Loader reads one Homepage file.
type Loader struct {
	filePath string
}

// NewLoader creates a new Homepage loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the file
func (l *Loader) Load() (Document, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read homepage file: %w", err)
	}
	return Parse(data)
}

// Parse decodes services.yaml or bookmarks.yaml content. Items using
// template variables lose those values, so a templated href is skipped
// later by the mapper.
func Parse(data []byte) (Document, error) {
	data = stripTemplateVariables(data)

	var raw []map[string][]map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse homepage yaml: %w", err)
	}

	var doc Document
	for _, categoryMap := range raw {
		for _, categoryName := range sortedKeys(categoryMap) {
			category := Category{Name: categoryName}
			for _, itemMap := range categoryMap[categoryName] {
				for _, itemName := range sortedKeys(itemMap) {
					if item, ok := decodeItem(itemName, itemMap[itemName]); ok {
						category.Items = append(category.Items, item)
					}
				}
			}
			doc = append(doc, category)
		}
	}
	return doc, nil
}

// decodeItem accepts a services.yaml mapping or a bookmarks.yaml list and
// skips anything else, such as nested service groups.
func decodeItem(name string, node yaml.Node) (Item, bool) {
	item := Item{Name: name}

	switch node.Kind {
	case yaml.MappingNode:
		if err := node.Decode(&item.Entry); err != nil {
			return Item{}, false
		}
	case yaml.SequenceNode:
		var entries []Entry
		if err := node.Decode(&entries); err != nil || len(entries) == 0 {
			return Item{}, false
		}
		item.Entry = entries[0]
		item.Bookmark = true
	default:
		return Item{}, false
	}
	return item, true
}

// stripTemplateVariables blanks Homepage template variables
// Example: {{HOMEPAGE_VAR_ADGUARD_USER}} -> ""
func stripTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAll(data, []byte(`""`))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
