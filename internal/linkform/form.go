// Package linkform validates user input for creating and editing links.
package linkform

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/golink/internal/domain"
	"github.com/MrSnakeDoc/golink/internal/store/configfile"
)

// Mode selects between creating a link and editing one in place.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// BrowserOption is an entry of the browser picker.
type BrowserOption struct {
	Title string
	Value string
}

// BrowserOptions lists the browsers offered when editing a link. The empty
// value is the system default.
var BrowserOptions = []BrowserOption{
	{Title: "System Default", Value: ""},
	{Title: "Google Chrome", Value: "com.google.Chrome"},
	{Title: "Brave Browser", Value: "com.brave.Browser"},
	{Title: "Firefox", Value: "org.mozilla.firefox"},
	{Title: "Safari", Value: "com.apple.Safari"},
	{Title: "Arc", Value: "company.thebrowser.Browser"},
	{Title: "Microsoft Edge", Value: "com.microsoft.edgemac"},
}

// BrowserCompletions returns the options in cobra completion form
// ("value\tTitle"). The system default has no value to complete and is
// left out.
func BrowserCompletions() []string {
	out := make([]string, 0, len(BrowserOptions))
	for _, o := range BrowserOptions {
		if o.Value == "" {
			continue
		}
		out = append(out, o.Value+"\t"+o.Title)
	}
	return out
}

// Values is the raw form input.
type Values struct {
	Title       string
	URL         string
	Icon        string
	Keywords    string // comma separated
	Application string
	Profile     string

	// Group is an existing group name. When NewGroup is set, NewGroupName
	// and NewGroupTitle describe the group to create instead.
	Group         string
	NewGroup      bool
	NewGroupName  string
	NewGroupTitle string
}

// Submission is validated input ready for the config store.
type Submission struct {
	Link          domain.Link
	GroupName     string
	NewGroupTitle string
}

// FromLink prefills the form for editing link.
func FromLink(link domain.Link, group string) Values {
	return Values{
		Title:       link.Title,
		URL:         link.URL,
		Icon:        link.Icon,
		Keywords:    strings.Join(link.Keywords, ", "),
		Application: link.Application,
		Profile:     link.Profile,
		Group:       group,
	}
}

// Build validates v and assembles the link. Group fields are only checked
// in ModeCreate.
func (v Values) Build(mode Mode) (Submission, error) {
	title := strings.TrimSpace(v.Title)
	if title == "" {
		return Submission{}, invalid("Title Required", "Please enter a title for the link")
	}

	url := strings.TrimSpace(v.URL)
	if !configfile.IsAbsoluteURL(url) {
		return Submission{}, invalid("Invalid URL", "Please enter a valid URL")
	}

	link := domain.Link{
		Title:       title,
		URL:         url,
		Keywords:    SplitKeywords(v.Keywords),
		Icon:        strings.TrimSpace(v.Icon),
		Application: v.Application,
		Profile:     strings.TrimSpace(v.Profile),
	}

	sub := Submission{Link: link, GroupName: v.Group}
	if mode == ModeEdit {
		return sub, nil
	}

	if !v.NewGroup {
		if v.Group == "" {
			return Submission{}, invalid("Group Required", "Please select a group")
		}
		return sub, nil
	}

	name := strings.TrimSpace(v.NewGroupName)
	if name == "" {
		return Submission{}, invalid("Group Name Required", "Please enter a name for the new group")
	}
	groupTitle := strings.TrimSpace(v.NewGroupTitle)
	if groupTitle == "" {
		return Submission{}, invalid("Group Title Required", "Please enter a title for the new group")
	}

	sub.GroupName = name
	sub.NewGroupTitle = groupTitle
	return sub, nil
}

// SplitKeywords splits a comma separated list, dropping blanks.
func SplitKeywords(s string) []string {
	var out []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// SuccessMessage returns the notification shown after a save.
func SuccessMessage(mode Mode, title string) (string, string) {
	if mode == ModeCreate {
		return "Link Created", fmt.Sprintf("%q has been added", title)
	}
	return "Link Updated", fmt.Sprintf("%q has been saved", title)
}

func invalid(title, message string) error {
	return domain.Errorf(domain.KindValidation, title, "%s", message)
}
