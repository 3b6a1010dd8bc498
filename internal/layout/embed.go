package layout

import (
	"embed"
	"strings"
)

//go:embed templates/*.yaml
var embeddedTemplates embed.FS

// embeddedTemplate returns a built-in template by name.
func embeddedTemplate(name string) (*Template, bool) {
	data, err := embeddedTemplates.ReadFile("templates/" + name + ".yaml")
	if err != nil {
		return nil, false
	}

	t, err := ParseString(string(data))
	if err != nil {
		// Built-in templates are validated by tests; a parse failure
		// here means a corrupt build.
		return nil, false
	}
	return t, true
}

// ListEmbedded returns the names of all built-in templates.
func ListEmbedded() []string {
	entries, err := embeddedTemplates.ReadDir("templates")
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".yaml") {
			names = append(names, strings.TrimSuffix(entry.Name(), ".yaml"))
		}
	}
	return names
}
