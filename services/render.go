package services

import (
	"strings"
)

// Placeholders replaced with the recipient's name by RenderMessage.
var NamePlaceholders = []string{"{{name}}", "{name}", "[ContactName]"}

// anonymousName is used when a message has no contact behind it.
const anonymousName = "there"

// RenderMessage substitutes every recognized name placeholder in content.
// Unknown tokens are left as they are.
func RenderMessage(content, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = anonymousName
	}
	pairs := make([]string, 0, len(NamePlaceholders)*2)
	for _, p := range NamePlaceholders {
		pairs = append(pairs, p, name)
	}
	return strings.NewReplacer(pairs...).Replace(content)
}
