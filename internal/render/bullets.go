package render

import "strings"

// Placeholder is the single item rendered for an absent or blank field.
const Placeholder = "Not specified."

// Bullets turns a free-text advisory field into list items. Text containing a
// newline is split on "\n" with each line trimmed and blank lines dropped;
// other text becomes one trimmed item. Blank input, or input that leaves no
// items, renders as the placeholder.
func Bullets(text string) []string {
	return BulletsN(text, 0)
}

// BulletsN is Bullets keeping at most limit items. A limit <= 0 keeps all.
func BulletsN(text string, limit int) []string {
	if strings.TrimSpace(text) == "" {
		return []string{Placeholder}
	}

	var items []string
	if strings.Contains(text, "\n") {
		for _, line := range strings.Split(text, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				items = append(items, line)
			}
		}
	} else {
		items = []string{strings.TrimSpace(text)}
	}

	if len(items) == 0 {
		return []string{Placeholder}
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
