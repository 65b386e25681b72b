// Package alert renders change descriptions into titled text sections and
// delivers them through a Notifier.
package alert

import (
	"strings"
	"unicode/utf8"
)

// Section renders a titled alert section: the title, a dash underline of the
// same length, then the descriptions separated by blank lines.
func Section(title string, descriptions []string) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", utf8.RuneCountInString(title)))
	b.WriteByte('\n')
	b.WriteString(strings.Join(descriptions, "\n\n"))
	return b.String()
}

// Body joins rendered sections into one notification body.
func Body(sections []string) string {
	return strings.Join(sections, "\n\n")
}
