// rtf.go extracts and rewrites paragraph styles in RTF produced by the
// document converter.
package story

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// styleDefRe matches one style definition in an RTF stylesheet table:
// style number, optional basedon, next, the formatting run and the
// human-readable style name.
var styleDefRe = regexp.MustCompile(`\\s(\d+)(?:\\sbasedon\d+)?\\snext\d+((?:\\[a-z0-9]+ ?)+) ([A-Z][a-zA-Z ]*);`)

// Styles extracts the stylesheet of an RTF document, keyed both by style
// number and by style name ("Preformatted Text", "Normal", ...). The value is
// the literal style run as it appears in paragraph properties.
func Styles(rtf string) (map[string]string, error) {
	matches := styleDefRe.FindAllStringSubmatch(rtf, -1)
	if len(matches) == 0 {
		return nil, errors.New("no RTF styles found")
	}

	styles := make(map[string]string, 2*len(matches))
	for _, m := range matches {
		number, run, name := m[1], m[2], m[3]
		style := `\s` + number + run
		styles[number] = style
		styles[strings.TrimSpace(name)] = style
	}
	return styles, nil
}

// ReplaceStyle rewrites every occurrence of the named style with another,
// e.g. turning the converter's monospace "Preformatted Text" into "Normal".
func ReplaceStyle(rtf, from, to string) (string, error) {
	styles, err := Styles(rtf)
	if err != nil {
		return "", err
	}
	fromStyle, ok := styles[from]
	if !ok {
		return "", fmt.Errorf("RTF style %q not found", from)
	}
	toStyle, ok := styles[to]
	if !ok {
		return "", fmt.Errorf("RTF style %q not found", to)
	}
	return strings.ReplaceAll(rtf, fromStyle, toStyle), nil
}
