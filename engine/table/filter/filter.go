package filter

import (
	"strings"

	"github.com/compozy/usertable/engine/record"
	"golang.org/x/text/cases"
)

// Apply keeps the records whose name or email contains text, ignoring case.
// Empty text returns records unchanged. Input order is preserved.
func Apply(records []record.Record, text string) []record.Record {
	if text == "" {
		return records
	}
	folder := cases.Fold()
	needle := folder.String(text)
	out := make([]record.Record, 0, len(records))
	for i := range records {
		if matches(folder, &records[i], needle) {
			out = append(out, records[i])
		}
	}
	return out
}

// Matches reports whether rec passes the filter for text.
func Matches(rec *record.Record, text string) bool {
	if text == "" {
		return true
	}
	folder := cases.Fold()
	return matches(folder, rec, folder.String(text))
}

func matches(folder cases.Caser, rec *record.Record, needle string) bool {
	return strings.Contains(folder.String(rec.Name), needle) ||
		strings.Contains(folder.String(rec.Email), needle)
}
