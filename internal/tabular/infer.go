package tabular

import (
	"regexp"
	"strings"
	"time"

	"github.com/maini-dms/demand-importer/constants"
)

var (
	reInteger = regexp.MustCompile(`^-?\d+$`)
	reDecimal = regexp.MustCompile(`^-?\d+\.\d+$`)
)

// booleanLiterals are accepted case-insensitively. "0" and "1" belong
// here on purpose: an all-0/1 column classifies boolean, not integer.
var booleanLiterals = map[string]struct{}{
	"true": {}, "false": {}, "yes": {}, "no": {}, "1": {}, "0": {},
}

// dateLayouts is the lenient layout set tried for datetime detection.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02-01-2006",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
}

// DetectFieldType classifies a column of raw values. Null and blank
// entries are dropped before inspection; the first rule matching every
// remaining value wins, in strict order: boolean, integer, decimal,
// datetime, text.
func DetectFieldType(values []string) constants.FieldType {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		cleaned = append(cleaned, v)
	}
	if len(cleaned) == 0 {
		return constants.FieldText
	}

	if allMatch(cleaned, func(s string) bool {
		_, ok := booleanLiterals[strings.ToLower(s)]
		return ok
	}) {
		return constants.FieldBoolean
	}
	if allMatch(cleaned, reInteger.MatchString) {
		return constants.FieldInteger
	}
	if allMatch(cleaned, reDecimal.MatchString) {
		return constants.FieldDecimal
	}
	if allMatch(cleaned, func(s string) bool {
		_, ok := parseLenientDate(s)
		return ok
	}) {
		return constants.FieldDatetime
	}
	return constants.FieldText
}

func allMatch(values []string, pred func(string) bool) bool {
	for _, v := range values {
		if !pred(v) {
			return false
		}
	}
	return true
}

func parseLenientDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
