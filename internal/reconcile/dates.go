package reconcile

import (
	"strings"
	"time"
)

// ParseFlexibleDate resolves a raw date value through the two-stage
// parser: ISO 8601 first, then the DD-MM-YYYY literal form. Unparseable
// or missing values resolve to nil, never an error.
func ParseFlexibleDate(v any) *time.Time {
	switch x := v.(type) {
	case nil:
		return nil
	case time.Time:
		if x.IsZero() {
			return nil
		}
		return &x
	case *time.Time:
		return x
	}

	s := strings.TrimSpace(toString(v))
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "02-01-2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// SalesMonth derives YYYY-MM from a ship date; nil ship date gives nil.
func SalesMonth(shipDate *time.Time) *string {
	if shipDate == nil {
		return nil
	}
	m := shipDate.Format("2006-01")
	return &m
}
