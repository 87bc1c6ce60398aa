package id

import (
	"fmt"
	"strings"
	"time"
)

const dateFormat = "2006-01-02"

// Occurrence returns the transaction ID for one materialization of a
// recurring template, like "f47ac10b:2026-01-01". The ID is a pure function
// of template and due date, which is what makes re-running the recurring
// job idempotent.
func Occurrence(templateID string, date time.Time) string {
	return templateID + ":" + date.Format(dateFormat)
}

// ParseOccurrence splits an occurrence ID back into template ID and due date.
func ParseOccurrence(id string) (templateID string, date time.Time, err error) {
	i := strings.LastIndex(id, ":")
	if i < 0 {
		return "", time.Time{}, fmt.Errorf("invalid occurrence ID format: %q", id)
	}

	templateID = id[:i]
	if templateID == "" {
		return "", time.Time{}, fmt.Errorf("empty template ID in occurrence ID %q", id)
	}

	date, err = time.Parse(dateFormat, id[i+1:])
	if err != nil {
		return "", time.Time{}, fmt.Errorf("invalid date in occurrence ID %q: %w", id, err)
	}
	return templateID, date, nil
}
