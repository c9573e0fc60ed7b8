package model

import (
	"strings"
	"time"
)

var serverTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseServerTime reads the CreatedOn values the API emits. Values without
// an offset are UTC. Unparseable values yield the zero time.
func ParseServerTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}

	for _, layout := range serverTimeLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.UTC()
		}
	}

	return time.Time{}
}

func FormatServerTime(value time.Time) string {
	return value.UTC().Format("2006-01-02T15:04:05.0000000")
}
