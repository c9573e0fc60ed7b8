package util

import (
	"regexp"
	"strings"
)

// Segment is one run of text in a search result, marked when it matched
// the keyword.
type Segment struct {
	Text    string
	Matched bool
}

var chatTagPattern = regexp.MustCompile(`^\[[^\]]+\]\s*`)

// CleanChatText strips the leading "[group]" tag chat lines are stored with.
func CleanChatText(text string) string {
	return chatTagPattern.ReplaceAllString(text, "")
}

// Highlight splits text around case-insensitive occurrences of keyword.
// An empty keyword yields the whole text as one unmatched segment.
func Highlight(text string, keyword string) []Segment {
	keyword = strings.TrimSpace(keyword)
	if text == "" {
		return nil
	}

	if keyword == "" {
		return []Segment{{Text: text}}
	}

	pattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(keyword))
	matches := pattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []Segment{{Text: text}}
	}

	segments := make([]Segment, 0, len(matches)*2+1)
	last := 0
	for _, match := range matches {
		if match[0] > last {
			segments = append(segments, Segment{Text: text[last:match[0]]})
		}
		segments = append(segments, Segment{Text: text[match[0]:match[1]], Matched: true})
		last = match[1]
	}

	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}

	return segments
}
