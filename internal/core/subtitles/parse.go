// Package subtitles converts subtitle markup (SRT, WebVTT) into plain text.
package subtitles

import (
	"regexp"
	"strings"
)

// inlineTagRE matches WebVTT inline styling like <c>, </c>, <00:00:01.000>.
var inlineTagRE = regexp.MustCompile(`<[^>]+>`)

// Parse strips timing cues, sequence numbers and markup from subtitle text.
// The format is detected from the content; returns the flattened transcript.
func Parse(data string) string {
	if strings.HasPrefix(strings.TrimSpace(data), "WEBVTT") {
		return ParseVTT(data)
	}
	return ParseSRT(data)
}

// ParseSRT flattens SubRip markup:
//
//	1
//	00:00:00,000 --> 00:00:01,830
//	caption line
//
// Sequence numbers and timing lines are dropped, text lines joined in order.
func ParseSRT(data string) string {
	var lines []string
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isDigitsOnly(line) || strings.Contains(line, "-->") {
			continue
		}
		lines = append(lines, line)
	}
	return dedupeJoin(lines)
}

// ParseVTT flattens WebVTT markup. Auto-generated tracks repeat each line in
// consecutive cues as the rolling caption window moves, so consecutive
// duplicates are collapsed.
func ParseVTT(data string) string {
	var lines []string
	inHeader := true
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if inHeader {
			// header block ends at the first blank line
			if line == "" {
				inHeader = false
			}
			continue
		}
		if line == "" || strings.Contains(line, "-->") || isDigitsOnly(line) {
			continue
		}
		if strings.HasPrefix(line, "NOTE") || strings.HasPrefix(line, "STYLE") {
			continue
		}
		line = inlineTagRE.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return dedupeJoin(lines)
}

// dedupeJoin joins lines with spaces, skipping consecutive duplicates.
func dedupeJoin(lines []string) string {
	var sb strings.Builder
	prev := ""
	for _, line := range lines {
		if line == prev {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(line)
		prev = line
	}
	return sb.String()
}

func isDigitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
