package input

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// LineRange is an inclusive range of 1-indexed lines. Zero bounds are open.
type LineRange struct {
	StartLine int // 1-indexed, 0 means from beginning
	EndLine   int // 1-indexed, 0 means to end
}

var rangePattern = regexp.MustCompile(`^(\d*):(\d*)$`)

// ParseLineRange parses a selection like "11:22".
// Supported formats:
//   - 11:22 - Lines 11-22
//   - 11:   - Lines 11 to end of text
//   - :22   - Lines 1-22
func ParseLineRange(spec string) (LineRange, error) {
	matches := rangePattern.FindStringSubmatch(strings.TrimSpace(spec))
	if matches == nil {
		return LineRange{}, fmt.Errorf("invalid line range: %q (want START:END)", spec)
	}

	var r LineRange
	if matches[1] != "" {
		start, err := strconv.Atoi(matches[1])
		if err != nil || start < 1 {
			return LineRange{}, fmt.Errorf("invalid start line: %s", matches[1])
		}
		r.StartLine = start
	}
	if matches[2] != "" {
		end, err := strconv.Atoi(matches[2])
		if err != nil || end < 1 {
			return LineRange{}, fmt.Errorf("invalid end line: %s", matches[2])
		}
		r.EndLine = end
	}
	if r.StartLine > 0 && r.EndLine > 0 && r.StartLine > r.EndLine {
		return LineRange{}, fmt.Errorf("start line %d is after end line %d", r.StartLine, r.EndLine)
	}
	return r, nil
}

// Extract returns the lines of content covered by the range.
func (r LineRange) Extract(content string) string {
	return ExtractLines(content, r.StartLine, r.EndLine)
}

// String formats the range the way ParseLineRange accepts it.
func (r LineRange) String() string {
	var b strings.Builder
	if r.StartLine > 0 {
		b.WriteString(strconv.Itoa(r.StartLine))
	}
	b.WriteString(":")
	if r.EndLine > 0 {
		b.WriteString(strconv.Itoa(r.EndLine))
	}
	return b.String()
}

// ExtractLines extracts lines from content based on start and end line numbers.
// Line numbers are 1-indexed. 0 for start means from beginning, 0 for end means to end.
func ExtractLines(content string, startLine, endLine int) string {
	lines := strings.Split(content, "\n")
	totalLines := len(lines)

	start := 0
	if startLine > 0 {
		start = startLine - 1
	}
	if start >= totalLines {
		return ""
	}

	end := totalLines
	if endLine > 0 && endLine < totalLines {
		end = endLine
	}

	if start >= end {
		return ""
	}

	return strings.Join(lines[start:end], "\n")
}
