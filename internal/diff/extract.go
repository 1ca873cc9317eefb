package diff

import (
	"regexp"
	"strings"
)

var diffStartRegex = regexp.MustCompile(`^(diff --git |--- |\+\+\+ |@@ )`)

// signatureDelimiter ends the diff part of a patch email (format-patch puts
// the git version after it).
const signatureDelimiter = "-- "

// Extraction splits a message body into its diff and the surrounding prose.
type Extraction struct {
	Diff  string
	Prose string
}

// Normalize converts CRLF line endings to LF.
func Normalize(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

// Extract pulls the diff out of body. When ranges are given only those lines
// are kept, clamped to the body; otherwise the diff runs from the first line
// that looks like diff syntax up to the signature delimiter.
func Extract(body string, ranges []LineRange) Extraction {
	lines := strings.Split(Normalize(body), "\n")

	if len(ranges) > 0 {
		return extractRanges(lines, ranges)
	}

	start := -1
	for i, line := range lines {
		if diffStartRegex.MatchString(line) {
			start = i
			break
		}
	}
	if start < 0 {
		return Extraction{Prose: strings.Join(lines, "\n")}
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if lines[i] == signatureDelimiter {
			end = i
			break
		}
	}

	prose := append(append([]string{}, lines[:start]...), lines[end:]...)
	return Extraction{
		Diff:  joinLines(lines[start:end]),
		Prose: strings.Join(prose, "\n"),
	}
}

func extractRanges(lines []string, ranges []LineRange) Extraction {
	keep := make([]bool, len(lines))
	for _, r := range ranges {
		start := max(r.StartLine, 1)
		end := min(r.EndLine, len(lines))
		for i := start; i <= end; i++ {
			keep[i-1] = true
		}
	}

	var diffLines, prose []string
	for i, line := range lines {
		if keep[i] {
			diffLines = append(diffLines, line)
		} else {
			prose = append(prose, line)
		}
	}
	return Extraction{
		Diff:  joinLines(diffLines),
		Prose: strings.Join(prose, "\n"),
	}
}

// joinLines joins lines with a trailing newline. The empty element left by
// a body that ends in a newline is dropped; other blank lines may be mangled
// context lines and are kept.
func joinLines(lines []string) string {
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// SplitSegments splits text before every line that starts with
// "diff --git", keeping each header with the segment it opens. Text before
// the first header forms its own segment unless it is blank.
func SplitSegments(text string) []string {
	if text == "" {
		return nil
	}

	var segments []string
	var current strings.Builder
	flush := func() {
		if strings.TrimSpace(current.String()) != "" {
			segments = append(segments, current.String())
		}
		current.Reset()
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		if strings.HasPrefix(line, "diff --git") {
			flush()
		}
		current.WriteString(line)
	}
	flush()

	return segments
}
