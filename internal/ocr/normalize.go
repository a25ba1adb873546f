// Package ocr cleans up text returned by the remote inference endpoint
// before field matching runs over it.
package ocr

import (
	"regexp"
	"strings"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
)

var reBoxNoise = regexp.MustCompile(`(?m)^\s*[_\-]{3,}\s*$`)

// letter O between digits is almost always a misread zero
var reZeroArtifact = regexp.MustCompile(`(\d)[Oo](\d)`)

// Normalize collapses noisy whitespace and strips ruled-line artifacts.
// Conservative: keeps line breaks; collapses >2 newlines into a single blank
// line. Line boundaries matter downstream because buyer/seller capture is
// bounded by end of line.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reTabs.ReplaceAllString(s, " ")
	s = reMultiSpace.ReplaceAllString(s, " ")
	s = reBoxNoise.ReplaceAllString(s, "")
	// twice: matches cannot overlap, so "1OO1" needs a second pass
	s = reZeroArtifact.ReplaceAllString(s, "${1}0${2}")
	s = reZeroArtifact.ReplaceAllString(s, "${1}0${2}")
	// collapse too many blank lines
	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	// trim trailing spaces on lines
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	s = strings.Join(lines, "\n")
	return strings.TrimSpace(s)
}
