// Package nlparse extracts candidate activities from free text such as
// "drove 50km and ate beef for lunch".
//
// It is a best-effort matcher, not a grammar. An ordered table of rules is
// run over a normalized form of the input; every rule that matches
// contributes one candidate, so a single sentence can yield several.
package nlparse

import (
	"regexp"
	"strings"
)

//nolint:gochecknoglobals // Compiled once; regexp.Regexp is safe for concurrent use.
var (
	gluedUnit   = regexp.MustCompile(`(\d)([a-z]+)`)
	punctuation = regexp.MustCompile(`[^a-z0-9.\s]+`)
)

// Normalize lowercases text, separates numbers glued to units ("50km" ⇒
// "50 km"), drops punctuation except decimal points and collapses whitespace.
func Normalize(text string) string {
	s := strings.ToLower(text)
	s = gluedUnit.ReplaceAllString(s, "$1 $2")
	s = punctuation.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(dropStrayDots(s)), " ")
}

// dropStrayDots keeps a '.' only between two digits.
func dropStrayDots(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c != '.' {
			continue
		}
		if i == 0 || i == len(b)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			b[i] = ' '
		}
	}
	return string(b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
