// Package display turns game state into the short text lines the terminal
// front end prints: names, event notices and the status pane.
package display

import (
	"strings"
	"unicode"

	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const DefaultWidth = 80

var titleCaser = cases.Title(language.English)

// Wrap word-wraps text to DefaultWidth, preserving ANSI escape sequences.
func Wrap(text string) string {
	return WrapWidth(text, DefaultWidth)
}

// WrapWidth word-wraps text to width and returns the lines.
func WrapWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// Lines wraps text to width and splits it into lines.
func Lines(text string, width int) []string {
	return strings.Split(WrapWidth(text, width), "\n")
}

// Title turns an identifier such as "crystalScarlet" into "Crystal Scarlet".
func Title(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return titleCaser.String(b.String())
}
