// Package ui renders bootz terminal output: styled one-line messages,
// aligned key/value blocks, a live checklist for bootstrap progress and
// a spinner for short probes. Everything here writes to stderr except
// the helpers callers print themselves.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette — muted, dark-terminal friendly.
var (
	blue   = lipgloss.Color("75")
	green  = lipgloss.Color("78")
	red    = lipgloss.Color("203")
	yellow = lipgloss.Color("214")
	dim    = lipgloss.Color("245")
)

var (
	AccentStyle  = lipgloss.NewStyle().Foreground(blue)
	SuccessStyle = lipgloss.NewStyle().Foreground(green)
	ErrorStyle   = lipgloss.NewStyle().Foreground(red)
	WarnStyle    = lipgloss.NewStyle().Foreground(yellow)
	MutedStyle   = lipgloss.NewStyle().Foreground(dim)
	LabelStyle   = lipgloss.NewStyle().Foreground(dim)
)

// Status glyphs shared by the message helpers and the checklist.
const (
	glyphOK      = "✓"
	glyphFail    = "✗"
	glyphWarn    = "!"
	glyphInfo    = "●"
	glyphPending = "·"
)

// Inline helpers — return styled text without newlines.

func Accent(s string) string  { return AccentStyle.Render(s) }
func Muted(s string) string   { return MutedStyle.Render(s) }
func Success(s string) string { return SuccessStyle.Render(s) }

func Bool(v bool) string {
	if v {
		return SuccessStyle.Render("true")
	}
	return ErrorStyle.Render("false")
}

// Message helpers — single-line strings (no trailing newline).

func SuccessMsg(format string, a ...any) string {
	return statusMsg(SuccessStyle, glyphOK, format, a...)
}

func WarnMsg(format string, a ...any) string {
	return statusMsg(WarnStyle, glyphWarn, format, a...)
}

func ErrorMsg(format string, a ...any) string {
	return statusMsg(ErrorStyle, glyphFail, format, a...)
}

func InfoMsg(format string, a ...any) string {
	return statusMsg(AccentStyle, glyphInfo, format, a...)
}

func statusMsg(style lipgloss.Style, glyph, format string, a ...any) string {
	return style.Render(glyph) + " " + fmt.Sprintf(format, a...)
}

// Pair holds a key-value pair for KeyValues output.
type Pair struct {
	key   string
	value string
}

// KV creates a key-value pair.
func KV(key, value string) Pair {
	return Pair{key: key, value: value}
}

// KeyValues renders aligned "key:  value" lines.
// Returns a multi-line string with trailing newline.
func KeyValues(indent string, pairs ...Pair) string {
	maxLen := 0
	for _, p := range pairs {
		if len(p.key) > maxLen {
			maxLen = len(p.key)
		}
	}

	var sb strings.Builder
	for _, p := range pairs {
		label := fmt.Sprintf("%-*s", maxLen+1, p.key+":")
		sb.WriteString(indent + LabelStyle.Render(label) + " " + p.value + "\n")
	}
	return sb.String()
}
