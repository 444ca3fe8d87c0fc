// Package format renders movie values for display.
package format

import (
	"fmt"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders numbers for one locale
type Formatter struct {
	p *message.Printer
}

// New returns a Formatter for a BCP 47 tag such as "es-MX". Unknown tags
// fall back to English.
func New(tag string) *Formatter {
	t, err := language.Parse(tag)
	if err != nil {
		t = language.English
	}
	return &Formatter{p: message.NewPrinter(t)}
}

// Count renders n with locale digit grouping
func (f *Formatter) Count(n int) string {
	return f.p.Sprintf("%d", n)
}

// Money renders whole US dollars, or "-" when unknown (zero)
func (f *Formatter) Money(n int64) string {
	if n <= 0 {
		return "-"
	}
	return f.p.Sprintf("$%d", n)
}

// Rating renders a 0-10 score with one decimal
func Rating(r float64) string {
	return fmt.Sprintf("%.1f", r)
}

// Runtime renders minutes as "2h 19m"; nil means unknown
func Runtime(minutes *int) string {
	if minutes == nil || *minutes <= 0 {
		return ""
	}
	h, m := *minutes/60, *minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// Fold lowercases s and strips accents so "Amélie" matches "amelie"
func Fold(s string) string {
	return strings.ToLower(unidecode.Unidecode(s))
}

// Truncate shortens s to width runes, ending in an ellipsis when cut
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
