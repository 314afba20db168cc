package render

import (
	"strings"

	"github.com/go-pdf/fpdf"
)

// measurer answers text-width questions with the same core-font metrics the
// output document uses. Text is translated to cp1252 first so that "€" and
// accented letters measure as single glyphs.
type measurer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newMeasurer() *measurer {
	pdf := fpdf.New("P", "mm", "A4", "")
	return &measurer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (m *measurer) width(text string, f font) float64 {
	m.pdf.SetFont(family, f.Style, f.Size)
	return m.pdf.GetStringWidth(m.tr(text))
}

// wrap breaks text into lines no wider than width. Explicit newlines always
// break; a single word wider than width is cut between runes.
func (m *measurer) wrap(text string, f font, width float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := ""
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if m.width(candidate, f) <= width {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
			}
			current = word
			for m.width(current, f) > width {
				head, tail := m.cut(current, f, width)
				lines = append(lines, head)
				current = tail
			}
		}
		lines = append(lines, current)
	}
	return lines
}

// cut splits word at the last rune that still fits, keeping at least one rune.
func (m *measurer) cut(word string, f font, width float64) (string, string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && m.width(string(runes[:n+1]), f) <= width {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}
