package render

// ptToMM converts typographic points to millimetres.
const ptToMM = 25.4 / 72

// Geometry is the fixed page size and margins, in millimetres.
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	Top        float64
	Right      float64
	Bottom     float64 // reserved for the footer
	Left       float64

	// FooterOffset is the distance from the page bottom to the footer baseline.
	FooterOffset float64
}

// A4 returns the portrait A4 geometry: 8mm top margin, 20mm sides, 30mm bottom.
func A4() Geometry {
	return Geometry{
		PageWidth:    210,
		PageHeight:   297,
		Top:          8,
		Right:        20,
		Bottom:       30,
		Left:         20,
		FooterOffset: 15,
	}
}

// ContentWidth is the usable width between the side margins.
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - g.Left - g.Right
}

// MaxY is the lowest y coordinate content may reach.
func (g Geometry) MaxY() float64 {
	return g.PageHeight - g.Bottom
}

// FooterY is the footer baseline.
func (g Geometry) FooterY() float64 {
	return g.PageHeight - g.FooterOffset
}

// FooterInfo is the text stamped on every page once the page count is known.
type FooterInfo struct {
	Entity string // supplier name, left-aligned
	Number string // document number, right-aligned with the page counter
}

func leading(size float64) float64 {
	return size * 1.4 * ptToMM
}
