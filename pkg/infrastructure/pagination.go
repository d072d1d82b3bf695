package infrastructure

import "math"

// A4 geometry in millimetres and CSS pixels.
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0
	PageWidthPx  = 794
	PageHeightPx = 1123
)

// PagePlan places one tall snapshot across A4 pages. Offsets[k] is how far
// the image is shifted up on page k.
type PagePlan struct {
	ImageWidthMM  float64
	ImageHeightMM float64
	Offsets       []float64
}

func (p PagePlan) Pages() int { return len(p.Offsets) }

// PlanPages scales a pxW x pxH snapshot to the A4 width and slices it into
// page-high windows. Content straddling a boundary is cut, not reflowed.
func PlanPages(pxW, pxH int) PagePlan {
	plan := PagePlan{ImageWidthMM: PageWidthMM}
	if pxW > 0 && pxH > 0 {
		plan.ImageHeightMM = float64(pxH) * PageWidthMM / float64(pxW)
	}

	pages := int(math.Ceil(plan.ImageHeightMM / PageHeightMM))
	if pages < 1 {
		pages = 1
	}
	plan.Offsets = make([]float64, pages)
	for k := range plan.Offsets {
		plan.Offsets[k] = float64(k) * PageHeightMM
	}
	return plan
}
