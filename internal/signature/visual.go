package signature

import "context"

// RegionStats summarizes the ink analysis of a signature area.
type RegionStats struct {
	InkPercent float64 // percentage of dark pixels in the region
	Contours   int     // stroke-sized contours found
}

// RegionAnalyzer is the optional visual collaborator. Implementations render
// the region above the given keyword on the given page (0-based) and measure
// ink density and contours. The core never assumes one is available.
type RegionAnalyzer interface {
	AnalyzeRegion(ctx context.Context, pdfPath string, page int, keyword string) (RegionStats, error)
}
