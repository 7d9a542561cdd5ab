package layout

// Surfaces map one canvas unit to one image pixel, while font backends take
// sizes in points. These helpers convert at that boundary.

// Conversion constants between canvas units (mm in tdewolff/canvas) and points.
const (
	PtToUnit = 0.352777
	UnitToPt = 1.0 / PtToUnit
)

// PixelsToPoints converts a pixel font size to the point size that renders at
// the same height on a one-unit-per-pixel canvas.
func PixelsToPoints(px float64) float64 { return px * UnitToPt }

// PointsToPixels is the inverse of PixelsToPoints.
func PointsToPixels(pt float64) float64 { return pt * PtToUnit }
