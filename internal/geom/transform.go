// Package geom provides the coordinate conversions between the document's
// native point space and the pixel space of a rendered page.
//
// Point space has its origin at the bottom-left corner of the page with Y
// increasing upward, in points (1/72 inch). Screen space has its origin at
// the top-left corner of the rendered page surface with Y increasing
// downward, in pixels. All conversions are pure functions of their inputs.
package geom

import "math"

// Dimensions are the point-space extents of one page, independent of any
// zoom scale.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Viewport describes the pixel dimensions of one rendered page at a given
// zoom scale. It is produced once per (page, zoom) pair and replaced
// wholesale on re-render, never mutated.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Scale  float64 `json:"scale"`
}

// ScreenToPDF converts a screen-space pixel coordinate to a point-space
// coordinate, rounded to two decimals. The vertical axis flips: screen Y
// grows downward while document Y grows upward from the page bottom.
//
// Callers must guarantee vp.Scale > 0; behavior at scale zero is undefined.
func ScreenToPDF(screenX, screenY float64, vp Viewport) (float64, float64) {
	x := screenX / vp.Scale
	y := (vp.Height - screenY) / vp.Scale
	return Round2(x), Round2(y)
}

// PDFToScreen converts a point-space coordinate to screen-space pixels.
// The result is not rounded; it feeds continuous rendering.
func PDFToScreen(x, y float64, vp Viewport) (float64, float64) {
	return x * vp.Scale, vp.Height - y*vp.Scale
}

// PDFSizeToScreen scales point-space dimensions to pixels. Sizes have no
// origin, so no axis flip applies.
func PDFSizeToScreen(w, h, scale float64) (float64, float64) {
	return w * scale, h * scale
}

// ScreenDeltaToPDF converts a screen-space pointer delta to a point-space
// delta. The Y component flips sign because of the axis inversion,
// independent of any origin.
func ScreenDeltaToPDF(dx, dy, scale float64) (float64, float64) {
	return dx / scale, -dy / scale
}

// Clamp limits v to the inclusive range [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Round1 rounds to one decimal place. Position and size mutations store
// values at 0.1pt granularity.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places. Placement-origin conversions and
// page dimensions store values at 0.01pt granularity.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
