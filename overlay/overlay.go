/*
Package overlay renders raster images of a street plan for debugging and preview.

DegenerateMask shows where the tensor field is strong enough to define
directions. Network rasterizes roads as thin strokes into an alpha mask, which
may be composited onto any image with package image/draw.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package overlay

import (
	"image"
	"image/color"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/streetplan"
	"github.com/npillmayer/streetplan/hermite"
	"github.com/npillmayer/streetplan/tensor"
	"golang.org/x/image/vector"
)

// tracer writes to trace with key 'overlay'
func tracer() tracing.Trace {
	return tracing.Select("overlay")
}

// MaskThreshold is the field norm above which DegenerateMask marks a pixel.
const MaskThreshold = 0.01

// DegenerateMask samples the unsmoothed field at every integer grid position.
// Pixels where the field norm exceeds threshold are white, all others black.
// Pixel (x, y) corresponds to grid position (x, y).
func DegenerateMask(field *tensor.Field, threshold float64) *image.Gray {
	n := int(math.Ceil(field.Size()))
	img := image.NewGray(image.Rect(0, 0, n, n))
	for y := range n {
		for x := range n {
			if field.Evaluate(streetplan.P(float64(x), float64(y))).Norm() > threshold {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

// Network draws roads as strokes of the given width into an alpha mask of
// size×size pixels. Each road is resampled with the given number of subdivisions
// per pair of control points.
func Network(curves []hermite.Curve, size int, subdivisions int, width float64) *image.Alpha {
	dst := image.NewAlpha(image.Rect(0, 0, size, size))
	if size <= 0 || len(curves) == 0 {
		return dst
	}
	z := vector.NewRasterizer(size, size)
	segments := 0
	for _, c := range curves {
		pts := c.Resample(subdivisions)
		for i := 1; i < len(pts); i++ {
			if stroke(z, pts[i-1], pts[i], width/2) {
				segments++
			}
		}
	}
	tracer().Debugf("rasterized %d road segments", segments)
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

// stroke adds a rectangle around segment [a,b] to z. All rectangles share the
// same orientation, so overlapping strokes do not cancel out.
func stroke(z *vector.Rasterizer, a, b streetplan.Pair, halfWidth float64) bool {
	d := (b - a).Unit()
	if d.IsOrigin() {
		return false
	}
	n := d.Perp().Scaled(halfWidth)
	corners := [4]streetplan.Pair{a - n, b - n, b + n, a + n}
	z.MoveTo(float32(corners[0].X()), float32(corners[0].Y()))
	for _, c := range corners[1:] {
		z.LineTo(float32(c.X()), float32(c.Y()))
	}
	z.ClosePath()
	return true
}
