// Package view - conversion between on-screen canvas coordinates and
// pixel coordinates of a target buffer, under aspect-fit letterboxing,
// zoom about an anchor, and pan.
package view

import (
	"image"
	"math"
)

// Zoom limits. Zooming steps by zoomStep per increment; dropping back to
// unit zoom also recenters the pan so the letterboxed fit is restored.
const (
	MinZoom  = 0.5
	MaxZoom  = 5.0
	zoomStep = 1.5
)

// PointF is a point in canvas units.
type PointF struct {
	X, Y float64
}

// SizeF is a width/height pair in canvas units.
type SizeF struct {
	W, H float64
}

// RectF is an axis-aligned rectangle in canvas units.
type RectF struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside the rectangle (edges inclusive).
func (r RectF) Contains(p PointF) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// DisplayTransform is the caller-supplied per-frame view state: how the
// letterboxed image is currently scaled and panned on the canvas. The
// rendered content is scaled by Zoom about Anchor (normalized within the
// display rectangle, center by default) and then offset by Pan in canvas
// units. Consumed read-only.
type DisplayTransform struct {
	Zoom   float64
	Anchor PointF
	Pan    PointF
}

// Identity returns the untransformed view: unit zoom about the center.
func Identity() DisplayTransform {
	return DisplayTransform{Zoom: 1, Anchor: PointF{X: 0.5, Y: 0.5}}
}

// anchor defaults the zoom anchor to the rectangle center when unset.
func (dt DisplayTransform) anchor() PointF {
	if dt.Anchor == (PointF{}) {
		return PointF{X: 0.5, Y: 0.5}
	}
	return dt.Anchor
}

// ClampZoom bounds z to [MinZoom, MaxZoom].
func ClampZoom(z float64) float64 {
	return math.Min(MaxZoom, math.Max(MinZoom, z))
}

// ZoomIn returns the transform stepped one zoom increment in.
func (dt DisplayTransform) ZoomIn() DisplayTransform {
	dt.Zoom = ClampZoom(dt.Zoom * zoomStep)
	return dt
}

// ZoomOut returns the transform stepped one zoom increment out. At or
// below unit zoom the pan is reset, matching the fit-to-view behavior.
func (dt DisplayTransform) ZoomOut() DisplayTransform {
	dt.Zoom = ClampZoom(dt.Zoom / zoomStep)
	if dt.Zoom <= 1 {
		dt.Pan = PointF{}
	}
	return dt
}

// FitRect computes the letterboxed display rectangle of an image inside a
// canvas: the image is scaled to fit entirely, centered, with blank bars
// on one axis when aspect ratios differ.
//
// Arguments:
// - canvas: The canvas dimensions in canvas units.
// - img: The image's logical display dimensions.
//
// Returns:
// - RectF: The display rectangle; zero-sized for degenerate inputs.
func FitRect(canvas, img SizeF) RectF {
	if canvas.W <= 0 || canvas.H <= 0 || img.W <= 0 || img.H <= 0 {
		return RectF{}
	}

	imageAspect := img.W / img.H
	canvasAspect := canvas.W / canvas.H

	var w, h float64
	if imageAspect > canvasAspect {
		// Image is relatively wider: width fits, bars above and below.
		w = canvas.W
		h = canvas.W / imageAspect
	} else {
		h = canvas.H
		w = canvas.H * imageAspect
	}

	return RectF{
		X: (canvas.W - w) / 2,
		Y: (canvas.H - h) / 2,
		W: w,
		H: h,
	}
}

// MapToBuffer converts a pointer position on the canvas into a pixel
// coordinate of a target buffer. The buffer may have different pixel
// dimensions from the image itself (the low-resolution working mask
// does); the unzoomed normalized position is scaled by the buffer's own
// dimensions.
//
// The inversion mirrors the forward render transform exactly (scale by
// Zoom about Anchor, then translate by Pan); Project is the forward
// direction and the two must stay consistent.
//
// Arguments:
// - canvasPt: The pointer position in canvas units.
// - canvas: The canvas dimensions.
// - img: The image's logical display dimensions (for the letterbox fit).
// - dt: The current display transform.
// - bufW, bufH: The target buffer's pixel dimensions.
//
// Returns:
// - image.Point: The buffer pixel coordinate.
// - bool: false when the point falls outside the displayed image or the
//   target buffer; callers treat that sample as a silent no-op.
func MapToBuffer(canvasPt PointF, canvas, img SizeF, dt DisplayTransform, bufW, bufH int) (image.Point, bool) {
	if bufW <= 0 || bufH <= 0 || dt.Zoom <= 0 {
		return image.Point{}, false
	}

	rect := FitRect(canvas, img)
	if rect.W <= 0 || rect.H <= 0 || !rect.Contains(canvasPt) {
		return image.Point{}, false
	}

	// Normalize within the display rectangle.
	rel := PointF{
		X: (canvasPt.X - rect.X) / rect.W,
		Y: (canvasPt.Y - rect.Y) / rect.H,
	}

	// Undo zoom about the anchor, then undo the pan (expressed in canvas
	// units, so it is normalized by the zoomed rectangle size).
	a := dt.anchor()
	adj := PointF{
		X: (rel.X-a.X)/dt.Zoom + a.X - dt.Pan.X/(rect.W*dt.Zoom),
		Y: (rel.Y-a.Y)/dt.Zoom + a.Y - dt.Pan.Y/(rect.H*dt.Zoom),
	}

	px := int(adj.X * float64(bufW))
	py := int(adj.Y * float64(bufH))
	if px < 0 || px >= bufW || py < 0 || py >= bufH {
		return image.Point{}, false
	}
	return image.Point{X: px, Y: py}, true
}

// Project is the forward transform: it maps a buffer pixel coordinate to
// the canvas position at which it is rendered under the current display
// transform. Kept alongside MapToBuffer so the two directions are tested
// as an exact inverse pair.
func Project(bufferPt PointF, canvas, img SizeF, dt DisplayTransform, bufW, bufH int) (PointF, bool) {
	if bufW <= 0 || bufH <= 0 || dt.Zoom <= 0 {
		return PointF{}, false
	}
	rect := FitRect(canvas, img)
	if rect.W <= 0 || rect.H <= 0 {
		return PointF{}, false
	}

	adj := PointF{
		X: bufferPt.X / float64(bufW),
		Y: bufferPt.Y / float64(bufH),
	}
	a := dt.anchor()
	rel := PointF{
		X: (adj.X-a.X+dt.Pan.X/(rect.W*dt.Zoom))*dt.Zoom + a.X,
		Y: (adj.Y-a.Y+dt.Pan.Y/(rect.H*dt.Zoom))*dt.Zoom + a.Y,
	}
	return PointF{
		X: rect.X + rel.X*rect.W,
		Y: rect.Y + rel.Y*rect.H,
	}, true
}

// MapBrushRadius converts a brush radius in canvas units into a radius in
// target buffer pixels, so the brush stays visually constant regardless
// of the buffer's resolution. Never smaller than one pixel.
func MapBrushRadius(screenRadius, displayRectW float64, bufW int) int {
	if displayRectW <= 0 || bufW <= 0 {
		return 1
	}
	r := int(math.Round(screenRadius * float64(bufW) / displayRectW))
	if r < 1 {
		return 1
	}
	return r
}
