// Package core provides fundamental types and utilities for the game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect is an integer cell rectangle used by the screen buffer.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Vec is a point in world units.
type Vec struct {
	X, Y float64
}

// Size is a width/height pair in world units.
type Size struct {
	W, H float64
}

// Box is an axis-aligned box described by its center and size.
// All gameplay collision works on Boxes in world units.
type Box struct {
	Center Vec
	Size   Size
}

// NewBox creates a box centered at (x, y).
func NewBox(x, y, w, h float64) Box {
	return Box{Center: Vec{X: x, Y: y}, Size: Size{W: w, H: h}}
}

// Left returns the x-coordinate of the left edge.
func (b Box) Left() float64 { return b.Center.X - b.Size.W/2 }

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 { return b.Center.X + b.Size.W/2 }

// Top returns the y-coordinate of the top edge.
func (b Box) Top() float64 { return b.Center.Y - b.Size.H/2 }

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Center.Y + b.Size.H/2 }

// Overlaps reports whether two center-described boxes overlap.
// Every comparison is strict: boxes whose edges touch exactly do not overlap,
// so grazing contact is never a collision.
func Overlaps(centerA Vec, sizeA Size, centerB Vec, sizeB Size) bool {
	dx := math.Abs(centerA.X - centerB.X)
	dy := math.Abs(centerA.Y - centerB.Y)
	return dx < (sizeA.W+sizeB.W)/2 && dy < (sizeA.H+sizeB.H)/2
}

// Intersects is Overlaps for two Boxes.
func (b Box) Intersects(other Box) bool {
	return Overlaps(b.Center, b.Size, other.Center, other.Size)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
