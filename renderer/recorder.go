package renderer

import "image/color"

// Op names a recorded drawing call.
type Op string

const (
	OpClear        Op = "clear"
	OpStrokeBorder Op = "stroke_border"
	OpFillCircle   Op = "fill_circle"
	OpStrokeCircle Op = "stroke_circle"
	OpText         Op = "text"
)

// Call is one recorded drawing call. Unused fields are zero.
type Call struct {
	Op    Op
	X, Y  float64
	R     float64 // radius, or width for borders
	H     float64 // height for borders, font size for text
	Text  string
	Color color.RGBA
}

// Recorder is a Canvas that keeps every call. It is used for headless
// inspection and tests.
type Recorder struct {
	Calls []Call
}

func (r *Recorder) Clear() {
	r.Calls = append(r.Calls[:0], Call{Op: OpClear})
}

func (r *Recorder) StrokeBorder(w, h float64) {
	r.Calls = append(r.Calls, Call{Op: OpStrokeBorder, R: w, H: h})
}

func (r *Recorder) FillCircle(x, y, radius float64, c color.RGBA) {
	r.Calls = append(r.Calls, Call{Op: OpFillCircle, X: x, Y: y, R: radius, Color: c})
}

func (r *Recorder) StrokeCircle(x, y, radius float64, c color.RGBA) {
	r.Calls = append(r.Calls, Call{Op: OpStrokeCircle, X: x, Y: y, R: radius, Color: c})
}

func (r *Recorder) Text(x, y, size float64, text string, c color.RGBA) {
	r.Calls = append(r.Calls, Call{Op: OpText, X: x, Y: y, H: size, Text: text, Color: c})
}

// Count returns how many calls of op were recorded since the last Clear.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Texts returns the recorded text strings in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, c := range r.Calls {
		if c.Op == OpText {
			out = append(out, c.Text)
		}
	}
	return out
}
