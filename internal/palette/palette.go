// Package palette provides the fixed ordered color palette used to tint
// glyphs and connector-bar gradients, plus the per-cycle title-to-color
// assignment.
package palette

import "math/rand"

// Triple is one palette entry: a dark axis-proximal shade, a light distal
// shade and a medium stroke/fill tone.
type Triple struct {
	Dark   string
	Light  string
	Medium string
}

// Fallback is the triple used for titles that have no assignment.
var Fallback = Triple{Dark: "#000000", Light: "#000000", Medium: "#000000"}

// Triples is the fixed ordered palette. Order matters: assignment is by
// first-seen title, so the first distinct title always receives Triples[0].
var Triples = []Triple{
	{Dark: "#0b5394", Light: "#9fc5e8", Medium: "#3d85c6"},
	{Dark: "#b45309", Light: "#fcd9b1", Medium: "#e69138"},
	{Dark: "#38761d", Light: "#b6d7a8", Medium: "#6aa84f"},
	{Dark: "#990000", Light: "#ea9999", Medium: "#cc0000"},
	{Dark: "#351c75", Light: "#b4a7d6", Medium: "#674ea7"},
	{Dark: "#134f5c", Light: "#a2c4c9", Medium: "#45818e"},
	{Dark: "#741b47", Light: "#d5a6bd", Medium: "#a64d79"},
	{Dark: "#7f6000", Light: "#ffe599", Medium: "#bf9000"},
	{Dark: "#274e13", Light: "#d9ead3", Medium: "#93c47d"},
	{Dark: "#1c4587", Light: "#c9daf8", Medium: "#6d9eeb"},
	{Dark: "#660000", Light: "#f4cccc", Medium: "#e06666"},
	{Dark: "#4c1130", Light: "#ead1dc", Medium: "#c27ba0"},
	{Dark: "#783f04", Light: "#f9cb9c", Medium: "#f6b26b"},
	{Dark: "#0c343d", Light: "#d0e0e3", Medium: "#76a5af"},
	{Dark: "#20124d", Light: "#d9d2e9", Medium: "#8e7cc3"},
	{Dark: "#7f1d1d", Light: "#fca5a5", Medium: "#dc2626"},
}

// Assignment maps distinct event titles to palette triples for one update
// cycle. It is rebuilt from scratch every cycle and never mutated afterwards.
type Assignment struct {
	byTitle map[string]Triple
}

// Assign builds the title-to-color assignment in first-seen order over the
// given titles. Once the fixed palette is exhausted, overflow titles draw a
// uniformly distributed index from rng, which makes the mapping reproducible
// under a seeded source.
func Assign(titles []string, rng *rand.Rand) *Assignment {
	a := &Assignment{byTitle: make(map[string]Triple)}
	next := 0
	for _, title := range titles {
		if _, seen := a.byTitle[title]; seen {
			continue
		}
		if next < len(Triples) {
			a.byTitle[title] = Triples[next]
			next++
		} else {
			a.byTitle[title] = Triples[rng.Intn(len(Triples))]
		}
	}
	return a
}

// Lookup returns the triple assigned to title. Titles outside the
// assignment fall back to plain black rather than failing.
func (a *Assignment) Lookup(title string) Triple {
	if t, ok := a.byTitle[title]; ok {
		return t
	}
	return Fallback
}

// Len reports how many distinct titles are assigned.
func (a *Assignment) Len() int {
	return len(a.byTitle)
}
