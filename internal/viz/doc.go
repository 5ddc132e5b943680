// Package viz renders the reactor in the terminal.
//
// [App] is a Bubble Tea model that drives a [sim.Simulation] and draws a
// perspective side view of the chamber onto a coloured [Grid] next to a
// braille [Canvas] top view. [Menu] wraps it with a reaction and preset
// picker.
//
// # Key Bindings
//
//	1-4   select reaction
//	t/T   temperature up/down
//	p/P   pressure up/down
//	a/A   reactant share up/down
//	b/B   product share up/down
//	r     reset to baseline
//	o     record an observation
//	c     clear observations
//	Space pause/resume
//	x/y   rotate camera (shift reverses)
//	+/-   zoom
//	m     cycle theme
package viz
