// Package viz runs the simulation in a terminal.
//
// Bodies and their orbits are drawn on a braille [Canvas], where every
// character cell holds a 2x4 block of dots, so the effective resolution is
// twice the column count by four times the row count. [Terminal] adapts the
// canvas to the simulation's drawing collaborators and [Model] drives it
// with Bubble Tea.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	T     - Cycle color themes
//	Q     - Quit
package viz
