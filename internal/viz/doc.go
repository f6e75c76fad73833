// Package viz renders metric samples in the terminal.
//
// The interactive front end is a Bubble Tea [Model] holding one parameter
// set behind five sliders. 2D samples are drawn as ASCII line charts and 3D
// samples are projected through a [Camera] onto a braille [Canvas].
//
// # Key Bindings
//
//	j/k    - Select slider
//	h/l    - Move slider one step
//	Tab    - Cycle time, tensor and warp modes
//	V      - Toggle 2D/3D view
//	Space  - Start/stop rotation animation
//	R      - Reset sliders
//	T      - Cycle color themes
//	x/y    - Orbit the 3D camera (shift reverses)
//	+/-    - Zoom
//	M      - Toggle wireframe mesh
package viz
