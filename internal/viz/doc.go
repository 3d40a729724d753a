// Package viz draws the arena in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live arena driven by bubbletea ticks at the world tick rate
//   - [Canvas]: Braille-based pixel canvas, 2x4 sub-pixels per cell
//   - a preset picker started by [RunInteractive]
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	N     - Single tick while paused
//	R     - Reset to the first tick
//	P     - Toggle snapshot/sequential collision policy
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
