// Package viz provides the terminal sandbox for the Verlet engine.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live sandbox driving one engine at 60 frames per second
//   - [Menu]: scene picker that starts a sandbox
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//
// # Key Bindings
//
//	Space      - Pause/Resume simulation
//	R          - Reload the scene
//	Arrows/hjkl - Move the cursor (HJKL moves faster)
//	Enter      - Grab/release the nearest point; in edit mode add a point
//	X          - Delete the point under the cursor
//	E          - Toggle edit mode (simulation pauses while editing)
//	F          - Toggle fixed for new points
//	S          - Toggle spring links for new edges
//	+/-        - More/fewer sub-steps per frame
//	P          - Save the current frame as PNG
//	T          - Cycle color themes
//	?          - Show help overlay
package viz
