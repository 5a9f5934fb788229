// Package keymap maps canonical events to operators.
//
// # Key Concepts
//
// Item: a trigger (event type, value, modifier requirements and an optional
// key-modifier) bound to an operator and its properties, or in a modal
// keymap to a modal value.
//
// Keymap: an ordered list of items for a space and region type, with an
// optional poll.
//
// KeyConfig: the ordered set of keymaps, looked up by name, space and region
// with a fallback to the keymap bound to every space.
//
// # Triggers
//
// Items are written as trigger strings:
//
//	"ctrl+shift+A"          - A pressed with exactly Ctrl and Shift held
//	"any+LEFTMOUSE:click"   - left click with any modifiers
//	"Q+G"                   - G pressed while Q is held
//	"TEXTINPUT"             - any key press that produced text
//	"LEFTMOUSE:click_drag"  - left button dragged past the drag threshold
//
// # Files
//
// Keymap files are YAML:
//
//	name: user
//	keymaps:
//	  - name: 3D View
//	    space: VIEW_3D
//	    region: WINDOW
//	    poll: ctx.space == "VIEW_3D"
//	    items:
//	      - trigger: ctrl+G
//	        operator: wm.echo
//	        properties: {message: grouped}
package keymap
