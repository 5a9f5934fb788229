// Package dispatcher runs canonical events through handler chains.
//
// Every window, area and region owns a Chain. The event loop hands each
// event to the chains of a window in tiers (modal handlers, the region
// under the cursor, its area, then the window) and stops at the first tier
// that breaks.
//
// # Handlers
//
// A chain holds five kinds of handlers:
//
//   - KeymapHandler: the items of one keymap
//   - DynamicKeymapHandler: keymaps resolved per event, by default the
//     active and fallback tool keymaps of the area
//   - UIHandler: interface code; modal ones stand for open menus
//   - OperatorHandler: a running modal operator, pushed at the head of
//     the window's modal chain
//   - DropboxHandler: operators accepting dropped data
//
// # Keymap Handlers
//
// Within each polling keymap, items are tried in order. The first item
// whose trigger matches and whose operator polls runs the operator:
//
//	FINISHED, CANCELLED, RUNNING_MODAL  break
//	FINISHED|PASS_THROUGH               handled, keep searching
//	PASS_THROUGH                        continue
//
// # Click Synthesis
//
// Dispatch turns presses nobody handled into later Click and ClickDrag
// events, and retries unhandled double clicks as presses:
//
//	res := d.Dispatch(ctx, win, win.Chain(), ev)
//	if res.Action&dispatcher.ActionBreak != 0 {
//	    return
//	}
//
// # Removal
//
// Handlers removed while a chain is dispatched become pending removal and
// are freed when the pass ends, so a handler can remove itself or its
// neighbours from its own callback.
package dispatcher
