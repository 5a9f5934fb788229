// Package script compiles Lua poll expressions for keymaps and operators.
//
// Expressions run in a sandboxed gopher-lua state with only the base,
// table, string and math libraries. The location being polled is exposed
// as the global table ctx:
//
//	ctx.space    space type of the area ("VIEW_3D", "" outside areas)
//	ctx.region   region type ("WINDOW", "HEADER", ...)
//	ctx.window   window ID
//	ctx.area     area ID, nil outside areas
//	ctx.tool     active tool ID, nil without a tool
//	ctx.data     handler data (strings, numbers and booleans only)
//
// A poll is a single expression, for example:
//
//	ctx.space == "VIEW_3D" and ctx.region == "WINDOW"
//
// Each evaluation runs under the engine timeout. A poll that fails or
// times out is logged on the wm.script channel and evaluates to false.
package script
