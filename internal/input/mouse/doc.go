// Package mouse holds the geometry and pointer bookkeeping shared by the
// normalizer and the dispatcher: physical buttons, positions and rectangles,
// drag thresholds and the click/drag checks a window arms after an
// unhandled press.
package mouse
