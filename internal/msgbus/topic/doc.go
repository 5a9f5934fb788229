// Package topic provides dot separated topic names for static bus messages
// and a trie that finds the subscribed patterns matching a published topic.
//
// Two wildcards are supported in patterns:
//
//   - "*" matches exactly one segment
//   - "**" matches zero or more segments
//
// Examples:
//
//	window.*        matches window.draw, window.close (not window.area.draw)
//	file.**         matches file.read.post, file.write.pre, file
//	*.changed       matches prefs.changed, keymap.changed
//	**              matches everything
package topic
