package normalize

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/wmevent/internal/dispatcher/execctx"
	"github.com/dshills/wmevent/internal/wmlog"
)

// scrubText reduces the text of a key event to what handlers may insert:
// nothing on release, nothing for control characters, nothing for invalid
// UTF-8, otherwise the first grapheme cluster.
func scrubText(ctx *execctx.Context, text []byte, down bool) string {
	if len(text) == 0 {
		return ""
	}
	if !down {
		ctx.Channel(wmlog.ChannelPlatform).Warn("platform sent text %q on key release", text)
		return ""
	}
	if text[0] < 32 {
		return ""
	}
	if !utf8.Valid(text) {
		ctx.Channel(wmlog.ChannelPlatform).Warn("invalid unicode in key text %q", text)
		return ""
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(string(text), -1)
	return cluster
}
