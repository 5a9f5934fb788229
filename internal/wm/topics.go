package wm

import "github.com/dshills/wmevent/internal/msgbus/topic"

// Static messages published by the manager.
const (
	TopicPrefsChanged  topic.Topic = "prefs.changed"
	TopicKeymapChanged topic.Topic = "keymap.changed"
	TopicWindowOpen    topic.Topic = "window.open"
	TopicWindowClose   topic.Topic = "window.close"
	TopicWindowDraw    topic.Topic = "window.draw"
	TopicFileReadPost  topic.Topic = "file.read.post"
)
