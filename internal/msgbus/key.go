package msgbus

import (
	"github.com/dshills/wmevent/internal/msgbus/topic"
	"github.com/dshills/wmevent/internal/tombstone"
)

// key is a subscribed message and its values in registration order.
type key struct {
	params Params
	topic  topic.Topic
	// path is recorded for persistent values subscribed below the owner.
	path   string
	values tombstone.List[*Value]
	elem   *tombstone.Element[*key]
}

func (k *key) message() Message {
	return Message{Params: k.params, Topic: k.topic}
}

func (k *key) static() bool {
	return k.topic != ""
}

func (k *key) find(v *Value) *Value {
	for e := k.values.Front(); e != nil; e = e.Next() {
		if e.Value.same(v) {
			return e.Value
		}
	}
	return nil
}
