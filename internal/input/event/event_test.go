package event

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/wmevent/internal/input/key"
	"github.com/dshills/wmevent/internal/input/mouse"
)

func TestEventCloneOwnsPayload(t *testing.T) {
	ev := &Event{
		Type:    key.Drop,
		Payload: &DragData{Kind: DragPaths, Paths: []string{"/a", "/b"}},
	}
	c := ev.Clone()
	c.Payload.(*DragData).Paths[0] = "/changed"

	assert.Equal(t, "/a", ev.Payload.(*DragData).Paths[0])
	assert.NotSame(t, ev.Payload, c.Payload)
}

func TestEventCloneWithoutPayload(t *testing.T) {
	ev := &Event{Type: key.KeyA, Value: key.Press}
	c := ev.Clone()
	assert.Nil(t, c.Payload)
	assert.Equal(t, *ev, *c)
}

func TestEventDelta(t *testing.T) {
	ev := &Event{Position: mouse.Pos(10, 4), PrevPosition: mouse.Pos(7, 6)}
	assert.Equal(t, mouse.Pos(3, -2), ev.Delta())
}

func TestEventString(t *testing.T) {
	ev := &Event{
		Type:        key.KeyG,
		Value:       key.Press,
		Modifiers:   key.ModCtrl,
		KeyModifier: key.KeyQ,
		Flags:       FlagRepeat,
		Text:        "g",
	}
	assert.Equal(t, `G PRESS (0,0) mods=Ctrl keymod=Q repeat text="g"`, ev.String())
}

func TestPayloadClones(t *testing.T) {
	payloads := []Payload{
		&NDOFMotion{Translation: [3]float32{1, 2, 3}},
		&TimerData{Count: 2},
		&XRAction{Action: "grab"},
		&CustomData{Kind: "k", Data: 1},
	}
	for _, p := range payloads {
		c := p.Clone()
		assert.Equal(t, p, c)
		assert.NotSame(t, p, c)
	}
}
