package journal

import (
	"encoding/json"
	"fmt"

	"github.com/dshills/wmevent/internal/input/event"
)

// Payload kinds as stored in the payload_kind column.
const (
	kindNDOF   = "ndof"
	kindTimer  = "timer"
	kindDrag   = "drag"
	kindXR     = "xr"
	kindCustom = "custom"
)

func encodePayload(p event.Payload) (string, []byte, error) {
	var kind string
	switch p.(type) {
	case nil:
		return "", nil, nil
	case *event.NDOFMotion:
		kind = kindNDOF
	case *event.TimerData:
		kind = kindTimer
	case *event.DragData:
		kind = kindDrag
	case *event.XRAction:
		kind = kindXR
	case *event.CustomData:
		kind = kindCustom
	default:
		return "", nil, fmt.Errorf("%w: %T", ErrUnknownPayload, p)
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", nil, fmt.Errorf("encode %s payload: %w", kind, err)
	}
	return kind, data, nil
}

// decodePayload restores a payload. Opaque values of drag and custom
// payloads come back as decoded JSON.
func decodePayload(kind string, data []byte) (event.Payload, error) {
	var p event.Payload
	switch kind {
	case "":
		return nil, nil
	case kindNDOF:
		p = &event.NDOFMotion{}
	case kindTimer:
		p = &event.TimerData{}
	case kindDrag:
		p = &event.DragData{}
	case kindXR:
		p = &event.XRAction{}
	case kindCustom:
		p = &event.CustomData{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPayload, kind)
	}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", kind, err)
	}
	return p, nil
}
