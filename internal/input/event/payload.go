package event

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Payload is the device specific part of an event. The set of payloads is
// closed: NDOFMotion, TimerData, DragData, XRAction and CustomData.
type Payload interface {
	// Clone returns a deep copy so the clone can outlive the original.
	Clone() Payload
	payload()
}

// NDOFProgress is the phase of an NDOF motion.
type NDOFProgress uint8

const (
	NDOFStarting NDOFProgress = iota
	NDOFInProgress
	NDOFFinishing
)

// NDOFMotion is the payload of an NDOF (3D mouse) motion event. Values are
// already scaled by the sensitivity preferences.
type NDOFMotion struct {
	Translation [3]float32
	Rotation    [3]float32
	Delta       time.Duration
	Progress    NDOFProgress
}

func (p *NDOFMotion) Clone() Payload { c := *p; return &c }
func (*NDOFMotion) payload()         {}

// TimerData is the payload of a Timer event.
type TimerData struct {
	ID uuid.UUID
	// Delta is the time since the timer last fired.
	Delta time.Duration
	// Duration is the time since the timer was added.
	Duration time.Duration
	// Count is how many times the timer fired, this event included.
	Count int
}

func (p *TimerData) Clone() Payload { c := *p; return &c }
func (*TimerData) payload()         {}

// DragKind names the kind of data being dropped.
type DragKind uint8

const (
	DragPaths DragKind = iota
	DragText
	DragID
	DragValue
)

// DragData is the payload of a Drop event.
type DragData struct {
	Kind  DragKind
	Paths []string
	Text  string
	// ID names a data block for DragID drops.
	ID string
	// Value holds arbitrary data for DragValue drops. It is shared, not
	// copied, by Clone.
	Value any
}

func (p *DragData) Clone() Payload {
	c := *p
	c.Paths = slices.Clone(p.Paths)
	return &c
}
func (*DragData) payload() {}

// XRAction is the payload of an XR controller action event.
type XRAction struct {
	ActionSet string
	Action    string
	// State holds the boolean/float/vector2 value of the action.
	State    [2]float32
	Bimanual bool
}

func (p *XRAction) Clone() Payload { c := *p; return &c }
func (*XRAction) payload()         {}

// CustomData carries application defined data. Data is shared, not copied,
// by Clone.
type CustomData struct {
	Kind string
	Data any
}

func (p *CustomData) Clone() Payload { c := *p; return &c }
func (*CustomData) payload()         {}
