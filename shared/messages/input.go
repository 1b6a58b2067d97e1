package messages

// Outbound message type discriminators.
const (
	InputTypeMove  uint64 = 0
	InputTypeAngle uint64 = 1
	InputTypeClick uint64 = 2
)

// Direction is a cardinal movement direction on the wire.
type Direction uint64

const (
	DirectionNone Direction = iota // stop
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionNone:
		return "none"
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	}
	return "unknown"
}

// MoveInput is sent whenever a movement key is pressed or released.
type MoveInput struct {
	Type      uint64    `json:"type"`
	Direction Direction `json:"direction" jsonschema:"enum=0,enum=1,enum=2,enum=3,enum=4"`
}

// AngleInput is sent when the pointer moved, with the aim angle in radians.
type AngleInput struct {
	Type  uint64  `json:"type"`
	Angle float32 `json:"angle"`
}

// ClickInput is sent once per primary click.
type ClickInput struct {
	Type uint64 `json:"type"`
}

// NewMoveInput creates a MoveInput with its type set
func NewMoveInput(dir Direction) MoveInput {
	return MoveInput{Type: InputTypeMove, Direction: dir}
}

// NewAngleInput creates an AngleInput with its type set
func NewAngleInput(angle float32) AngleInput {
	return AngleInput{Type: InputTypeAngle, Angle: angle}
}

// NewClickInput creates a ClickInput with its type set
func NewClickInput() ClickInput {
	return ClickInput{Type: InputTypeClick}
}
