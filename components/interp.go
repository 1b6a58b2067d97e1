package components

import "github.com/yohamta/donburi"

// InterpBufferData is the FIFO of target poses a player is still moving toward.
// The head is the current target; later entries wait their turn.
type InterpBufferData struct {
	Targets []PoseData
}

var InterpBuffer = donburi.NewComponentType[InterpBufferData]()

// Push appends a target to the back of the queue.
func (b *InterpBufferData) Push(p PoseData) {
	b.Targets = append(b.Targets, p)
}

// Head returns the current target, if any.
func (b *InterpBufferData) Head() (PoseData, bool) {
	if len(b.Targets) == 0 {
		return PoseData{}, false
	}
	return b.Targets[0], true
}

// Pop drops the current target.
func (b *InterpBufferData) Pop() {
	if len(b.Targets) == 0 {
		return
	}
	b.Targets[0] = PoseData{}
	b.Targets = b.Targets[1:]
	if len(b.Targets) == 0 {
		b.Targets = b.Targets[:0:0]
	}
}

func (b *InterpBufferData) Len() int {
	return len(b.Targets)
}
