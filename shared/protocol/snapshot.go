// Package protocol converts between wire bytes and the types in shared/messages.
// Both the client and the dev server use it, so it must not import ebiten.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/automoto/arena-mp/shared/messages"
)

// ErrMalformedSnapshot is wrapped by every snapshot decode failure.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// DecodeError reports which part of a frame could not be decoded.
type DecodeError struct {
	Field string // JSON path of the offending field, empty for syntax errors
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %v", ErrMalformedSnapshot, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", ErrMalformedSnapshot, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrMalformedSnapshot, e.Err}
}

var errMissing = errors.New("missing field")

// Wire-side mirrors with pointer fields so absent keys can be told apart from zero values.
type rawPosition struct {
	X *float32 `json:"x"`
	Y *float32 `json:"y"`
}

type rawPlayer struct {
	ID       *string      `json:"id"`
	Position *rawPosition `json:"position"`
	AimAngle *float32     `json:"aimAngle"`
}

type rawBullet struct {
	ID       *int32       `json:"id"`
	Position *rawPosition `json:"position"`
}

type rawState struct {
	Players *[]rawPlayer `json:"players"`
	Bullets *[]rawBullet `json:"bullets"`
}

type rawSnapshot struct {
	Type      *uint64   `json:"type"`
	Timestamp *uint64   `json:"ts"`
	State     *rawState `json:"state"`
}

// DecodeSnapshot parses one inbound frame. An empty frame is not an error and
// yields a nil snapshot, meaning there is nothing to apply. Any malformed
// content yields a *DecodeError; the caller should drop the frame and carry on.
func DecodeSnapshot(data []byte) (*messages.Snapshot, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Err: err}
	}

	switch {
	case raw.Type == nil:
		return nil, &DecodeError{Field: "type", Err: errMissing}
	case raw.Timestamp == nil:
		return nil, &DecodeError{Field: "ts", Err: errMissing}
	case raw.State == nil:
		return nil, &DecodeError{Field: "state", Err: errMissing}
	case raw.State.Players == nil:
		return nil, &DecodeError{Field: "state.players", Err: errMissing}
	case raw.State.Bullets == nil:
		return nil, &DecodeError{Field: "state.bullets", Err: errMissing}
	}

	snap := &messages.Snapshot{
		Type:      *raw.Type,
		Timestamp: *raw.Timestamp,
		State: messages.GameState{
			Players: make([]messages.PlayerState, 0, len(*raw.State.Players)),
			Bullets: make([]messages.BulletState, 0, len(*raw.State.Bullets)),
		},
	}

	for i, p := range *raw.State.Players {
		field := fmt.Sprintf("state.players[%d]", i)
		if p.ID == nil {
			return nil, &DecodeError{Field: field + ".id", Err: errMissing}
		}
		if p.AimAngle == nil {
			return nil, &DecodeError{Field: field + ".aimAngle", Err: errMissing}
		}
		pos, err := decodePosition(p.Position, field+".position")
		if err != nil {
			return nil, err
		}
		snap.State.Players = append(snap.State.Players, messages.PlayerState{
			ID:       *p.ID,
			Position: pos,
			AimAngle: *p.AimAngle,
		})
	}

	for i, b := range *raw.State.Bullets {
		field := fmt.Sprintf("state.bullets[%d]", i)
		if b.ID == nil {
			return nil, &DecodeError{Field: field + ".id", Err: errMissing}
		}
		pos, err := decodePosition(b.Position, field+".position")
		if err != nil {
			return nil, err
		}
		snap.State.Bullets = append(snap.State.Bullets, messages.BulletState{
			ID:       *b.ID,
			Position: pos,
		})
	}

	return snap, nil
}

func decodePosition(p *rawPosition, field string) (messages.Position, error) {
	if p == nil {
		return messages.Position{}, &DecodeError{Field: field, Err: errMissing}
	}
	if p.X == nil {
		return messages.Position{}, &DecodeError{Field: field + ".x", Err: errMissing}
	}
	if p.Y == nil {
		return messages.Position{}, &DecodeError{Field: field + ".y", Err: errMissing}
	}
	return messages.Position{X: *p.X, Y: *p.Y}, nil
}

// EncodeSnapshot serializes a snapshot in the wire shape.
func EncodeSnapshot(snap messages.Snapshot) ([]byte, error) {
	if snap.State.Players == nil {
		snap.State.Players = []messages.PlayerState{}
	}
	if snap.State.Bullets == nil {
		snap.State.Bullets = []messages.BulletState{}
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}
