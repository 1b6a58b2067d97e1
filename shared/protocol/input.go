package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/automoto/arena-mp/shared/messages"
)

// ErrUnknownInput is returned for an outbound-style message whose type is not recognised.
var ErrUnknownInput = errors.New("unknown input type")

// EncodeMove serializes a movement input.
func EncodeMove(dir messages.Direction) ([]byte, error) {
	return encode(messages.NewMoveInput(dir))
}

// EncodeAngle serializes an aim input.
func EncodeAngle(angle float32) ([]byte, error) {
	return encode(messages.NewAngleInput(angle))
}

// EncodeClick serializes a click input.
func EncodeClick() ([]byte, error) {
	return encode(messages.NewClickInput())
}

// EncodeJoin serializes the join handshake.
func EncodeJoin(req messages.JoinRequest) ([]byte, error) {
	return encode(req)
}

func encode(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", msg, err)
	}
	return data, nil
}

// DecodeJoin parses the join handshake. Both fields are required.
func DecodeJoin(data []byte) (messages.JoinRequest, error) {
	var req messages.JoinRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("decode join: %w", err)
	}
	if req.Token == "" {
		return req, fmt.Errorf("decode join: token: %w", errMissing)
	}
	return req, nil
}

// DecodeInput parses a client input message and returns one of
// messages.MoveInput, messages.AngleInput or messages.ClickInput.
func DecodeInput(data []byte) (any, error) {
	var head struct {
		Type *uint64 `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}
	if head.Type == nil {
		return nil, fmt.Errorf("decode input: type: %w", errMissing)
	}

	switch *head.Type {
	case messages.InputTypeMove:
		var msg messages.MoveInput
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("decode move input: %w", err)
		}
		if msg.Direction > messages.DirectionRight {
			return nil, fmt.Errorf("decode move input: direction %d out of range", msg.Direction)
		}
		return msg, nil
	case messages.InputTypeAngle:
		var msg messages.AngleInput
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("decode angle input: %w", err)
		}
		return msg, nil
	case messages.InputTypeClick:
		return messages.NewClickInput(), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownInput, *head.Type)
}
