package protocol

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/automoto/arena-mp/shared/messages"
)

func TestDecodeSnapshotEmptyIsNoUpdate(t *testing.T) {
	for _, data := range [][]byte{nil, {}} {
		snap, err := DecodeSnapshot(data)
		if err != nil {
			t.Fatalf("expected no error for empty frame, got %v", err)
		}
		if snap != nil {
			t.Fatalf("expected nil snapshot for empty frame, got %+v", snap)
		}
	}
}

func TestDecodeSnapshotScenario(t *testing.T) {
	data := []byte(`{"type":0,"ts":1234,"state":{"players":[{"id":"A","position":{"x":10,"y":5},"aimAngle":0}],"bullets":[]}}`)

	snap, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Timestamp != 1234 {
		t.Fatalf("expected ts 1234, got %d", snap.Timestamp)
	}
	if len(snap.State.Players) != 1 || len(snap.State.Bullets) != 0 {
		t.Fatalf("unexpected entity counts: %+v", snap.State)
	}
	p := snap.State.Players[0]
	if p.ID != "A" || p.Position.X != 10 || p.Position.Y != 5 || p.AimAngle != 0 {
		t.Fatalf("unexpected player: %+v", p)
	}
}

func TestDecodeSnapshotBullets(t *testing.T) {
	data := []byte(`{"type":0,"ts":1,"state":{"players":[],"bullets":[{"id":7,"position":{"x":1.5,"y":-2}},{"id":-3,"position":{"x":0,"y":0}}]}}`)

	snap, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(snap.State.Bullets) != 2 {
		t.Fatalf("expected 2 bullets, got %d", len(snap.State.Bullets))
	}
	if b := snap.State.Bullets[0]; b.ID != 7 || b.Position.X != 1.5 || b.Position.Y != -2 {
		t.Fatalf("unexpected bullet: %+v", b)
	}
	if snap.State.Bullets[1].ID != -3 {
		t.Fatalf("expected negative id to survive, got %d", snap.State.Bullets[1].ID)
	}
}

func TestDecodeSnapshotIgnoresUnknownFields(t *testing.T) {
	data := []byte(`{"type":0,"ts":1,"extra":true,"state":{"players":[{"id":"A","team":2,"position":{"x":1,"y":2},"aimAngle":1}],"bullets":[]}}`)
	if _, err := DecodeSnapshot(data); err != nil {
		t.Fatalf("unknown fields should be ignored, got %v", err)
	}
}

func TestDecodeSnapshotMalformed(t *testing.T) {
	cases := []struct {
		name  string
		data  string
		field string
	}{
		{name: "not json", data: `{"type":`, field: ""},
		{name: "wrong shape", data: `[1,2,3]`, field: ""},
		{name: "missing type", data: `{"ts":1,"state":{"players":[],"bullets":[]}}`, field: "type"},
		{name: "missing ts", data: `{"type":0,"state":{"players":[],"bullets":[]}}`, field: "ts"},
		{name: "missing state", data: `{"type":0,"ts":1}`, field: "state"},
		{name: "null players", data: `{"type":0,"ts":1,"state":{"players":null,"bullets":[]}}`, field: "state.players"},
		{name: "missing bullets", data: `{"type":0,"ts":1,"state":{"players":[]}}`, field: "state.bullets"},
		{name: "player without id", data: `{"type":0,"ts":1,"state":{"players":[{"position":{"x":1,"y":2},"aimAngle":0}],"bullets":[]}}`, field: "state.players[0].id"},
		{name: "player without aim", data: `{"type":0,"ts":1,"state":{"players":[{"id":"A","position":{"x":1,"y":2}}],"bullets":[]}}`, field: "state.players[0].aimAngle"},
		{name: "player without position", data: `{"type":0,"ts":1,"state":{"players":[{"id":"A","aimAngle":0}],"bullets":[]}}`, field: "state.players[0].position"},
		{name: "bullet without y", data: `{"type":0,"ts":1,"state":{"players":[],"bullets":[{"id":1,"position":{"x":1}}]}}`, field: "state.bullets[0].position.y"},
		{name: "fractional bullet id", data: `{"type":0,"ts":1,"state":{"players":[],"bullets":[{"id":1.5,"position":{"x":1,"y":1}}]}}`, field: ""},
		{name: "string id type", data: `{"type":0,"ts":1,"state":{"players":[{"id":4,"position":{"x":1,"y":1},"aimAngle":0}],"bullets":[]}}`, field: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap, err := DecodeSnapshot([]byte(tc.data))
			if err == nil {
				t.Fatalf("expected error, got snapshot %+v", snap)
			}
			if snap != nil {
				t.Fatalf("expected nil snapshot on error")
			}
			if !errors.Is(err, ErrMalformedSnapshot) {
				t.Fatalf("expected ErrMalformedSnapshot, got %v", err)
			}
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("expected *DecodeError, got %T", err)
			}
			if decodeErr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, decodeErr.Field)
			}
		})
	}
}

func TestDecodeSnapshotSyntaxErrorIsReachable(t *testing.T) {
	_, err := DecodeSnapshot([]byte(`{"type":`))
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected wrapped *json.SyntaxError, got %v", err)
	}
}

func TestEncodeSnapshotRoundTrip(t *testing.T) {
	in := messages.Snapshot{
		Type:      messages.UpdateTypeState,
		Timestamp: 99,
		State: messages.GameState{
			Players: []messages.PlayerState{{ID: "B", Position: messages.Position{X: 3, Y: 4}, AimAngle: 1.25}},
		},
	}

	data, err := EncodeSnapshot(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("decode of encoded snapshot failed: %v (%s)", err, data)
	}
	if out.Timestamp != 99 || len(out.State.Players) != 1 || out.State.Players[0].AimAngle != 1.25 {
		t.Fatalf("unexpected round trip result: %+v", out)
	}
	if out.State.Bullets == nil {
		t.Fatalf("nil bullets should encode as an empty list")
	}
}
