package network

import (
	"context"
	"fmt"
	"log"

	"github.com/automoto/arena-mp/shared/messages"
	"github.com/automoto/arena-mp/shared/protocol"
)

// Connect resolves the local user id from token, dials url and queues the join
// request for roomID as the first outbound frame.
func Connect(ctx context.Context, url, token, roomID string, opts Options) (*WebSocketTransport, string, error) {
	userID, err := UserIDFromToken(token)
	if err != nil {
		return nil, "", err
	}

	join, err := protocol.EncodeJoin(messages.JoinRequest{Token: token, StateID: roomID})
	if err != nil {
		return nil, "", err
	}

	t, err := Dial(ctx, url, opts)
	if err != nil {
		return nil, "", err
	}

	if err := t.WriteMessage(join); err != nil {
		_ = t.Close()
		return nil, "", fmt.Errorf("send join request: %w", err)
	}

	log.Printf("[net] joining room %q as %s", roomID, userID)
	return t, userID, nil
}
