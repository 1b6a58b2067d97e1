package messages

// JoinRequest is the first message a client sends after the socket opens.
type JoinRequest struct {
	Token   string `json:"token"`
	StateID string `json:"stateId" jsonschema:"description=Room id to join"`
}
