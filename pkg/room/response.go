package room

// PayloadIn is the command format we expect from the JS client
type PayloadIn struct {
	Action string `json:"action"`
	Amount int    `json:"amount"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// Response is an outbound message for one or all sessions in a room
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Context string      `json:"context,omitempty"`
}

func newErrorResponse(ctx string, err error) *Response {
	return &Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}
