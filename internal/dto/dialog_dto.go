package dto

// Button is one tappable option in a reply keyboard. Callback is the
// opaque payload the chat platform echoes back when tapped.
type Button struct {
	Text     string `json:"text"`
	Callback string `json:"callback"`
}

// Reply is what a dialog step asks the (out of scope) transport layer to
// render. The core never formats platform-specific markup.
type Reply struct {
	Text    string     `json:"text"`
	Buttons [][]Button `json:"buttons,omitempty"`
}

// InboundEvent is one normalized update from the chat platform.
type InboundEvent struct {
	UpdateId   int64  `json:"update_id"`
	ChatUserId int64  `json:"chat_user_id" validate:"required"`
	Text       string `json:"text"`
	Callback   string `json:"callback"`
}
