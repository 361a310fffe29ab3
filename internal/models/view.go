package models

// ActionEvent is one incoming user interaction from the transport
type ActionEvent struct {
	UserID      string `json:"user_id"`
	Token       string `json:"token"`
	DisplayName string `json:"display_name"`
}

// Choice is a single tappable option attached to a view
type Choice struct {
	Label  string `json:"label"`
	Action string `json:"action"`
}

// View is a render instruction for the transport: message text plus
// an ordered set of choices. The core never performs transport I/O.
type View struct {
	Text    string   `json:"text"`
	Choices []Choice `json:"choices"`
}
