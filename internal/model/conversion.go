package model

// UserData carries hashed identifiers only. A populated field holds a
// one-element slice whose entry is either a SHA-256 hex digest or null when
// the raw identifier was missing. Raw PII never appears here.
type UserData struct {
	Em []*string `json:"em,omitempty"`
	Ph []*string `json:"ph,omitempty"`
}

type CustomData struct {
	Value    *float64 `json:"value,omitempty"`
	Currency string   `json:"currency,omitempty"`
}

// ServerEvent is one conversion record in the Conversions API schema.
type ServerEvent struct {
	EventName      string     `json:"event_name"`
	EventTime      int64      `json:"event_time"`
	EventID        string     `json:"event_id,omitempty"`
	EventSourceURL string     `json:"event_source_url,omitempty"`
	ActionSource   string     `json:"action_source"`
	UserData       UserData   `json:"user_data"`
	CustomData     CustomData `json:"custom_data"`
}

// EventBatch is the envelope POSTed to the events endpoint.
type EventBatch struct {
	Data          []ServerEvent `json:"data"`
	TestEventCode string        `json:"test_event_code,omitempty"`
}
