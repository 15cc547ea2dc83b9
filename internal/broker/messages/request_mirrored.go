package messages

import "time"

// RequestMirrored is the audit record published for every mirrored
// request/response exchange. Keyed by identifier so that one shipment's
// history lands in one partition.
type RequestMirrored struct {
	Identifier string    `json:"identifier"`
	Reply      string    `json:"reply"`
	Username   string    `json:"username,omitempty"`
	ChatID     int64     `json:"chat_id"`
	At         time.Time `json:"at"`
}
