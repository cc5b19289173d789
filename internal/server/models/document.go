package models

// Document is one stored record of an owner. The store does not interpret
// Payload, it keeps the JSON object it was given. Timestamps are the
// client's Unix milliseconds.
type Document struct {
	OwnerID   string
	Kind      string
	ID        string
	CreatedAt int64
	UpdatedAt int64
	Deleted   bool
	Payload   []byte
}
