package models

import "time"

// Chat is one message in a client's conversation thread. Append-only.
type Chat struct {
	ID         uint      `json:"id"`
	ClientID   uint      `json:"client_id"`
	Message    string    `json:"message"`
	FromClient bool      `json:"from_client"`
	CreatedAt  time.Time `json:"created_at"`
}
