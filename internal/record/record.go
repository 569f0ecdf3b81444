// Package record defines the saved-identifier model kept in the vault.
package record

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Record is one saved identifier with its bookkeeping.
type Record struct {
	ID        string    `json:"id"`
	Value     string    `json:"value"`
	Label     string    `json:"label,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewID generates an 8-character hex record ID.
func NewID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand: " + err.Error())
	}
	return hex.EncodeToString(b)
}
