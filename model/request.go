package model

import (
	"strings"
	"time"
)

// Request status values. The wire values match what clients already render.
const (
	StatusWaiting  = "Waiting"
	StatusApproved = "Approved"
)

// ConnectionRequest is one directed connection request between two profiles.
// Directionality matters: sender asked, receiver answers. The unordered pair
// is additionally keyed by PairKey with a unique index, so at most one active
// record can exist per pair no matter which side sent first. Concurrent
// sends race on the index, not on a read-then-write check.
type ConnectionRequest struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Sender   string `gorm:"not null;index" json:"sender"`
	Receiver string `gorm:"not null;index" json:"receiver"`
	Status   string `gorm:"not null" json:"status"`
	PairKey  string `gorm:"uniqueIndex;not null" json:"-"`
}

// PairKey canonicalizes an unordered username pair into a sortable key.
func PairKey(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + "|" + b
}
