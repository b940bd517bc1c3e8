package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxTipLength is the longest tip text accepted, in characters.
const MaxTipLength = 140

// Tip is a short local recommendation contributed by a traveller.
// IsLocal marks tips from people who live at the destination; those earn
// more points.
type Tip struct {
	ID          uuid.UUID
	SessionID   uuid.UUID
	Destination string
	Place       string
	Text        string
	Rating      int
	IsLocal     bool
	Author      string
	CreatedAt   time.Time
}
