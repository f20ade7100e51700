package db_models

import "github.com/google/uuid"

// Itinerary rows are immutable once written: the composed trip document is stored as
// one JSON blob keyed by a generated id, optionally owned by an account.
type Itinerary struct {
	BaseModel
	OwnerID         *uuid.UUID `gorm:"type:uuid;index"`
	OriginCity      string
	DestinationCity string
	NumDays         int
	NumPeople       int
	Document        string `gorm:"type:jsonb"`
}
