package db

import (
	"time"

	"github.com/google/uuid"
)

// DefaultLocationCode is the marketing-data location used when a client
// record does not specify one (2826 = United Kingdom).
const DefaultLocationCode = 2826

// Client represents an agency client record
type Client struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Domain       string    `json:"domain"`
	ProjectName  string    `json:"project_name"`
	CMS          string    `json:"cms"`
	LocationCode int       `json:"location_code"`
	Notes        string    `json:"notes"`
	Created      time.Time `json:"created"`
	Updated      time.Time `json:"updated"`
}
