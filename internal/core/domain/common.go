package domain

import "time"

// Identity is the acting user, supplied by the caller for every mutating
// use-case. This service performs no authentication of its own.
type Identity struct {
	UserID      string `json:"userID"`
	DisplayName string `json:"displayName"`
}

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}
