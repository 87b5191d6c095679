package models

import "time"

// Visitor is one tracked client IP
type Visitor struct {
	ID         int64     `json:"id" db:"id"`
	IPAddress  string    `json:"ip_address" db:"ip_address" example:"203.0.113.7"`
	Country    string    `json:"country" db:"country" example:"BD"`
	Region     string    `json:"region" db:"region" example:"Dhaka Division"`
	City       string    `json:"city" db:"city" example:"Dhaka"`
	VisitCount int64     `json:"visit_count" db:"visit_count" example:"3"`
	VisitedAt  time.Time `json:"visited_at" db:"visited_at"`
}
