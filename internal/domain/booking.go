package domain

import "time"

type Booking struct {
	ID               string     `json:"id"`
	ServiceID        string     `json:"serviceId"`
	ServiceName      string     `json:"serviceName"`
	ProfessionalID   string     `json:"professionalId"`
	ProfessionalName string     `json:"professionalName"`
	ScheduledDate    string     `json:"scheduledDate"`
	ScheduledTime    string     `json:"scheduledTime"`
	Status           string     `json:"status"`
	ConfirmedAt      *time.Time `json:"confirmedAt,omitempty"`
	StartedAt        *time.Time `json:"startedAt,omitempty"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	CancelledAt      *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}
