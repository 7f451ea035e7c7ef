package domain

import "time"

// ServiceCartItem is a server-owned line in the service cart. The client
// mutates quantity and scheduling fields but never creates items locally.
type ServiceCartItem struct {
	ID               string    `json:"id"`
	ServiceID        string    `json:"serviceId"`
	ServiceName      string    `json:"serviceName"`
	Quantity         int       `json:"quantity"`
	Price            float64   `json:"price"`
	SelectedDate     string    `json:"selectedDate,omitempty"`
	SelectedTime     string    `json:"selectedTime,omitempty"`
	ProfessionalID   string    `json:"professionalId,omitempty"`
	ProfessionalName string    `json:"professionalName,omitempty"`
	AddedAt          time.Time `json:"addedAt"`
}

// Scheduled reports whether the item has everything a service booking
// needs before checkout: a date, a time and an assigned professional.
func (i ServiceCartItem) Scheduled() bool {
	return i.SelectedDate != "" && i.SelectedTime != "" && i.ProfessionalID != ""
}

type ProductCartItem struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	AddedAt     time.Time `json:"addedAt"`
}

type ServiceCart struct {
	Items     []ServiceCartItem `json:"items"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type ProductCart struct {
	Items     []ProductCartItem `json:"items"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
