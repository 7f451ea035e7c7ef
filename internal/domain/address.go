package domain

type Address struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	FullName  string `json:"fullName"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	IsDefault bool   `json:"isDefault"`
}

type CoordinateSource string

const (
	CoordinateSourceBackend CoordinateSource = "backend_api"
	CoordinateSourceDevice  CoordinateSource = "device_gps"
)

// Coordinates are derived per address selection and never persisted.
type Coordinates struct {
	Latitude  float64          `json:"latitude"`
	Longitude float64          `json:"longitude"`
	Source    CoordinateSource `json:"source"`
}
