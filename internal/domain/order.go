package domain

import "time"

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodWallet PaymentMethod = "wallet"
	PaymentMethodOnline PaymentMethod = "online"
)

type OrderType string

const (
	OrderTypeService OrderType = "service"
	OrderTypeProduct OrderType = "product"
	OrderTypeMixed   OrderType = "mixed"
)

// OrderAddress is the address snapshot embedded in an order payload,
// including the coordinates resolved at checkout time. Latitude and
// longitude are nil when resolution failed and the user chose to
// continue anyway; the server then arranges delivery manually.
type OrderAddress struct {
	ID        string   `json:"id"`
	FullName  string   `json:"fullName"`
	Phone     string   `json:"phone"`
	Street    string   `json:"street"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Zip       string   `json:"zip"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	// Source records where the coordinates came from; empty when they
	// are null.
	Source CoordinateSource `json:"coordinateSource,omitempty"`
}

type OrderServiceItem struct {
	ServiceID        string  `json:"serviceId"`
	ServiceName      string  `json:"serviceName"`
	Quantity         int     `json:"quantity"`
	Price            float64 `json:"price"`
	SelectedDate     string  `json:"selectedDate"`
	SelectedTime     string  `json:"selectedTime"`
	ProfessionalID   string  `json:"professionalId"`
	ProfessionalName string  `json:"professionalName"`
}

type OrderProductItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// OrderDraft is constructed just before submission and immutable once sent.
type OrderDraft struct {
	Address       OrderAddress       `json:"address"`
	PaymentMethod PaymentMethod      `json:"paymentMethod"`
	ServiceItems  []OrderServiceItem `json:"serviceItems"`
	ProductItems  []OrderProductItem `json:"productItems"`
	Subtotal      float64            `json:"subtotal"`
	DeliveryFee   float64            `json:"deliveryFee"`
	ServiceFee    float64            `json:"serviceFee"`
	Tax           float64            `json:"tax"`
	TotalAmount   float64            `json:"totalAmount"`
	Type          OrderType          `json:"type"`
	Status        string             `json:"status"`
}

type Order struct {
	ID             string             `json:"id"`
	OrderNumber    string             `json:"orderNumber"`
	TrackingNumber string             `json:"trackingNumber"`
	Status         string             `json:"status"`
	PaymentMethod  PaymentMethod      `json:"paymentMethod"`
	Address        OrderAddress       `json:"address"`
	ServiceItems   []OrderServiceItem `json:"serviceItems"`
	ProductItems   []OrderProductItem `json:"productItems"`
	TotalAmount    float64            `json:"totalAmount"`
	Type           OrderType          `json:"type"`
	// Status timestamps, keyed by status name, e.g. "confirmedAt".
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	ShippedAt   *time.Time `json:"shippedAt,omitempty"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
