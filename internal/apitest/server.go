// Package apitest is an in-memory fake of the platform API for package
// tests. It serves the same {success, data, message} envelope as the real
// backend and records the mutations the client sends.
package apitest

import (
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/salonhub/salonhub-go/internal/api"
	"github.com/salonhub/salonhub-go/internal/domain"
)

type DeductCall struct {
	OrderID string  `json:"orderId"`
	Amount  float64 `json:"amount"`
}

type Server struct {
	mu sync.Mutex

	ServiceCart   domain.ServiceCart
	ProductCart   domain.ProductCart
	Addresses     []domain.Address
	WalletBalance float64
	Transactions  []domain.WalletTransaction
	Orders        []domain.Order
	Bookings      []domain.Booking
	Products      []domain.Product
	SalonServices []domain.SalonService
	Professionals []domain.Professional
	Reviews       map[string][]domain.Review
	Notifications []domain.Notification

	// Geocode behavior: nil result means the geocoder answers with null
	// coordinates; GeocodeFailMessage makes the call fail outright.
	GeocodeResult      *domain.Coordinates
	GeocodeFailMessage string

	// Failure injection, each a success:false message when non-empty.
	FailCreateOrder string
	FailDeduct      string
	FailVerify      string

	// CreatedOrder overrides the order returned by POST /orders.
	CreatedOrder *domain.Order

	// Recorded traffic.
	CreatedDrafts      []domain.OrderDraft
	DeductCalls        []DeductCall
	VerifyCalls        int
	ClearedServiceCart bool
	ClearedProductCart bool
	ProductListCalls   int
	ServiceListCalls   int

	srv *httptest.Server
}

func New(t *testing.T) *Server {
	s := &Server{Reviews: make(map[string][]domain.Review)}
	s.srv = httptest.NewServer(s.router())
	t.Cleanup(s.srv.Close)
	return s
}

func (s *Server) URL() string {
	return s.srv.URL
}

// Client returns an API client pointed at this fake.
func (s *Server) Client() *api.Client {
	return api.NewClient(api.Config{
		BaseURL:    s.srv.URL,
		Tokens:     api.StaticToken("test-token"),
		HTTPClient: s.srv.Client(),
	})
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", s.getServiceCart)
		r.Patch("/{id}", s.patchServiceItem)
		r.Delete("/{id}", s.deleteServiceItem)
		r.Delete("/", s.clearServiceCart)
	})
	r.Route("/product-cart", func(r chi.Router) {
		r.Get("/", s.getProductCart)
		r.Patch("/{id}", s.patchProductItem)
		r.Delete("/{id}", s.deleteProductItem)
		r.Delete("/", s.clearProductCart)
	})

	r.Get("/addresses", s.getAddresses)
	r.Post("/addresses/geocode-address", s.geocode)

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", s.getOrders)
		r.Post("/", s.createOrder)
		r.Get("/{id}", s.getOrder)
		r.Post("/{id}/cancel", s.cancelOrder)
	})

	r.Post("/payments/create-order", s.createProviderOrder)
	r.Post("/payments/verify", s.verifyPayment)

	r.Route("/wallet", func(r chi.Router) {
		r.Get("/", s.getWallet)
		r.Post("/add-money", s.addMoney)
		r.Post("/deduct-money", s.deductMoney)
		r.Get("/transactions", s.getTransactions)
	})

	r.Get("/bookings/my-bookings", s.getBookings)
	r.Get("/notifications", s.getNotifications)
	r.Patch("/notifications/{id}/read", s.markNotificationRead)
	r.Get("/reviews/order/{id}/items", s.getReviews)
	r.Get("/products", s.getProducts)
	r.Get("/services", s.getServices)
	r.Get("/professionals/by-services", s.getProfessionals)

	return r
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respondData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondFail(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: false, Message: message}); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func (s *Server) getServiceCart(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondData(w, s.ServiceCart)
}

func (s *Server) getProductCart(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondData(w, s.ProductCart)
}

type itemPatch struct {
	Quantity         *int    `json:"quantity"`
	SelectedDate     *string `json:"selectedDate"`
	SelectedTime     *string `json:"selectedTime"`
	ProfessionalID   *string `json:"professionalId"`
	ProfessionalName *string `json:"professionalName"`
}

func (s *Server) patchServiceItem(w http.ResponseWriter, r *http.Request) {
	var patch itemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondFail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "id")
	for i := range s.ServiceCart.Items {
		if s.ServiceCart.Items[i].ID != id {
			continue
		}
		item := &s.ServiceCart.Items[i]
		if patch.Quantity != nil {
			item.Quantity = *patch.Quantity
		}
		if patch.SelectedDate != nil {
			item.SelectedDate = *patch.SelectedDate
		}
		if patch.SelectedTime != nil {
			item.SelectedTime = *patch.SelectedTime
		}
		if patch.ProfessionalID != nil {
			item.ProfessionalID = *patch.ProfessionalID
		}
		if patch.ProfessionalName != nil {
			item.ProfessionalName = *patch.ProfessionalName
		}
		respondData(w, item)
		return
	}
	respondFail(w, http.StatusNotFound, "cart item not found")
}

func (s *Server) patchProductItem(w http.ResponseWriter, r *http.Request) {
	var patch itemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondFail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "id")
	for i := range s.ProductCart.Items {
		if s.ProductCart.Items[i].ID != id {
			continue
		}
		if patch.Quantity != nil {
			s.ProductCart.Items[i].Quantity = *patch.Quantity
		}
		respondData(w, s.ProductCart.Items[i])
		return
	}
	respondFail(w, http.StatusNotFound, "cart item not found")
}

func (s *Server) deleteServiceItem(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "id")
	for i := range s.ServiceCart.Items {
		if s.ServiceCart.Items[i].ID == id {
			s.ServiceCart.Items = append(s.ServiceCart.Items[:i], s.ServiceCart.Items[i+1:]...)
			respondData(w, s.ServiceCart)
			return
		}
	}
	respondFail(w, http.StatusNotFound, "cart item not found")
}

func (s *Server) deleteProductItem(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "id")
	for i := range s.ProductCart.Items {
		if s.ProductCart.Items[i].ID == id {
			s.ProductCart.Items = append(s.ProductCart.Items[:i], s.ProductCart.Items[i+1:]...)
			respondData(w, s.ProductCart)
			return
		}
	}
	respondFail(w, http.StatusNotFound, "cart item not found")
}

func (s *Server) clearServiceCart(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ServiceCart.Items = nil
	s.ClearedServiceCart = true
	respondData(w, s.ServiceCart)
}

func (s *Server) clearProductCart(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ProductCart.Items = nil
	s.ClearedProductCart = true
	respondData(w, s.ProductCart)
}

func (s *Server) getAddresses(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondData(w, s.Addresses)
}

func (s *Server) geocode(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GeocodeFailMessage != "" {
		respondFail(w, http.StatusBadGateway, s.GeocodeFailMessage)
		return
	}
	if s.GeocodeResult == nil {
		respondData(w, map[string]any{"latitude": nil, "longitude": nil})
		return
	}
	respondData(w, map[string]any{
		"latitude":  s.GeocodeResult.Latitude,
		"longitude": s.GeocodeResult.Longitude,
	})
}

func (s *Server) getOrders(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondData(w, s.Orders)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "id")
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			respondData(w, s.Orders[i])
			return
		}
	}
	respondFail(w, http.StatusNotFound, "order not found")
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var draft domain.OrderDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondFail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailCreateOrder != "" {
		respondFail(w, http.StatusUnprocessableEntity, s.FailCreateOrder)
		return
	}
	s.CreatedDrafts = append(s.CreatedDrafts, draft)

	if s.CreatedOrder != nil {
		respondData(w, *s.CreatedOrder)
		return
	}
	respondData(w, domain.Order{
		ID:            "ord-1",
		Status:        "pending",
		PaymentMethod: draft.PaymentMethod,
		Address:       draft.Address,
		ServiceItems:  draft.ServiceItems,
		ProductItems:  draft.ProductItems,
		TotalAmount:   draft.TotalAmount,
		Type:          draft.Type,
	})
}

func (s *Server) cancelOrder(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "id")
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			s.Orders[i].Status = "cancelled"
			respondData(w, s.Orders[i])
			return
		}
	}
	respondFail(w, http.StatusNotFound, "order not found")
}

func (s *Server) createProviderOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID string  `json:"orderId"`
		Amount  float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondFail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	respondData(w, map[string]any{
		"providerOrderId": "prov-" + req.OrderID,
		"key":             "key_test",
		"amount":          req.Amount,
	})
}

func (s *Server) verifyPayment(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.VerifyCalls++
	if s.FailVerify != "" {
		respondFail(w, http.StatusBadRequest, s.FailVerify)
		return
	}
	respondData(w, nil)
}

func (s *Server) getWallet(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondData(w, domain.Wallet{Balance: s.WalletBalance, Currency: "INR"})
}

func (s *Server) addMoney(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondFail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.WalletBalance += req.Amount
	respondData(w, domain.Wallet{Balance: s.WalletBalance, Currency: "INR"})
}

func (s *Server) deductMoney(w http.ResponseWriter, r *http.Request) {
	var call DeductCall
	if err := json.NewDecoder(r.Body).Decode(&call); err != nil {
		respondFail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.DeductCalls = append(s.DeductCalls, call)
	if s.FailDeduct != "" {
		respondFail(w, http.StatusUnprocessableEntity, s.FailDeduct)
		return
	}
	s.WalletBalance -= call.Amount
	respondData(w, domain.Wallet{Balance: s.WalletBalance, Currency: "INR"})
}

func (s *Server) getTransactions(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondData(w, s.Transactions)
}

func (s *Server) getBookings(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondData(w, s.Bookings)
}

func (s *Server) getNotifications(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondData(w, s.Notifications)
}

func (s *Server) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "id")
	for i := range s.Notifications {
		if s.Notifications[i].ID == id {
			s.Notifications[i].Read = true
			respondData(w, s.Notifications[i])
			return
		}
	}
	respondFail(w, http.StatusNotFound, "notification not found")
}

func (s *Server) getReviews(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondData(w, s.Reviews[chi.URLParam(r, "id")])
}

func (s *Server) getProducts(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ProductListCalls++
	respondData(w, s.Products)
}

func (s *Server) getServices(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ServiceListCalls++
	respondData(w, s.SalonServices)
}

func (s *Server) getProfessionals(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondData(w, s.Professionals)
}
