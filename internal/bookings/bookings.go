// Package bookings reads the user's service bookings and orders and
// forwards cancellations. Status history rendering lives in timeline.
package bookings

import (
	"context"
	"fmt"
	"net/url"

	"github.com/salonhub/salonhub-go/internal/api"
	"github.com/salonhub/salonhub-go/internal/domain"
)

type Service struct {
	api *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{api: client}
}

func (s *Service) MyBookings(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := s.api.Get(ctx, "/bookings/my-bookings", &bookings); err != nil {
		return nil, fmt.Errorf("fetch bookings: %w", err)
	}
	return bookings, nil
}

func (s *Service) Orders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := s.api.Get(ctx, "/orders", &orders); err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	return orders, nil
}

func (s *Service) Order(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	if err := s.api.Get(ctx, "/orders/"+url.PathEscape(orderID), &order); err != nil {
		return nil, fmt.Errorf("fetch order %s: %w", orderID, err)
	}
	return &order, nil
}

func (s *Service) CancelOrder(ctx context.Context, orderID string) error {
	if err := s.api.Post(ctx, "/orders/"+url.PathEscape(orderID)+"/cancel", nil, nil); err != nil {
		return fmt.Errorf("cancel order %s: %w", orderID, err)
	}
	return nil
}
