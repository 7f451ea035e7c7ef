// Package cart wraps the server-owned service and product carts. Items are
// never created here; the client only lists, reschedules, requantifies and
// removes lines the server already holds.
package cart

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"github.com/salonhub/salonhub-go/internal/api"
	"github.com/salonhub/salonhub-go/internal/domain"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	api   *api.Client
	guard busyGuard
}

func NewService(client *api.Client) *Service {
	return &Service{api: client, guard: newBusyGuard()}
}

func (s *Service) ServiceCart(ctx context.Context) (*domain.ServiceCart, error) {
	var cart domain.ServiceCart
	if err := s.api.Get(ctx, "/cart", &cart); err != nil {
		return nil, fmt.Errorf("fetch service cart: %w", err)
	}
	return &cart, nil
}

func (s *Service) ProductCart(ctx context.Context) (*domain.ProductCart, error) {
	var cart domain.ProductCart
	if err := s.api.Get(ctx, "/product-cart", &cart); err != nil {
		return nil, fmt.Errorf("fetch product cart: %w", err)
	}
	return &cart, nil
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type scheduleRequest struct {
	SelectedDate     string `json:"selectedDate"`
	SelectedTime     string `json:"selectedTime"`
	ProfessionalID   string `json:"professionalId"`
	ProfessionalName string `json:"professionalName"`
}

func (s *Service) UpdateServiceQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity <= 0 || quantity > 99 {
		return ErrInvalidQuantity
	}
	return s.mutate(ctx, itemID, func() error {
		return s.api.Patch(ctx, "/cart/"+url.PathEscape(itemID), updateQuantityRequest{Quantity: quantity}, nil)
	})
}

func (s *Service) UpdateProductQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity <= 0 || quantity > 99 {
		return ErrInvalidQuantity
	}
	return s.mutate(ctx, itemID, func() error {
		return s.api.Patch(ctx, "/product-cart/"+url.PathEscape(itemID), updateQuantityRequest{Quantity: quantity}, nil)
	})
}

// ScheduleServiceItem assigns the date, time and professional a service
// line needs before it can be checked out.
func (s *Service) ScheduleServiceItem(ctx context.Context, itemID string, req domain.ServiceCartItem) error {
	return s.mutate(ctx, itemID, func() error {
		body := scheduleRequest{
			SelectedDate:     req.SelectedDate,
			SelectedTime:     req.SelectedTime,
			ProfessionalID:   req.ProfessionalID,
			ProfessionalName: req.ProfessionalName,
		}
		return s.api.Patch(ctx, "/cart/"+url.PathEscape(itemID), body, nil)
	})
}

func (s *Service) RemoveServiceItem(ctx context.Context, itemID string) error {
	return s.mutate(ctx, itemID, func() error {
		return s.api.Delete(ctx, "/cart/"+url.PathEscape(itemID))
	})
}

func (s *Service) RemoveProductItem(ctx context.Context, itemID string) error {
	return s.mutate(ctx, itemID, func() error {
		return s.api.Delete(ctx, "/product-cart/"+url.PathEscape(itemID))
	})
}

// mutate serializes mutations per item id so a double tap cannot submit
// the same mutation twice concurrently.
func (s *Service) mutate(ctx context.Context, itemID string, fn func() error) error {
	if !s.guard.acquire(itemID) {
		return ErrMutationInFlight
	}
	defer s.guard.release(itemID)
	return fn()
}

// ClearAll deletes both carts in parallel. It is best-effort: it is only
// called after an order already succeeded, so failures are logged and
// swallowed rather than surfaced.
func (s *Service) ClearAll(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error {
		if err := s.api.Delete(ctx, "/cart"); err != nil {
			log.Printf("clear service cart failed: %v", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.api.Delete(ctx, "/product-cart"); err != nil {
			log.Printf("clear product cart failed: %v", err)
		}
		return nil
	})
	_ = g.Wait()
}
