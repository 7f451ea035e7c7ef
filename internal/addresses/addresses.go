// Package addresses lists the user's saved delivery addresses. Addresses
// are selected, not created, during checkout.
package addresses

import (
	"context"
	"fmt"

	"github.com/salonhub/salonhub-go/internal/api"
	"github.com/salonhub/salonhub-go/internal/domain"
)

type Service struct {
	api *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{api: client}
}

func (s *Service) List(ctx context.Context) ([]domain.Address, error) {
	var addrs []domain.Address
	if err := s.api.Get(ctx, "/addresses", &addrs); err != nil {
		return nil, fmt.Errorf("fetch addresses: %w", err)
	}
	return addrs, nil
}

// Default returns the default address, or the first one when none is
// flagged, or nil for an empty list.
func Default(addrs []domain.Address) *domain.Address {
	for i := range addrs {
		if addrs[i].IsDefault {
			return &addrs[i]
		}
	}
	if len(addrs) > 0 {
		return &addrs[0]
	}
	return nil
}
