package notifications

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

func (s *Service) List(ctx context.Context) ([]domain.Notification, error) {
	var items []domain.Notification
	if err := s.api.Get(ctx, "/notifications", &items); err != nil {
		return nil, fmt.Errorf("fetch notifications: %w", err)
	}
	return items, nil
}

func (s *Service) MarkRead(ctx context.Context, id string) error {
	if err := s.api.Patch(ctx, "/notifications/"+url.PathEscape(id)+"/read", nil, nil); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
