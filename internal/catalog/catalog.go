// Package catalog reads products, services, professionals and reviews.
// Listings can be served through an optional cache so repeated browsing
// doesn't refetch unchanged catalogs.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/salonhub/salonhub-go/internal/api"
	"github.com/salonhub/salonhub-go/internal/catalog/cache"
	"github.com/salonhub/salonhub-go/internal/domain"
	"golang.org/x/sync/singleflight"
)

type Service struct {
	api   *api.Client
	cache cache.Listings
	sfg   singleflight.Group // Prevents cache stampede
}

// NewService builds a catalog service. listings may be nil, which
// disables caching entirely.
func NewService(client *api.Client, listings cache.Listings) *Service {
	return &Service{api: client, cache: listings}
}

func (s *Service) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := s.cachedGet(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Service) Services(ctx context.Context) ([]domain.SalonService, error) {
	var services []domain.SalonService
	if err := s.cachedGet(ctx, "/services", &services); err != nil {
		return nil, err
	}
	return services, nil
}

// ProfessionalsByServices returns professionals able to perform all the
// given services. Not cached: availability changes too often.
func (s *Service) ProfessionalsByServices(ctx context.Context, serviceIDs []string) ([]domain.Professional, error) {
	path := "/professionals/by-services?serviceIds=" + url.QueryEscape(strings.Join(serviceIDs, ","))
	var pros []domain.Professional
	if err := s.api.Get(ctx, path, &pros); err != nil {
		return nil, fmt.Errorf("fetch professionals: %w", err)
	}
	return pros, nil
}

func (s *Service) ReviewsForOrder(ctx context.Context, orderID string) ([]domain.Review, error) {
	var reviews []domain.Review
	if err := s.api.Get(ctx, "/reviews/order/"+url.PathEscape(orderID)+"/items", &reviews); err != nil {
		return nil, fmt.Errorf("fetch reviews: %w", err)
	}
	return reviews, nil
}

// FilterProductsByCategory is the client-side category filter used by
// the catalog views. category == "" keeps everything.
func FilterProductsByCategory(products []domain.Product, category string) []domain.Product {
	if category == "" {
		return products
	}
	var out []domain.Product
	for _, p := range products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// cachedGet serves path from cache when possible, collapsing concurrent
// misses for the same path through singleflight.
func (s *Service) cachedGet(ctx context.Context, path string, out any) error {
	if s.cache == nil {
		if err := s.api.Get(ctx, path, out); err != nil {
			return fmt.Errorf("fetch %s: %w", path, err)
		}
		return nil
	}

	v, err, _ := s.sfg.Do(path, func() (interface{}, error) {
		data, err := s.cache.Get(ctx, path)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		var raw json.RawMessage
		if errGet := s.api.Get(ctx, path, &raw); errGet != nil {
			return nil, fmt.Errorf("fetch %s: %w", path, errGet)
		}

		go func() {
			if errSet := s.cache.Set(context.Background(), path, raw); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return []byte(raw), nil
	})
	if err != nil {
		return err
	}

	return json.Unmarshal(v.([]byte), out)
}
