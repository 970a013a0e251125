package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/salon-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-booking/internal/infra/cache"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// CachedCatalogRepository is a read-through cache over another catalog
// repository. Cache failures degrade to direct reads.
type CachedCatalogRepository struct {
	inner catalog.Repository
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedCatalogRepository(inner catalog.Repository, c cache.Cache, ttl time.Duration) *CachedCatalogRepository {
	if c == nil {
		c = cache.Noop{}
	}
	return &CachedCatalogRepository{inner: inner, cache: c, ttl: ttl}
}

func salonKey(id uint) string { return fmt.Sprintf("salon:%d", id) }
func serviceKey(id uint) string { return fmt.Sprintf("service:%d", id) }
func salonListKey(id uint, kind string) string { return fmt.Sprintf("salon:%d:%s", id, kind) }

func readThrough[T any](ctx context.Context, r *CachedCatalogRepository, key string, load func() (T, error)) (T, error) {
	var cached T
	found, err := r.cache.Get(ctx, key, &cached)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("catalog cache read failed")
	}
	if found {
		return cached, nil
	}

	v, err := load()
	if err != nil {
		return v, err
	}

	if err := r.cache.Set(ctx, key, v, r.ttl); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("catalog cache write failed")
	}
	return v, nil
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *CachedCatalogRepository) GetSalon(ctx context.Context, id uint) (*models.Salon, error) {
	return readThrough(ctx, r, salonKey(id), func() (*models.Salon, error) {
		return r.inner.GetSalon(ctx, id)
	})
}

func (r *CachedCatalogRepository) UpdateSalonImage(ctx context.Context, salonID uint, url string) error {
	if err := r.inner.UpdateSalonImage(ctx, salonID, url); err != nil {
		return err
	}
	if err := r.cache.Delete(ctx, salonKey(salonID)); err != nil {
		logrus.WithError(err).WithField("salon_id", salonID).Warn("catalog cache invalidation failed")
	}
	return nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

// ListServicesByIDs caches per service so overlapping selections share entries.
func (r *CachedCatalogRepository) ListServicesByIDs(ctx context.Context, ids []uint) ([]models.Service, error) {
	var (
		out     []models.Service
		missing []uint
	)

	for _, id := range ids {
		var svc models.Service
		found, err := r.cache.Get(ctx, serviceKey(id), &svc)
		if err != nil {
			logrus.WithError(err).WithField("service_id", id).Warn("catalog cache read failed")
		}
		if found {
			out = append(out, svc)
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return out, nil
	}

	loaded, err := r.inner.ListServicesByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for _, svc := range loaded {
		if err := r.cache.Set(ctx, serviceKey(svc.ID), svc, r.ttl); err != nil {
			logrus.WithError(err).WithField("service_id", svc.ID).Warn("catalog cache write failed")
		}
	}
	return append(out, loaded...), nil
}

func (r *CachedCatalogRepository) ListServices(ctx context.Context, salonID uint) ([]models.Service, error) {
	return readThrough(ctx, r, salonListKey(salonID, "services"), func() ([]models.Service, error) {
		return r.inner.ListServices(ctx, salonID)
	})
}

// --------------------------------------------------
// Packages / Products
// --------------------------------------------------

func (r *CachedCatalogRepository) ListPackages(ctx context.Context, salonID uint) ([]models.Package, error) {
	return readThrough(ctx, r, salonListKey(salonID, "packages"), func() ([]models.Package, error) {
		return r.inner.ListPackages(ctx, salonID)
	})
}

func (r *CachedCatalogRepository) ListProducts(ctx context.Context, salonID uint) ([]models.Product, error) {
	return readThrough(ctx, r, salonListKey(salonID, "products"), func() ([]models.Product, error) {
		return r.inner.ListProducts(ctx, salonID)
	})
}

var _ catalog.Repository = (*CachedCatalogRepository)(nil)
