package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *CatalogGormRepository) GetSalon(ctx context.Context, id uint) (*models.Salon, error) {
	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrSalonNotFound
		}
		return nil, fmt.Errorf("get salon %d: %w", id, err)
	}
	return &salon, nil
}

func (r *CatalogGormRepository) UpdateSalonImage(ctx context.Context, salonID uint, url string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Salon{}).
		Where("id = ?", salonID).
		Update("image_url", url)
	if res.Error != nil {
		return fmt.Errorf("update salon image: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return catalog.ErrSalonNotFound
	}
	return nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *CatalogGormRepository) ListServicesByIDs(ctx context.Context, ids []uint) ([]models.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&services).Error; err != nil {
		return nil, fmt.Errorf("list services by id: %w", err)
	}
	return services, nil
}

func (r *CatalogGormRepository) ListServices(ctx context.Context, salonID uint) ([]models.Service, error) {
	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("salon_id = ? AND active = ?", salonID, true).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

// --------------------------------------------------
// Packages / Products
// --------------------------------------------------

func (r *CatalogGormRepository) ListPackages(ctx context.Context, salonID uint) ([]models.Package, error) {
	var packages []models.Package
	if err := r.db.WithContext(ctx).
		Where("salon_id = ? AND active = ?", salonID, true).
		Order("id ASC").
		Find(&packages).Error; err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	return packages, nil
}

func (r *CatalogGormRepository) ListProducts(ctx context.Context, salonID uint) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Where("salon_id = ? AND active = ?", salonID, true).
		Order("id ASC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

var _ catalog.Repository = (*CatalogGormRepository)(nil)
