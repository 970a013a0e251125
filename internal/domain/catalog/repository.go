package catalog

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks

var ErrSalonNotFound = errors.New("catalog: salon not found")

// Catalog is a salon's public reference data.
type Catalog struct {
	Salon    models.Salon     `json:"salon"`
	Services []models.Service `json:"services"`
	Packages []models.Package `json:"packages"`
	Products []models.Product `json:"products"`
}

// Repository is the read side of the reference data the booking core
// depends on but does not own.
type Repository interface {
	// -------- Salon --------
	GetSalon(ctx context.Context, id uint) (*models.Salon, error)
	UpdateSalonImage(ctx context.Context, salonID uint, url string) error

	// -------- Services --------
	// ListServicesByIDs returns the services that exist among ids, in no
	// particular order.
	ListServicesByIDs(ctx context.Context, ids []uint) ([]models.Service, error)
	ListServices(ctx context.Context, salonID uint) ([]models.Service, error)

	// -------- Packages / Products --------
	ListPackages(ctx context.Context, salonID uint) ([]models.Package, error)
	ListProducts(ctx context.Context, salonID uint) ([]models.Product, error)
}

type BlobStore interface {
	// Upload stores body under key and returns its public URL.
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
}
