package salon

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/salon-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

var errSalonNotFound = httperr.NotFoundErr("salon_not_found", "Salão não encontrado.")

type GetCatalog struct {
	repo catalog.Repository
}

func NewGetCatalog(repo catalog.Repository) *GetCatalog {
	return &GetCatalog{repo: repo}
}

// Execute returns the salon with its active services, packages and products.
func (uc *GetCatalog) Execute(ctx context.Context, salonID uint) (*catalog.Catalog, error) {
	salon, err := uc.repo.GetSalon(ctx, salonID)
	if errors.Is(err, catalog.ErrSalonNotFound) {
		return nil, errSalonNotFound
	}
	if err != nil {
		return nil, httperr.Storage(err)
	}
	if !salon.Active {
		return nil, errSalonNotFound
	}

	services, err := uc.repo.ListServices(ctx, salonID)
	if err != nil {
		return nil, httperr.Storage(err)
	}
	packages, err := uc.repo.ListPackages(ctx, salonID)
	if err != nil {
		return nil, httperr.Storage(err)
	}
	products, err := uc.repo.ListProducts(ctx, salonID)
	if err != nil {
		return nil, httperr.Storage(err)
	}

	return &catalog.Catalog{
		Salon:    *salon,
		Services: nonNil(services),
		Packages: nonNil(packages),
		Products: nonNil(products),
	}, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
