package salon

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/infra/imaging"
)

// MaxImageBytes bounds the accepted upload before decoding.
const MaxImageBytes = 8 << 20

type UpdateImage struct {
	repo  catalog.Repository
	blobs catalog.BlobStore
	audit *audit.Dispatcher
}

func NewUpdateImage(
	repo catalog.Repository,
	blobs catalog.BlobStore,
	audit *audit.Dispatcher,
) *UpdateImage {
	return &UpdateImage{
		repo:  repo,
		blobs: blobs,
		audit: audit,
	}
}

// Execute re-encodes the image as WebP, uploads it and stores its URL on the
// salon. It returns the public URL.
func (uc *UpdateImage) Execute(ctx context.Context, salonID uint, image []byte) (string, error) {
	if uc.blobs == nil {
		return "", httperr.Gateway(
			"storage_not_configured",
			"Armazenamento de imagens indisponível.",
			errors.New("blob store not configured"),
		)
	}

	switch {
	case len(image) == 0:
		return "", httperr.Validation("missing_image", "image é obrigatório.")
	case len(image) > MaxImageBytes:
		return "", httperr.Validation("image_too_large", "Imagem muito grande.")
	}

	if _, err := uc.repo.GetSalon(ctx, salonID); err != nil {
		if errors.Is(err, catalog.ErrSalonNotFound) {
			return "", errSalonNotFound
		}
		return "", httperr.Storage(err)
	}

	encoded, err := imaging.ToWebP(bytes.NewReader(image), imaging.DefaultMaxWidth, imaging.DefaultQuality)
	if err != nil {
		logrus.WithError(err).WithField("salon_id", salonID).Warn("image rejected")
		return "", httperr.Validation("invalid_image", "Formato de imagem não suportado.")
	}

	key := fmt.Sprintf("salons/%d/%s.webp", salonID, uuid.NewString())
	url, err := uc.blobs.Upload(ctx, key, "image/webp", encoded)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Error("image upload failed")
		return "", httperr.Gateway("upload_failed", "Falha ao enviar a imagem.", err)
	}

	if err := uc.repo.UpdateSalonImage(ctx, salonID, url); err != nil {
		return "", httperr.Storage(err)
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   audit.ActorFrom(ctx),
		Action:   "salon_image_updated",
		Entity:   "salon",
		EntityID: &salonID,
		Metadata: map[string]any{"url": url, "bytes": len(encoded)},
	})

	return url, nil
}
