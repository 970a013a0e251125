package salon

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/BruksfildServices01/salon-booking/internal/domain/booking/bookingtest"
	"github.com/BruksfildServices01/salon-booking/internal/domain/catalog/mocks"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 16))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// ======================================================
// CATALOG
// ======================================================

func TestGetCatalog_ActiveItemsOnly(t *testing.T) {
	store := bookingtest.Seeded()

	cat, err := NewGetCatalog(store).Execute(context.Background(), bookingtest.SalonID)
	require.NoError(t, err)

	assert.Equal(t, "Studio Bela", cat.Salon.Name)
	require.Len(t, cat.Services, 2)
	assert.Equal(t, "Corte", cat.Services[0].Name)
	assert.Equal(t, "Escova", cat.Services[1].Name)
	assert.Len(t, cat.Packages, 1)
	assert.Len(t, cat.Products, 1)
}

func TestGetCatalog_EmptyListsAreNotNil(t *testing.T) {
	store := bookingtest.NewStore()
	store.AddSalon(models.Salon{ID: 3, Name: "Novo", Active: true})

	cat, err := NewGetCatalog(store).Execute(context.Background(), 3)
	require.NoError(t, err)
	assert.NotNil(t, cat.Services)
	assert.NotNil(t, cat.Packages)
	assert.NotNil(t, cat.Products)
}

func TestGetCatalog_MissingOrInactiveSalon(t *testing.T) {
	store := bookingtest.Seeded()
	store.AddSalon(models.Salon{ID: 9, Name: "Fechado", Active: false})
	uc := NewGetCatalog(store)

	_, err := uc.Execute(context.Background(), 99)
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))

	_, err = uc.Execute(context.Background(), 9)
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))

	store.Err = errors.New("db down")
	_, err = uc.Execute(context.Background(), bookingtest.SalonID)
	assert.Equal(t, httperr.KindStorage, httperr.KindOf(err))
}

// ======================================================
// IMAGE
// ======================================================

func TestUpdateImage_UploadsWebPAndStoresURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	blobs := mocks.NewMockBlobStore(ctrl)
	store := bookingtest.Seeded()
	uc := NewUpdateImage(store, blobs, nil)

	blobs.EXPECT().Upload(gomock.Any(), gomock.Any(), "image/webp", gomock.Any()).
		DoAndReturn(func(_ context.Context, key, _ string, body []byte) (string, error) {
			assert.True(t, strings.HasPrefix(key, "salons/7/"), key)
			assert.True(t, strings.HasSuffix(key, ".webp"), key)
			assert.Equal(t, "RIFF", string(body[:4]))
			return "https://cdn.example.com/" + key, nil
		})

	url, err := uc.Execute(context.Background(), bookingtest.SalonID, pngBytes(t))
	require.NoError(t, err)

	salon, err := store.GetSalon(context.Background(), bookingtest.SalonID)
	require.NoError(t, err)
	assert.Equal(t, url, salon.ImageURL)
}

func TestUpdateImage_Rejections(t *testing.T) {
	ctrl := gomock.NewController(t)
	blobs := mocks.NewMockBlobStore(ctrl)
	store := bookingtest.Seeded()
	uc := NewUpdateImage(store, blobs, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, bookingtest.SalonID, nil)
	assert.True(t, httperr.IsBusiness(err, "missing_image"))

	_, err = uc.Execute(ctx, bookingtest.SalonID, []byte("not an image"))
	assert.True(t, httperr.IsBusiness(err, "invalid_image"))

	_, err = uc.Execute(ctx, 99, pngBytes(t))
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))

	_, err = NewUpdateImage(store, nil, nil).Execute(ctx, bookingtest.SalonID, pngBytes(t))
	assert.Equal(t, httperr.KindGateway, httperr.KindOf(err))
}

func TestUpdateImage_UploadFailureKeepsOldImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	blobs := mocks.NewMockBlobStore(ctrl)
	store := bookingtest.Seeded()
	uc := NewUpdateImage(store, blobs, nil)

	blobs.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errors.New("access denied"))

	_, err := uc.Execute(context.Background(), bookingtest.SalonID, pngBytes(t))
	assert.Equal(t, httperr.KindGateway, httperr.KindOf(err))

	salon, _ := store.GetSalon(context.Background(), bookingtest.SalonID)
	assert.Empty(t, salon.ImageURL)
}
