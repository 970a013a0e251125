package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	salonUC "github.com/BruksfildServices01/salon-booking/internal/usecase/salon"
)

type SalonHandler struct {
	catalog *salonUC.GetCatalog
	image   *salonUC.UpdateImage
}

func NewSalonHandler(
	cat catalog.Repository,
	blobs catalog.BlobStore,
	dispatcher *audit.Dispatcher,
) *SalonHandler {
	return &SalonHandler{
		catalog: salonUC.NewGetCatalog(cat),
		image:   salonUC.NewUpdateImage(cat, blobs, dispatcher),
	}
}

func (h *SalonHandler) Catalog(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out, err := h.catalog.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

// UploadImage expects multipart/form-data with the file in field "image".
func (h *SalonHandler) UploadImage(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if scoped := scopedSalon(c); scoped != 0 && scoped != id {
		httperr.Forbidden(c, "Acesso negado.")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		httperr.Respond(c, httperr.Validation("missing_image", "image é obrigatório."))
		return
	}
	if file.Size > salonUC.MaxImageBytes {
		httperr.Respond(c, httperr.Validation("image_too_large", "Imagem muito grande."))
		return
	}

	f, err := file.Open()
	if err != nil {
		httperr.Respond(c, httperr.Validation("invalid_image", "Arquivo inválido."))
		return
	}
	defer f.Close()

	body, err := io.ReadAll(io.LimitReader(f, salonUC.MaxImageBytes+1))
	if err != nil {
		httperr.Respond(c, httperr.Validation("invalid_image", "Arquivo inválido."))
		return
	}

	url, err := h.image.Execute(c.Request.Context(), id, body)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"image_url": url})
}
