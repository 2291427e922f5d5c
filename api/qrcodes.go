package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Domenick1991/inflight/internal/domain"
	"github.com/Domenick1991/inflight/internal/service/qrcodes"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type QRCodeHandler struct {
	service qrcodes.QRCodeUseCase
}

func NewQRCodeHandler(service qrcodes.QRCodeUseCase) *QRCodeHandler {
	return &QRCodeHandler{service: service}
}

func (h *QRCodeHandler) Register(router *gin.RouterGroup) {
	router.GET("/qr-codes", h.listReferences)
	router.GET("/known-qrs", h.listKnown)
}

func (h *QRCodeHandler) listReferences(c *gin.Context) {
	var filter domain.QRReferenceFilter

	airlineID, err := optionalInt64(c, "airline_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid airline_id"})
		return
	}
	beverageID, err := optionalInt64(c, "beverage_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid beverage_id"})
		return
	}
	filter.AirlineID = airlineID
	filter.BeverageID = beverageID
	if status := c.Query("status"); status != "" {
		s := domain.BottleStatus(status)
		filter.Status = &s
	}

	refs, err := h.service.ListQRReferences(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("list qr references failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching QR codes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": refs, "count": len(refs)})
}

func (h *QRCodeHandler) listKnown(c *gin.Context) {
	codes, err := h.service.ListKnownCodes(c.Request.Context())
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("list known qr codes failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching known QR codes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": codes, "count": len(codes)})
}

func optionalInt64(c *gin.Context, key string) (*int64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
