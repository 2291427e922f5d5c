package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Domenick1991/inflight/internal/domain"
	"github.com/Domenick1991/inflight/internal/service/scanner"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type ScannerHandler struct {
	service scanner.ScannerUseCase
}

type validateRequest struct {
	QRURL     string   `json:"qr_url"`
	FlightID  *int64   `json:"flight_id"`
	EventType string   `json:"event_type"`
	AmountML  *float64 `json:"amount_ml"`
}

type validateBatchRequest struct {
	QRURLs   []string `json:"qr_urls"`
	FlightID *int64   `json:"flight_id"`
}

type BottleData struct {
	BottleID    int64   `json:"bottle_id"`
	ItemName    string  `json:"item_name"`
	AirlineName string  `json:"airline_name"`
	CurrentPct  float64 `json:"current_pct"`
	Status      string  `json:"status"`
	BatchCode   string  `json:"batch_code"`
}

type validateResponse struct {
	Success  bool        `json:"success"`
	Verified bool        `json:"verified"`
	Message  string      `json:"message"`
	Data     *BottleData `json:"data,omitempty"`
	Error    string      `json:"error,omitempty"`
}

type batchResult struct {
	QRURL    string `json:"qr_url"`
	Verified bool   `json:"verified"`
	*BottleData
	Error string `json:"error,omitempty"`
}

type batchSummary struct {
	Total       int `json:"total"`
	Verified    int `json:"verified"`
	NotVerified int `json:"not_verified"`
}

type validateBatchResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Results []batchResult `json:"results"`
	Summary batchSummary  `json:"summary"`
}

func NewScannerHandler(service scanner.ScannerUseCase) *ScannerHandler {
	return &ScannerHandler{service: service}
}

func (h *ScannerHandler) Register(router *gin.RouterGroup) {
	router.POST("/validate", h.validate)
	router.POST("/validate/batch", h.validateBatch)
}

func (h *ScannerHandler) validate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validateResponse{Message: "Invalid request body", Error: err.Error()})
		return
	}

	input := scanner.VerifyInput{
		QRURL:     req.QRURL,
		FlightID:  req.FlightID,
		EventType: req.EventType,
		AmountML:  req.AmountML,
	}
	if identity, ok := IdentityFrom(c); ok {
		input.UserID = identity.NumericUserID()
	}

	result, err := h.service.Verify(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			c.JSON(http.StatusBadRequest, validateResponse{
				Message: "QR URL is required",
				Error:   "Missing required field: qr_url",
			})
			return
		}
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("qr validation failed")
		c.JSON(http.StatusInternalServerError, validateResponse{
			Message: "Error validating QR code",
			Error:   "internal server error",
		})
		return
	}

	if !result.Verified {
		c.JSON(http.StatusOK, validateResponse{
			Success: true,
			Message: domain.ReasonNotRecognized,
			Error:   result.Reason,
		})
		return
	}

	c.JSON(http.StatusOK, validateResponse{
		Success:  true,
		Verified: true,
		Message:  "QR code validated successfully",
		Data:     toBottleData(result.Bottle),
	})
}

func (h *ScannerHandler) validateBatch(c *gin.Context) {
	var req validateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.QRURLs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "qr_urls must be a non-empty array"})
		return
	}

	batch, err := h.service.VerifyBatch(c.Request.Context(), scanner.VerifyBatchInput{
		QRURLs:   req.QRURLs,
		FlightID: req.FlightID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "qr_urls must be a non-empty array"})
			return
		}
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Int("size", len(req.QRURLs)).Msg("batch qr validation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error validating QR codes",
			"error":   "internal server error",
		})
		return
	}

	results := make([]batchResult, 0, len(batch.Results))
	for _, r := range batch.Results {
		item := batchResult{QRURL: r.QRURL, Verified: r.Verified, Error: r.Reason}
		if r.Verified {
			item.BottleData = toBottleData(r.Bottle)
		}
		results = append(results, item)
	}

	c.JSON(http.StatusOK, validateBatchResponse{
		Success: true,
		Message: fmt.Sprintf("Batch validation complete: %d verified, %d not recognized", batch.Summary.Verified, batch.Summary.NotVerified),
		Results: results,
		Summary: batchSummary{
			Total:       batch.Summary.Total,
			Verified:    batch.Summary.Verified,
			NotVerified: batch.Summary.NotVerified,
		},
	})
}

func toBottleData(b *domain.BottleSnapshot) *BottleData {
	if b == nil {
		return nil
	}
	return &BottleData{
		BottleID:    b.BottleID,
		ItemName:    b.ItemName,
		AirlineName: b.AirlineName,
		CurrentPct:  b.CurrentPct,
		Status:      string(b.Status),
		BatchCode:   b.BatchCode,
	}
}
