package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/weatherchap/internal/domain/outfit"
	apperrors "github.com/yanqian/weatherchap/pkg/errors"
)

const pageTemplate = "index.html.tmpl"

// Handler wires the HTTP transport to the outfit service.
type Handler struct {
	outfitSvc outfit.Service
	logger    *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(outfitSvc outfit.Service, logger *slog.Logger) *Handler {
	return &Handler{
		outfitSvc: outfitSvc,
		logger:    logger.With("component", "http.handler"),
	}
}

// Home renders the outfit page for the requested (or default) location.
func (h *Handler) Home(c *gin.Context) {
	req := outfit.Request{
		Latitude:  c.Query("lat"),
		Longitude: c.Query("lon"),
	}
	resp, err := h.outfitSvc.Recommend(c.Request.Context(), req)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeInvalidInput) {
			h.logger.Info("rejected page request", "lat", req.Latitude, "lon", req.Longitude, "error", err)
			c.HTML(http.StatusBadRequest, pageTemplate, newErrorPageData(apperrors.Message(err), c.Query("theme")))
			return
		}
		abortWithError(c, recommendError(err))
		return
	}

	c.HTML(http.StatusOK, pageTemplate, newPageData(resp, c.Query("theme")))
}

// Outfit returns the recommendation as JSON.
func (h *Handler) Outfit(c *gin.Context) {
	var req outfit.Request
	if err := c.ShouldBindQuery(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.outfitSvc.Recommend(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, recommendError(err))
		return
	}
	if !resp.Available() {
		abortWithError(c, NewHTTPError(http.StatusBadGateway, apperrors.CodeWeatherUnavailable, "weather data is unavailable for "+resp.Location.Label, nil))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func recommendError(err error) *HTTPError {
	if apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		return NewHTTPError(http.StatusBadRequest, "invalid_request", apperrors.Message(err), err)
	}
	return NewHTTPError(http.StatusInternalServerError, "outfit_failed", errMessage(err), err)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
