package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fuzumoe/jobcull-api/internal/model"
	"github.com/fuzumoe/jobcull-api/internal/service"
)

// LinkHandler exposes the classification pipeline over HTTP.
type LinkHandler struct {
	linkService service.LinkService
}

// NewLinkHandler creates a new LinkHandler.
func NewLinkHandler(svc service.LinkService) *LinkHandler {
	return &LinkHandler{linkService: svc}
}

// Check classifies a single URL. Heuristic uncertainty and internal
// failures still answer 200 with a conservative KEEP body; 400 is reserved
// for malformed request JSON.
func (h *LinkHandler) Check(c *gin.Context) {
	var in model.CheckLinkInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	res := h.linkService.Check(c.Request.Context(), in.URL, time.Duration(in.TimeoutSeconds)*time.Second)
	c.JSON(http.StatusOK, res)
}

// CheckBatch classifies a list of URLs with a bounded worker pool and
// returns ordered results plus the run summary.
func (h *LinkHandler) CheckBatch(c *gin.Context) {
	var in model.CheckBatchInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	results, summary := h.linkService.CheckBatch(
		c.Request.Context(),
		in.URLs,
		time.Duration(in.TimeoutSeconds)*time.Second,
		in.MaxWorkers,
	)
	c.JSON(http.StatusOK, gin.H{"results": results, "summary": summary})
}

// Sources returns the base-domain breakdown for a URL list.
func (h *LinkHandler) Sources(c *gin.Context) {
	var in model.SourcesInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	c.JSON(http.StatusOK, h.linkService.Sources(in.URLs, in.ExamplesPerSource))
}

// RegisterRoutes mounts the link endpoints on the given router group.
func (h *LinkHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/links/check", h.Check)
	rg.POST("/links/check-batch", h.CheckBatch)
	rg.POST("/links/sources", h.Sources)
}
