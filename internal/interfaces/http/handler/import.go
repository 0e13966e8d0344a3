package handler

import (
	"github.com/michealzs/storemicroservice/internal/application/importer"
	"github.com/gin-gonic/gin"
)

// ImportHandler triggers catalog imports from the upstream store
type ImportHandler struct {
	BaseHandler
	importService *importer.Service
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(importService *importer.Service) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// Run godoc
// @Summary      Import the upstream catalog into the local one
// @Tags         import
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      502 {object} dto.Response
// @Router       /import/catalog [post]
func (h *ImportHandler) Run(c *gin.Context) {
	report, err := h.importService.Run(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// RegisterAdminRoutes registers import routes
func (h *ImportHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/import/catalog", h.Run)
}
