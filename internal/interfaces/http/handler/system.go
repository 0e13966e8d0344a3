package handler

import (
	"time"

	catalogapp "github.com/michealzs/storemicroservice/internal/application/catalog"
	appstore "github.com/michealzs/storemicroservice/internal/application/store"
	"github.com/michealzs/storemicroservice/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SystemHandler exposes service health and storefront navigation data
type SystemHandler struct {
	BaseHandler
	db              *gorm.DB
	categoryService *catalogapp.CategoryService
	cartService     *appstore.CartService
	startedAt       time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *gorm.DB, categoryService *catalogapp.CategoryService, cartService *appstore.CartService) *SystemHandler {
	return &SystemHandler{
		db:              db,
		categoryService: categoryService,
		cartService:     cartService,
		startedAt:       time.Now(),
	}
}

// HealthStatus reports service liveness and database reachability
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

// Health godoc
// @Summary      Service health check
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	status := HealthStatus{
		Status:   "ok",
		Database: "ok",
		Uptime:   time.Since(h.startedAt).Round(time.Second).String(),
	}

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		status.Status = "degraded"
		status.Database = "unreachable"
	}
	h.Success(c, status)
}

// Navbar godoc
// @Summary      Storefront navigation data: categories plus the caller's cart count
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /navbar [get]
func (h *SystemHandler) Navbar(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	cartItemCount := 0
	if scope, ok := middleware.GetCartScope(c); ok {
		cartItemCount, err = h.cartService.ItemCount(c.Request.Context(), scope)
		if err != nil {
			h.HandleError(c, err)
			return
		}
	}

	h.Success(c, gin.H{
		"categories":      categories,
		"cart_item_count": cartItemCount,
	})
}

// RegisterRoutes registers the health probe
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// RegisterScopedRoutes registers routes that read the caller's cart scope
func (h *SystemHandler) RegisterScopedRoutes(rg *gin.RouterGroup) {
	rg.GET("/navbar", h.Navbar)
}
