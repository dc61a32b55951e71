package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet/internal/service"
)

// AdminHandler handles administrative HTTP requests.
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Backup handles POST /v1/admin/backup
func (h *AdminHandler) Backup(c *gin.Context) {
	backups, err := h.adminService.BackupAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"backups": backups})
}

// Status handles GET /v1/admin/status
func (h *AdminHandler) Status(c *gin.Context) {
	sizes, err := h.adminService.CollectionSizes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"collection_sizes": sizes})
}
