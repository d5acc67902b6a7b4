package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/current_account_engine/internal/core/ports/services"
	"github.com/SscSPs/current_account_engine/internal/dto"
	"github.com/gin-gonic/gin"
)

type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

// RegisterAuditRoutes registers the audit log routes.
func RegisterAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := &auditHandler{auditService: auditService}

	audit := rg.Group("/audit")
	{
		audit.GET("", h.listAll)
		audit.DELETE("", h.clear)
		audit.GET("/accounts/:number", h.listByAccount)
	}
}

func (h *auditHandler) listByAccount(c *gin.Context) {
	messages, err := h.auditService.ListByAccount(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondError(c, err, "Failed to list audit entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToAuditMessagesResponse(messages))
}

func (h *auditHandler) listAll(c *gin.Context) {
	messages, err := h.auditService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list audit entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToAuditMessagesResponse(messages))
}

func (h *auditHandler) clear(c *gin.Context) {
	if err := h.auditService.Clear(c.Request.Context()); err != nil {
		respondError(c, err, "Failed to clear audit log")
		return
	}
	c.Status(http.StatusNoContent)
}
