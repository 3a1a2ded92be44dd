package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inventrack/dashboard-gateway/internal/core/domain"
	"github.com/inventrack/dashboard-gateway/internal/core/ports"
	"github.com/inventrack/dashboard-gateway/internal/pkg/notify"
)

// AuditLogHandler serves the read-only audit trail screen.
type AuditLogHandler struct {
	inventory ports.Inventory
	notifier  *notify.Notifier
	log       zerolog.Logger
}

func NewAuditLogHandler(inventory ports.Inventory, notifier *notify.Notifier, log zerolog.Logger) *AuditLogHandler {
	return &AuditLogHandler{inventory: inventory, notifier: notifier, log: log}
}

type auditLogPage struct {
	basePage
	Logs []domain.AuditLog
}

func (h *AuditLogHandler) List(c echo.Context) error {
	if _, err := requireSession(c); err != nil {
		return err
	}
	page := auditLogPage{basePage: newBasePage(c, "Audit Log", h.notifier)}

	logs, err := h.inventory.AuditLogs(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list audit logs failed")
		page.Err = "Could not load the audit log."
	} else {
		page.Logs = logs
	}
	return c.Render(http.StatusOK, "auditlog.html", page)
}
