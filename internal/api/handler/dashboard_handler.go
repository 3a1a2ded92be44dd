package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inventrack/dashboard-gateway/internal/core/domain"
	"github.com/inventrack/dashboard-gateway/internal/core/ports"
	"github.com/inventrack/dashboard-gateway/internal/pkg/notify"
)

// DashboardHandler serves the overview screen: counts per entity and the
// stock-in/stock-out totals, all read through the shared caches.
type DashboardHandler struct {
	inventory ports.Inventory
	notifier  *notify.Notifier
	log       zerolog.Logger
}

func NewDashboardHandler(inventory ports.Inventory, notifier *notify.Notifier, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{inventory: inventory, notifier: notifier, log: log}
}

type dashboardPage struct {
	basePage
	ProductCount  int
	CategoryCount int
	SupplierCount int
	StockIn       int
	StockOut      int
}

func (h *DashboardHandler) Overview(c echo.Context) error {
	if _, err := requireSession(c); err != nil {
		return err
	}
	ctx := c.Request().Context()
	page := dashboardPage{basePage: newBasePage(c, "Dashboard", h.notifier)}

	// Each widget degrades independently: one failed list leaves its count
	// at zero and flags the page, the rest still render.
	products, err := h.inventory.Products(ctx)
	if err != nil {
		page.Err = "Some dashboard data could not be loaded."
		h.log.Error().Err(err).Msg("overview: products failed")
	}
	page.ProductCount = len(products)

	categories, err := h.inventory.Categories(ctx)
	if err != nil {
		page.Err = "Some dashboard data could not be loaded."
		h.log.Error().Err(err).Msg("overview: categories failed")
	}
	page.CategoryCount = len(categories)

	suppliers, err := h.inventory.Suppliers(ctx)
	if err != nil {
		page.Err = "Some dashboard data could not be loaded."
		h.log.Error().Err(err).Msg("overview: suppliers failed")
	}
	page.SupplierCount = len(suppliers)

	txns, err := h.inventory.Transactions(ctx)
	if err != nil {
		page.Err = "Some dashboard data could not be loaded."
		h.log.Error().Err(err).Msg("overview: transactions failed")
	}
	for _, t := range txns {
		switch t.Type {
		case domain.StockIn:
			page.StockIn += t.Quantity
		case domain.StockOut:
			page.StockOut += t.Quantity
		}
	}

	return c.Render(http.StatusOK, "dashboard.html", page)
}
