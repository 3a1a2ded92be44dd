package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inventrack/dashboard-gateway/internal/api/middleware"
	"github.com/inventrack/dashboard-gateway/internal/core/domain"
	"github.com/inventrack/dashboard-gateway/internal/core/ports"
	"github.com/inventrack/dashboard-gateway/internal/pkg/notify"
)

const supplierPath = "/dashboard/suppliers"

// SupplierHandler serves the supplier screen.
type SupplierHandler struct {
	inventory ports.Inventory
	notifier  *notify.Notifier
	log       zerolog.Logger
}

func NewSupplierHandler(inventory ports.Inventory, notifier *notify.Notifier, log zerolog.Logger) *SupplierHandler {
	return &SupplierHandler{inventory: inventory, notifier: notifier, log: log}
}

type supplierForm struct {
	Name          string `form:"name"          validate:"required"`
	Email         string `form:"email"         validate:"required,email"`
	ContactNumber string `form:"contactNumber" validate:"required"`
	Address       string `form:"address"       validate:"required"`
}

type supplierPage struct {
	basePage
	Suppliers []domain.Supplier
}

func (h *SupplierHandler) List(c echo.Context) error {
	if _, err := requireSession(c); err != nil {
		return err
	}
	page := supplierPage{basePage: newBasePage(c, "Suppliers", h.notifier)}

	suppliers, err := h.inventory.Suppliers(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list suppliers failed")
		page.Err = "Could not load suppliers."
	} else {
		page.Suppliers = suppliers
	}
	return c.Render(http.StatusOK, "suppliers.html", page)
}

func (h *SupplierHandler) Create(c echo.Context) error {
	return h.submit(c, "Supplier added successfully", func(in ports.SupplierInput) error {
		return h.inventory.CreateSupplier(c.Request().Context(), in)
	})
}

func (h *SupplierHandler) Update(c echo.Context) error {
	id := c.Param("id")
	return h.submit(c, "Supplier updated successfully", func(in ports.SupplierInput) error {
		return h.inventory.UpdateSupplier(c.Request().Context(), id, in)
	})
}

func (h *SupplierHandler) Delete(c echo.Context) error {
	if _, err := requireSession(c); err != nil {
		return err
	}
	sid := middleware.SessionID(c)
	if err := h.inventory.DeleteSupplier(c.Request().Context(), c.Param("id")); err != nil {
		pushUpstreamError(h.notifier, h.log, sid, err, "Could not delete supplier.")
	} else {
		h.notifier.Push(sid, notify.Success, "Supplier deleted successfully")
	}
	return c.Redirect(http.StatusFound, supplierPath)
}

func (h *SupplierHandler) submit(c echo.Context, okMsg string, mutate func(ports.SupplierInput) error) error {
	if _, err := requireSession(c); err != nil {
		return err
	}
	sid := middleware.SessionID(c)

	var form supplierForm
	if err := c.Bind(&form); err != nil {
		h.notifier.Push(sid, notify.Error, "invalid form submission")
		return c.Redirect(http.StatusFound, supplierPath)
	}
	if err := c.Validate(&form); err != nil {
		h.notifier.Push(sid, notify.Error, err.Error())
		return c.Redirect(http.StatusFound, supplierPath)
	}

	in := ports.SupplierInput{
		Name:          form.Name,
		Email:         form.Email,
		ContactNumber: form.ContactNumber,
		Address:       form.Address,
	}
	if err := mutate(in); err != nil {
		pushUpstreamError(h.notifier, h.log, sid, err, "Could not save supplier.")
	} else {
		h.notifier.Push(sid, notify.Success, okMsg)
	}
	return c.Redirect(http.StatusFound, supplierPath)
}
