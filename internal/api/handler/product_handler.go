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

const productPath = "/dashboard/product"

// ProductHandler serves the product screen. The list view also pulls
// categories and suppliers to populate the form's select boxes; those two
// fetches share the cache entries of their own screens.
type ProductHandler struct {
	inventory ports.Inventory
	notifier  *notify.Notifier
	log       zerolog.Logger
}

func NewProductHandler(inventory ports.Inventory, notifier *notify.Notifier, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{inventory: inventory, notifier: notifier, log: log}
}

type productForm struct {
	Name       string  `form:"name"       validate:"required"`
	SKU        string  `form:"sku"        validate:"required"`
	Quantity   int     `form:"quantity"   validate:"gte=0"`
	Price      float64 `form:"price"      validate:"gte=0"`
	CategoryID string  `form:"categoryId" validate:"required"`
	SupplierID string  `form:"supplierId" validate:"required"`
}

type productPage struct {
	basePage
	Products   []domain.Product
	Categories []domain.Category
	Suppliers  []domain.Supplier
}

func (h *ProductHandler) List(c echo.Context) error {
	if _, err := requireSession(c); err != nil {
		return err
	}
	ctx := c.Request().Context()
	page := productPage{basePage: newBasePage(c, "Products", h.notifier)}

	products, err := h.inventory.Products(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("list products failed")
		page.Err = "Could not load products."
	} else {
		page.Products = products
	}

	// Select-box data is best effort: a failed lookup leaves the box empty
	// but the product table still renders.
	if cats, err := h.inventory.Categories(ctx); err == nil {
		page.Categories = cats
	}
	if sups, err := h.inventory.Suppliers(ctx); err == nil {
		page.Suppliers = sups
	}
	return c.Render(http.StatusOK, "product.html", page)
}

func (h *ProductHandler) Create(c echo.Context) error {
	return h.submit(c, "Product added successfully", func(in ports.ProductInput) error {
		return h.inventory.CreateProduct(c.Request().Context(), in)
	})
}

func (h *ProductHandler) Update(c echo.Context) error {
	id := c.Param("id")
	return h.submit(c, "Product updated successfully", func(in ports.ProductInput) error {
		return h.inventory.UpdateProduct(c.Request().Context(), id, in)
	})
}

func (h *ProductHandler) Delete(c echo.Context) error {
	if _, err := requireSession(c); err != nil {
		return err
	}
	sid := middleware.SessionID(c)
	if err := h.inventory.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		pushUpstreamError(h.notifier, h.log, sid, err, "Could not delete product.")
	} else {
		h.notifier.Push(sid, notify.Success, "Product deleted successfully")
	}
	return c.Redirect(http.StatusFound, productPath)
}

func (h *ProductHandler) submit(c echo.Context, okMsg string, mutate func(ports.ProductInput) error) error {
	if _, err := requireSession(c); err != nil {
		return err
	}
	sid := middleware.SessionID(c)

	var form productForm
	if err := c.Bind(&form); err != nil {
		h.notifier.Push(sid, notify.Error, "invalid form submission")
		return c.Redirect(http.StatusFound, productPath)
	}
	if err := c.Validate(&form); err != nil {
		h.notifier.Push(sid, notify.Error, err.Error())
		return c.Redirect(http.StatusFound, productPath)
	}

	in := ports.ProductInput{
		Name:       form.Name,
		SKU:        form.SKU,
		Quantity:   form.Quantity,
		Price:      form.Price,
		CategoryID: form.CategoryID,
		SupplierID: form.SupplierID,
	}
	if err := mutate(in); err != nil {
		pushUpstreamError(h.notifier, h.log, sid, err, "Could not save product.")
	} else {
		h.notifier.Push(sid, notify.Success, okMsg)
	}
	return c.Redirect(http.StatusFound, productPath)
}
