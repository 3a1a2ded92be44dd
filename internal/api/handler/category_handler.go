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

const categoryPath = "/dashboard/category"

// CategoryHandler serves the category screen: list, create, update, delete.
type CategoryHandler struct {
	inventory ports.Inventory
	notifier  *notify.Notifier
	log       zerolog.Logger
}

func NewCategoryHandler(inventory ports.Inventory, notifier *notify.Notifier, log zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{inventory: inventory, notifier: notifier, log: log}
}

type categoryForm struct {
	Name        string `form:"name"        validate:"required"`
	Description string `form:"description" validate:"required"`
}

type categoryPage struct {
	basePage
	Categories []domain.Category
}

func (h *CategoryHandler) List(c echo.Context) error {
	if _, err := requireSession(c); err != nil {
		return err
	}
	page := categoryPage{basePage: newBasePage(c, "Categories", h.notifier)}

	cats, err := h.inventory.Categories(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list categories failed")
		page.Err = "Could not load categories."
	} else {
		page.Categories = cats
	}
	return c.Render(http.StatusOK, "category.html", page)
}

func (h *CategoryHandler) Create(c echo.Context) error {
	return h.submit(c, "Category added successfully", func(in ports.CategoryInput) error {
		return h.inventory.CreateCategory(c.Request().Context(), in)
	})
}

func (h *CategoryHandler) Update(c echo.Context) error {
	id := c.Param("id")
	return h.submit(c, "Category updated successfully", func(in ports.CategoryInput) error {
		return h.inventory.UpdateCategory(c.Request().Context(), id, in)
	})
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	if _, err := requireSession(c); err != nil {
		return err
	}
	sid := middleware.SessionID(c)
	if err := h.inventory.DeleteCategory(c.Request().Context(), c.Param("id")); err != nil {
		pushUpstreamError(h.notifier, h.log, sid, err, "Could not delete category.")
	} else {
		h.notifier.Push(sid, notify.Success, "Category deleted successfully")
	}
	return c.Redirect(http.StatusFound, categoryPath)
}

// submit binds and validates the shared create/update form, runs the
// mutation, queues the outcome toast, and redirects back to the list. The
// list the browser lands on re-reads through the cache, which the mutation
// invalidated on success.
func (h *CategoryHandler) submit(c echo.Context, okMsg string, mutate func(ports.CategoryInput) error) error {
	if _, err := requireSession(c); err != nil {
		return err
	}
	sid := middleware.SessionID(c)

	var form categoryForm
	if err := c.Bind(&form); err != nil {
		h.notifier.Push(sid, notify.Error, "invalid form submission")
		return c.Redirect(http.StatusFound, categoryPath)
	}
	if err := c.Validate(&form); err != nil {
		h.notifier.Push(sid, notify.Error, err.Error())
		return c.Redirect(http.StatusFound, categoryPath)
	}

	if err := mutate(ports.CategoryInput{Name: form.Name, Description: form.Description}); err != nil {
		pushUpstreamError(h.notifier, h.log, sid, err, "Could not save category.")
	} else {
		h.notifier.Push(sid, notify.Success, okMsg)
	}
	return c.Redirect(http.StatusFound, categoryPath)
}
