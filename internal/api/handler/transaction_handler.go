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

const transactionPath = "/dashboard/transactions"

// TransactionHandler serves the stock movement screen.
type TransactionHandler struct {
	inventory ports.Inventory
	notifier  *notify.Notifier
	log       zerolog.Logger
}

func NewTransactionHandler(inventory ports.Inventory, notifier *notify.Notifier, log zerolog.Logger) *TransactionHandler {
	return &TransactionHandler{inventory: inventory, notifier: notifier, log: log}
}

type transactionForm struct {
	ProductID   string `form:"productId"   validate:"required"`
	Type        string `form:"type"        validate:"required,oneof=stock-in stock-out"`
	Quantity    int    `form:"quantity"    validate:"gt=0"`
	Description string `form:"description"`
}

type transactionPage struct {
	basePage
	Transactions []domain.Transaction
	Products     []domain.Product
}

func (h *TransactionHandler) List(c echo.Context) error {
	if _, err := requireSession(c); err != nil {
		return err
	}
	ctx := c.Request().Context()
	page := transactionPage{basePage: newBasePage(c, "Transactions", h.notifier)}

	txns, err := h.inventory.Transactions(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("list transactions failed")
		page.Err = "Could not load transactions."
	} else {
		page.Transactions = txns
	}

	if products, err := h.inventory.Products(ctx); err == nil {
		page.Products = products
	}
	return c.Render(http.StatusOK, "transactions.html", page)
}

func (h *TransactionHandler) Create(c echo.Context) error {
	return h.submit(c, "Transaction added successfully", func(in ports.TransactionInput) error {
		return h.inventory.CreateTransaction(c.Request().Context(), in)
	})
}

func (h *TransactionHandler) Update(c echo.Context) error {
	id := c.Param("id")
	return h.submit(c, "Transaction updated successfully", func(in ports.TransactionInput) error {
		return h.inventory.UpdateTransaction(c.Request().Context(), id, in)
	})
}

func (h *TransactionHandler) Delete(c echo.Context) error {
	if _, err := requireSession(c); err != nil {
		return err
	}
	sid := middleware.SessionID(c)
	if err := h.inventory.DeleteTransaction(c.Request().Context(), c.Param("id")); err != nil {
		pushUpstreamError(h.notifier, h.log, sid, err, "Could not delete transaction.")
	} else {
		h.notifier.Push(sid, notify.Success, "Transaction deleted successfully")
	}
	return c.Redirect(http.StatusFound, transactionPath)
}

func (h *TransactionHandler) submit(c echo.Context, okMsg string, mutate func(ports.TransactionInput) error) error {
	if _, err := requireSession(c); err != nil {
		return err
	}
	sid := middleware.SessionID(c)

	var form transactionForm
	if err := c.Bind(&form); err != nil {
		h.notifier.Push(sid, notify.Error, "invalid form submission")
		return c.Redirect(http.StatusFound, transactionPath)
	}
	if err := c.Validate(&form); err != nil {
		h.notifier.Push(sid, notify.Error, err.Error())
		return c.Redirect(http.StatusFound, transactionPath)
	}

	in := ports.TransactionInput{
		ProductID:   form.ProductID,
		Type:        form.Type,
		Quantity:    form.Quantity,
		Description: form.Description,
	}
	if err := mutate(in); err != nil {
		pushUpstreamError(h.notifier, h.log, sid, err, "Could not save transaction.")
	} else {
		h.notifier.Push(sid, notify.Success, okMsg)
	}
	return c.Redirect(http.StatusFound, transactionPath)
}
