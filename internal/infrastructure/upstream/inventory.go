package upstream

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/inventrack/dashboard-gateway/internal/core/domain"
	"github.com/inventrack/dashboard-gateway/internal/core/ports"
)

// Cache keys. One per list endpoint; every page reading a list subscribes
// to the same key, and every write invalidates the keys it affects.
const (
	keyCategories   = "getCategories"
	keyProducts     = "getProducts"
	keySuppliers    = "getSuppliers"
	keyTransactions = "getTransactions"
	keyAuditLogs    = "getAuditLogs"
)

// Inventory API endpoints.
const (
	epLogin = "/api/auth/login"

	epGetCategories  = "/api/category/getCategories"
	epCreateCategory = "/api/category/createCategory"
	epUpdateCategory = "/api/category/updateCategory/"
	epDeleteCategory = "/api/category/deleteCategory/"

	epGetProducts   = "/api/product/getProducts"
	epCreateProduct = "/api/product/createProduct"
	epUpdateProduct = "/api/product/updateProduct/"
	epDeleteProduct = "/api/product/deleteProduct/"

	epGetSuppliers   = "/api/supplier/getSuppliers"
	epCreateSupplier = "/api/supplier/createSupplier"
	epUpdateSupplier = "/api/supplier/updateSupplier/"
	epDeleteSupplier = "/api/supplier/deleteSupplier/"

	epGetTransactions   = "/api/transaction/getTransactions"
	epCreateTransaction = "/api/transaction/createTransaction"
	epUpdateTransaction = "/api/transaction/updateTransaction/"
	epDeleteTransaction = "/api/transaction/deleteTransaction/"

	epGetAuditLogs = "/api/auditlog/getAuditLogs"
)

// Inventory is the typed facade over Client and Cache implementing
// ports.Inventory. Reads share the cache; writes go straight through and,
// on success, invalidate the list keys the write affects, including the
// audit log, which grows on every write, and the product list for category
// and supplier writes, whose names arrive denormalized on product rows.
type Inventory struct {
	client *Client
	cache  *Cache
	log    zerolog.Logger
}

var _ ports.Inventory = (*Inventory)(nil)

func NewInventory(client *Client, log zerolog.Logger) *Inventory {
	return &Inventory{
		client: client,
		cache:  NewCache(client, log),
		log:    log,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against the API. Not cached and invalidates nothing:
// the session the caller builds from the result is the only side effect.
func (i *Inventory) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	env, err := i.client.Do(ctx, http.MethodPost, epLogin, epLogin, loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	res, ok := DecodeObject[ports.LoginResult](env)
	if !ok || res.Token == "" || res.User == nil {
		return nil, &Error{Endpoint: epLogin, Message: "malformed login response", Err: ErrRejected}
	}
	return &res, nil
}

func (i *Inventory) Categories(ctx context.Context) ([]domain.Category, error) {
	env, err := i.cache.Fetch(ctx, keyCategories, epGetCategories)
	if err != nil {
		return nil, err
	}
	return DecodeList[domain.Category](env), nil
}

func (i *Inventory) CreateCategory(ctx context.Context, in ports.CategoryInput) error {
	return i.mutate(ctx, http.MethodPost, epCreateCategory, epCreateCategory, in,
		keyCategories, keyProducts, keyAuditLogs)
}

func (i *Inventory) UpdateCategory(ctx context.Context, id string, in ports.CategoryInput) error {
	return i.mutate(ctx, http.MethodPut, epUpdateCategory+id, epUpdateCategory, in,
		keyCategories, keyProducts, keyAuditLogs)
}

func (i *Inventory) DeleteCategory(ctx context.Context, id string) error {
	return i.mutate(ctx, http.MethodDelete, epDeleteCategory+id, epDeleteCategory, nil,
		keyCategories, keyProducts, keyAuditLogs)
}

func (i *Inventory) Products(ctx context.Context) ([]domain.Product, error) {
	env, err := i.cache.Fetch(ctx, keyProducts, epGetProducts)
	if err != nil {
		return nil, err
	}
	return DecodeList[domain.Product](env), nil
}

func (i *Inventory) CreateProduct(ctx context.Context, in ports.ProductInput) error {
	return i.mutate(ctx, http.MethodPost, epCreateProduct, epCreateProduct, in,
		keyProducts, keyAuditLogs)
}

func (i *Inventory) UpdateProduct(ctx context.Context, id string, in ports.ProductInput) error {
	return i.mutate(ctx, http.MethodPut, epUpdateProduct+id, epUpdateProduct, in,
		keyProducts, keyAuditLogs)
}

func (i *Inventory) DeleteProduct(ctx context.Context, id string) error {
	return i.mutate(ctx, http.MethodDelete, epDeleteProduct+id, epDeleteProduct, nil,
		keyProducts, keyTransactions, keyAuditLogs)
}

func (i *Inventory) Suppliers(ctx context.Context) ([]domain.Supplier, error) {
	env, err := i.cache.Fetch(ctx, keySuppliers, epGetSuppliers)
	if err != nil {
		return nil, err
	}
	return DecodeList[domain.Supplier](env), nil
}

func (i *Inventory) CreateSupplier(ctx context.Context, in ports.SupplierInput) error {
	return i.mutate(ctx, http.MethodPost, epCreateSupplier, epCreateSupplier, in,
		keySuppliers, keyProducts, keyAuditLogs)
}

func (i *Inventory) UpdateSupplier(ctx context.Context, id string, in ports.SupplierInput) error {
	return i.mutate(ctx, http.MethodPut, epUpdateSupplier+id, epUpdateSupplier, in,
		keySuppliers, keyProducts, keyAuditLogs)
}

func (i *Inventory) DeleteSupplier(ctx context.Context, id string) error {
	return i.mutate(ctx, http.MethodDelete, epDeleteSupplier+id, epDeleteSupplier, nil,
		keySuppliers, keyProducts, keyAuditLogs)
}

func (i *Inventory) Transactions(ctx context.Context) ([]domain.Transaction, error) {
	env, err := i.cache.Fetch(ctx, keyTransactions, epGetTransactions)
	if err != nil {
		return nil, err
	}
	return DecodeList[domain.Transaction](env), nil
}

// Transaction writes also invalidate products: stock movements change the
// quantity shown on the product list.
func (i *Inventory) CreateTransaction(ctx context.Context, in ports.TransactionInput) error {
	return i.mutate(ctx, http.MethodPost, epCreateTransaction, epCreateTransaction, in,
		keyTransactions, keyProducts, keyAuditLogs)
}

func (i *Inventory) UpdateTransaction(ctx context.Context, id string, in ports.TransactionInput) error {
	return i.mutate(ctx, http.MethodPut, epUpdateTransaction+id, epUpdateTransaction, in,
		keyTransactions, keyProducts, keyAuditLogs)
}

func (i *Inventory) DeleteTransaction(ctx context.Context, id string) error {
	return i.mutate(ctx, http.MethodDelete, epDeleteTransaction+id, epDeleteTransaction, nil,
		keyTransactions, keyProducts, keyAuditLogs)
}

func (i *Inventory) AuditLogs(ctx context.Context) ([]domain.AuditLog, error) {
	env, err := i.cache.Fetch(ctx, keyAuditLogs, epGetAuditLogs)
	if err != nil {
		return nil, err
	}
	return DecodeList[domain.AuditLog](env), nil
}

// mutate runs a write and, only on success, invalidates the declared read
// keys. A failed write leaves every cache entry untouched.
func (i *Inventory) mutate(ctx context.Context, method, endpoint, metricPath string, payload any, invalidates ...string) error {
	if _, err := i.client.Do(ctx, method, endpoint, metricPath, payload); err != nil {
		return err
	}
	for _, key := range invalidates {
		i.cache.Invalidate(key)
	}
	return nil
}
