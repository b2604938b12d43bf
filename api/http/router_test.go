package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/shop/api/http/handlers"
	"github.com/artem13815/shop/pkg/auth"
	"github.com/artem13815/shop/pkg/category"
	"github.com/artem13815/shop/pkg/health"
	"github.com/artem13815/shop/pkg/order"
	"github.com/artem13815/shop/pkg/product"
	"github.com/artem13815/shop/pkg/security/jwt"
	"github.com/artem13815/shop/pkg/user"
)

type fakeUsers struct{ users map[uuid.UUID]user.User }

func (r *fakeUsers) Create(ctx context.Context, u user.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return user.ErrAlreadyExists
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUsers) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *fakeUsers) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *fakeUsers) List(ctx context.Context) ([]user.User, error) {
	var res []user.User
	for _, u := range r.users {
		res = append(res, u)
	}
	return res, nil
}

func (r *fakeUsers) UpdateRole(ctx context.Context, id uuid.UUID, role user.Role) error {
	u, ok := r.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.Role = role
	r.users[id] = u
	return nil
}

func (r *fakeUsers) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return user.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUsers) Exists(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return user.ErrNotFound
	}
	return nil
}

type fakeCategories struct {
	cats     map[uuid.UUID]category.Category
	products *fakeProducts
}

func (r *fakeCategories) Create(ctx context.Context, c category.Category) error {
	r.cats[c.ID] = c
	return nil
}

func (r *fakeCategories) GetByID(ctx context.Context, id uuid.UUID) (category.Category, error) {
	c, ok := r.cats[id]
	if !ok {
		return category.Category{}, category.ErrNotFound
	}
	return c, nil
}

func (r *fakeCategories) ListWithProducts(ctx context.Context) ([]category.Category, error) {
	var res []category.Category
	for _, c := range r.cats {
		c.Products = nil
		for _, p := range r.products.products {
			if p.CategoryID == c.ID {
				c.Products = append(c.Products, p)
			}
		}
		res = append(res, c)
	}
	return res, nil
}

func (r *fakeCategories) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	c, ok := r.cats[id]
	if !ok {
		return category.ErrNotFound
	}
	c.Name = name
	r.cats[id] = c
	return nil
}

func (r *fakeCategories) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.cats[id]; !ok {
		return category.ErrNotFound
	}
	for _, p := range r.products.products {
		if p.CategoryID == id {
			return category.ErrInUse
		}
	}
	delete(r.cats, id)
	return nil
}

func (r *fakeCategories) Exists(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.cats[id]; !ok {
		return category.ErrNotFound
	}
	return nil
}

type fakeProducts struct{ products map[uuid.UUID]product.Product }

func (r *fakeProducts) Create(ctx context.Context, p product.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProducts) GetByID(ctx context.Context, id uuid.UUID) (product.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return product.Product{}, product.ErrNotFound
	}
	return p, nil
}

func (r *fakeProducts) List(ctx context.Context) ([]product.Product, error) {
	var res []product.Product
	for _, p := range r.products {
		res = append(res, p)
	}
	return res, nil
}

func (r *fakeProducts) Update(ctx context.Context, p product.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return product.ErrNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProducts) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return product.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProducts) Exists(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return product.ErrNotFound
	}
	return nil
}

type fakeOrders struct{ orders map[uuid.UUID]order.Order }

func (r *fakeOrders) Create(ctx context.Context, o order.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrders) GetByID(ctx context.Context, id uuid.UUID) (order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	return o, nil
}

func (r *fakeOrders) List(ctx context.Context) ([]order.Order, error) {
	var res []order.Order
	for _, o := range r.orders {
		res = append(res, o)
	}
	return res, nil
}

func (r *fakeOrders) UpdateStatus(ctx context.Context, id uuid.UUID, status order.Status) error {
	o, ok := r.orders[id]
	if !ok {
		return order.ErrNotFound
	}
	o.Status = status
	r.orders[id] = o
	return nil
}

func (r *fakeOrders) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.orders[id]; !ok {
		return order.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

const (
	testSecret = "test-secret"
	testIssuer = "shop-service-test"
)

func newTestApp() *fiber.App {
	users := &fakeUsers{users: map[uuid.UUID]user.User{}}
	products := &fakeProducts{products: map[uuid.UUID]product.Product{}}
	categories := &fakeCategories{cats: map[uuid.UUID]category.Category{}, products: products}
	orders := &fakeOrders{orders: map[uuid.UUID]order.Order{}}

	jwtGen := jwt.NewGenerator(testSecret, testIssuer, time.Minute)
	h := Handlers{
		Auth:     handlers.NewAuthHandler(auth.NewAuthService(users, jwtGen)),
		User:     handlers.NewUserHandler(user.NewDirectoryService(users)),
		Category: handlers.NewCategoryHandler(category.NewService(categories, nil)),
		Product:  handlers.NewProductHandler(product.NewService(products, categories, nil)),
		Order:    handlers.NewOrderHandler(order.NewService(orders, users, products)),
		Health:   handlers.NewHealthHandler(health.NewService()),
	}

	app := fiber.New()
	Register(app, h, jwt.NewAuthMiddleware(testSecret, testIssuer))
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 && data[0] == '{' {
		require.NoError(t, json.Unmarshal(data, &decoded))
	}
	return resp.StatusCode, decoded
}

func register(t *testing.T, app *fiber.App, email, password string, role user.Role) (id, token string) {
	t.Helper()
	status, body := do(t, app, nethttp.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"email":    email,
		"password": password,
		"userName": email,
		"role":     string(role),
	})
	require.Equal(t, nethttp.StatusCreated, status)
	return body["id"].(string), body["token"].(string)
}

func TestOrderLifecycleEndToEnd(t *testing.T) {
	app := newTestApp()

	_, adminToken := register(t, app, "admin@example.com", "pw", user.RoleAdmin)
	aliceID, aliceToken := register(t, app, "alice@example.com", "pw", user.RoleCustomer)

	// Category "Books"
	status, body := do(t, app, nethttp.MethodPost, "/api/v1/category", adminToken, fiber.Map{"name": "Books"})
	require.Equal(t, nethttp.StatusCreated, status)
	categoryID := body["id"].(string)

	// Product "Novel" under it
	status, body = do(t, app, nethttp.MethodPost, "/api/v1/product", adminToken, fiber.Map{
		"name": "Novel", "price": 10, "stock": 5, "categoryId": categoryID,
	})
	require.Equal(t, nethttp.StatusCreated, status)
	productID := body["id"].(string)

	// Alice orders the novel; order starts PENDING
	status, body = do(t, app, nethttp.MethodPost, "/api/v1/order", aliceToken, fiber.Map{
		"userId": aliceID,
		"items":  []fiber.Map{{"productId": productID, "quantity": 1}},
	})
	require.Equal(t, nethttp.StatusCreated, status)
	orderID := body["id"].(string)
	assert.Equal(t, "PENDING", body["status"])

	// Admin ships it
	status, body = do(t, app, nethttp.MethodPatch, fmt.Sprintf("/api/v1/order/%s", orderID), adminToken, fiber.Map{"status": "SHIPPED"})
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "SHIPPED", body["status"])

	// Read reflects exactly the written status
	status, body = do(t, app, nethttp.MethodGet, fmt.Sprintf("/api/v1/order/%s", orderID), aliceToken, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "SHIPPED", body["status"])
}

func TestRegisterConflictAndLogin(t *testing.T) {
	app := newTestApp()
	register(t, app, "alice@example.com", "pw", user.RoleCustomer)

	status, _ := do(t, app, nethttp.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"email": "alice@example.com", "password": "other", "userName": "alice2",
	})
	assert.Equal(t, nethttp.StatusConflict, status)

	status, body := do(t, app, nethttp.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email": "alice@example.com", "password": "pw",
	})
	require.Equal(t, nethttp.StatusOK, status)
	assert.NotEmpty(t, body["token"])

	status, _ = do(t, app, nethttp.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email": "alice@example.com", "password": "wrong",
	})
	assert.Equal(t, nethttp.StatusUnauthorized, status)
}

func TestAuthAndRoleGuards(t *testing.T) {
	app := newTestApp()
	_, customerToken := register(t, app, "alice@example.com", "pw", user.RoleCustomer)

	// no token
	status, _ := do(t, app, nethttp.MethodGet, "/api/v1/product", "", nil)
	assert.Equal(t, nethttp.StatusUnauthorized, status)

	// customer cannot write the catalog
	status, _ = do(t, app, nethttp.MethodPost, "/api/v1/category", customerToken, fiber.Map{"name": "Books"})
	assert.Equal(t, nethttp.StatusForbidden, status)

	// customer cannot manage order statuses
	status, _ = do(t, app, nethttp.MethodPatch, fmt.Sprintf("/api/v1/order/%s", uuid.New()), customerToken, fiber.Map{"status": "SHIPPED"})
	assert.Equal(t, nethttp.StatusForbidden, status)

	// customer cannot list users
	status, _ = do(t, app, nethttp.MethodGet, "/api/v1/user", customerToken, nil)
	assert.Equal(t, nethttp.StatusForbidden, status)
}

func TestOwnRecordAccess(t *testing.T) {
	app := newTestApp()
	aliceID, aliceToken := register(t, app, "alice@example.com", "pw", user.RoleCustomer)
	bobID, _ := register(t, app, "bob@example.com", "pw", user.RoleCustomer)

	status, body := do(t, app, nethttp.MethodGet, "/api/v1/user/"+aliceID, aliceToken, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "alice@example.com", body["email"])
	_, hasHash := body["passwordHash"]
	assert.False(t, hasHash)

	status, _ = do(t, app, nethttp.MethodGet, "/api/v1/user/"+bobID, aliceToken, nil)
	assert.Equal(t, nethttp.StatusForbidden, status)
}

func TestNotFoundAndBadUUID(t *testing.T) {
	app := newTestApp()
	_, adminToken := register(t, app, "admin@example.com", "pw", user.RoleAdmin)

	status, _ := do(t, app, nethttp.MethodGet, "/api/v1/order/not-a-uuid", adminToken, nil)
	assert.Equal(t, nethttp.StatusBadRequest, status)

	status, _ = do(t, app, nethttp.MethodGet, fmt.Sprintf("/api/v1/order/%s", uuid.New()), adminToken, nil)
	assert.Equal(t, nethttp.StatusNotFound, status)

	status, _ = do(t, app, nethttp.MethodGet, fmt.Sprintf("/api/v1/product/%s", uuid.New()), adminToken, nil)
	assert.Equal(t, nethttp.StatusNotFound, status)

	status, _ = do(t, app, nethttp.MethodGet, fmt.Sprintf("/api/v1/user/%s", uuid.New()), adminToken, nil)
	assert.Equal(t, nethttp.StatusNotFound, status)
}

func TestCategoryDeleteBlockedByProducts(t *testing.T) {
	app := newTestApp()
	_, adminToken := register(t, app, "admin@example.com", "pw", user.RoleAdmin)

	status, body := do(t, app, nethttp.MethodPost, "/api/v1/category", adminToken, fiber.Map{"name": "Books"})
	require.Equal(t, nethttp.StatusCreated, status)
	categoryID := body["id"].(string)

	status, body = do(t, app, nethttp.MethodPost, "/api/v1/product", adminToken, fiber.Map{
		"name": "Novel", "price": 10, "stock": 5, "categoryId": categoryID,
	})
	require.Equal(t, nethttp.StatusCreated, status)
	productID := body["id"].(string)

	status, _ = do(t, app, nethttp.MethodDelete, "/api/v1/category/"+categoryID, adminToken, nil)
	assert.Equal(t, nethttp.StatusConflict, status)

	status, _ = do(t, app, nethttp.MethodDelete, "/api/v1/product/"+productID, adminToken, nil)
	require.Equal(t, nethttp.StatusNoContent, status)

	status, _ = do(t, app, nethttp.MethodDelete, "/api/v1/category/"+categoryID, adminToken, nil)
	assert.Equal(t, nethttp.StatusNoContent, status)
}

func TestCreateOrderUnknownUser(t *testing.T) {
	app := newTestApp()
	_, adminToken := register(t, app, "admin@example.com", "pw", user.RoleAdmin)

	status, body := do(t, app, nethttp.MethodPost, "/api/v1/category", adminToken, fiber.Map{"name": "Books"})
	require.Equal(t, nethttp.StatusCreated, status)

	status, body = do(t, app, nethttp.MethodPost, "/api/v1/product", adminToken, fiber.Map{
		"name": "Novel", "price": 10, "stock": 5, "categoryId": body["id"].(string),
	})
	require.Equal(t, nethttp.StatusCreated, status)

	status, _ = do(t, app, nethttp.MethodPost, "/api/v1/order", adminToken, fiber.Map{
		"userId": uuid.New().String(),
		"items":  []fiber.Map{{"productId": body["id"].(string), "quantity": 1}},
	})
	assert.Equal(t, nethttp.StatusNotFound, status)

	status, _ = do(t, app, nethttp.MethodGet, "/api/v1/order", adminToken, nil)
	assert.Equal(t, nethttp.StatusOK, status)
}

func TestUpdateOrderStatusRejectsUnknownValue(t *testing.T) {
	app := newTestApp()
	_, adminToken := register(t, app, "admin@example.com", "pw", user.RoleAdmin)
	aliceID, _ := register(t, app, "alice@example.com", "pw", user.RoleCustomer)

	status, body := do(t, app, nethttp.MethodPost, "/api/v1/category", adminToken, fiber.Map{"name": "Books"})
	require.Equal(t, nethttp.StatusCreated, status)
	status, body = do(t, app, nethttp.MethodPost, "/api/v1/product", adminToken, fiber.Map{
		"name": "Novel", "price": 10, "stock": 5, "categoryId": body["id"].(string),
	})
	require.Equal(t, nethttp.StatusCreated, status)
	status, body = do(t, app, nethttp.MethodPost, "/api/v1/order", adminToken, fiber.Map{
		"userId": aliceID,
		"items":  []fiber.Map{{"productId": body["id"].(string), "quantity": 1}},
	})
	require.Equal(t, nethttp.StatusCreated, status)

	status, _ = do(t, app, nethttp.MethodPatch, "/api/v1/order/"+body["id"].(string), adminToken, fiber.Map{"status": "TELEPORTED"})
	assert.Equal(t, nethttp.StatusBadRequest, status)
}
