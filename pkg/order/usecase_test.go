package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/shop/pkg/product"
	"github.com/artem13815/shop/pkg/user"
)

type memRepo struct {
	orders map[uuid.UUID]Order
}

func newMemRepo() *memRepo { return &memRepo{orders: map[uuid.UUID]Order{}} }

func (r *memRepo) Create(ctx context.Context, o Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, id uuid.UUID) (Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return o, nil
}

func (r *memRepo) List(ctx context.Context) ([]Order, error) {
	var res []Order
	for _, o := range r.orders {
		res = append(res, o)
	}
	return res, nil
}

func (r *memRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	o, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	r.orders[id] = o
	return nil
}

func (r *memRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.orders[id]; !ok {
		return ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

type memUsers struct{ ids map[uuid.UUID]bool }

func (u memUsers) Exists(ctx context.Context, id uuid.UUID) error {
	if !u.ids[id] {
		return user.ErrNotFound
	}
	return nil
}

type memProducts struct{ ids map[uuid.UUID]bool }

func (p memProducts) Exists(ctx context.Context, id uuid.UUID) error {
	if !p.ids[id] {
		return product.ErrNotFound
	}
	return nil
}

func fixture() (*memRepo, UseCase, uuid.UUID, uuid.UUID) {
	repo := newMemRepo()
	userID := uuid.New()
	productID := uuid.New()
	svc := NewService(repo,
		memUsers{ids: map[uuid.UUID]bool{userID: true}},
		memProducts{ids: map[uuid.UUID]bool{productID: true}},
	)
	return repo, svc, userID, productID
}

func TestCreateStartsPending(t *testing.T) {
	repo, svc, userID, productID := fixture()

	o, err := svc.Create(context.Background(), userID, []Item{{ProductID: productID, Quantity: 2}})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, userID, o.UserID)
	assert.Equal(t, StatusPending, repo.orders[o.ID].Status)
}

func TestCreateUnknownUserPersistsNothing(t *testing.T) {
	repo, svc, _, productID := fixture()

	_, err := svc.Create(context.Background(), uuid.New(), []Item{{ProductID: productID, Quantity: 1}})
	assert.ErrorIs(t, err, user.ErrNotFound)
	assert.Empty(t, repo.orders)
}

func TestCreateUnknownProductPersistsNothing(t *testing.T) {
	repo, svc, userID, _ := fixture()

	_, err := svc.Create(context.Background(), userID, []Item{{ProductID: uuid.New(), Quantity: 1}})
	assert.ErrorIs(t, err, product.ErrNotFound)
	assert.Empty(t, repo.orders)
}

func TestCreateValidation(t *testing.T) {
	_, svc, userID, productID := fixture()

	var verr ErrValidation
	_, err := svc.Create(context.Background(), userID, nil)
	assert.ErrorAs(t, err, &verr)

	_, err = svc.Create(context.Background(), userID, []Item{{ProductID: productID, Quantity: 0}})
	assert.ErrorAs(t, err, &verr)

	_, err = svc.Create(context.Background(), userID, []Item{{ProductID: uuid.Nil, Quantity: 1}})
	assert.ErrorAs(t, err, &verr)
}

func TestUpdateStatusAcceptsEveryMember(t *testing.T) {
	_, svc, userID, productID := fixture()

	o, err := svc.Create(context.Background(), userID, []Item{{ProductID: productID, Quantity: 1}})
	require.NoError(t, err)

	// No transition guard: every member is reachable from anywhere.
	all := []Status{StatusProcessing, StatusPending, StatusDelivered, StatusShipped, StatusCancelled, StatusPending}
	for _, st := range all {
		updated, err := svc.UpdateStatus(context.Background(), o.ID, st)
		require.NoError(t, err)
		assert.Equal(t, st, updated.Status)

		got, err := svc.GetByID(context.Background(), o.ID)
		require.NoError(t, err)
		assert.Equal(t, st, got.Status)
	}
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	_, svc, userID, productID := fixture()

	o, err := svc.Create(context.Background(), userID, []Item{{ProductID: productID, Quantity: 1}})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), o.ID, "TELEPORTED")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	got, err := svc.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status)
}

func TestGetUpdateDeleteNotFound(t *testing.T) {
	_, svc, _, _ := fixture()

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateStatus(context.Background(), uuid.New(), StatusShipped)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo, svc, userID, productID := fixture()

	o, err := svc.Create(context.Background(), userID, []Item{{ProductID: productID, Quantity: 1}})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), o.ID))
	assert.Empty(t, repo.orders)
}
