package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accumanage/portal/internal/auth"
	"github.com/accumanage/portal/internal/domain"
	"github.com/accumanage/portal/internal/events"
)

func TestChangeRole(t *testing.T) {
	repo := newFakeUserRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewUserService(repo, dispatcher)
	ctx := context.Background()

	target := &domain.User{Email: "u@example.com", Role: domain.RoleUser}
	require.NoError(t, repo.Create(ctx, target))
	actor := &auth.Claims{UserID: "root", Role: domain.RoleSuperadmin}

	updated, err := svc.ChangeRole(ctx, actor, target.ID, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
	assert.Equal(t, []events.EventType{events.EventUserRoleChanged}, dispatcher.types())

	_, err = svc.ChangeRole(ctx, actor, target.ID, domain.Role("owner"))
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	_, err = svc.ChangeRole(ctx, actor, uuid.NewString(), domain.RoleAdmin)
	assert.Equal(t, http.StatusNotFound, statusOf(err))

	_, err = svc.ChangeRole(ctx, actor, actor.UserID, domain.RoleUser)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
}

func TestDeleteUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, &recordingDispatcher{})
	ctx := context.Background()

	target := &domain.User{Email: "u@example.com", Role: domain.RoleUser}
	require.NoError(t, repo.Create(ctx, target))
	actor := &auth.Claims{UserID: "root", Role: domain.RoleSuperadmin}

	require.NoError(t, svc.Delete(ctx, actor, target.ID))
	assert.Equal(t, http.StatusNotFound, statusOf(svc.Delete(ctx, actor, target.ID)))
	assert.Equal(t, http.StatusBadRequest, statusOf(svc.Delete(ctx, actor, actor.UserID)))
}

func TestNonUUIDIDsAreNotFound(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, &recordingDispatcher{})
	ctx := context.Background()
	actor := &auth.Claims{UserID: uuid.NewString(), Role: domain.RoleSuperadmin}

	for _, id := range []string{"missing", "1 OR 1=1", ""} {
		_, err := svc.ChangeRole(ctx, actor, id, domain.RoleAdmin)
		assert.Equal(t, http.StatusNotFound, statusOf(err), id)
		assert.Equal(t, http.StatusNotFound, statusOf(svc.Delete(ctx, actor, id)), id)
	}
}

func TestListClampsPageSize(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &domain.User{Role: domain.RoleUser}))
	}

	users, err := svc.List(ctx, 0, -5)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestBillingScopesToCaller(t *testing.T) {
	aliceID, bobID := uuid.NewString(), uuid.NewString()
	repo := &fakeInvoiceRepo{invoices: []domain.Invoice{
		{ID: "i-1", UserID: aliceID},
		{ID: "i-2", UserID: bobID},
		{ID: "i-3", UserID: aliceID},
	}}
	svc := NewBillingService(repo)
	ctx := context.Background()

	alice := &auth.Claims{UserID: aliceID, Role: domain.RoleUser}
	mine, err := svc.ListInvoices(ctx, alice, "")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = svc.ListInvoices(ctx, alice, bobID)
	assert.Equal(t, http.StatusForbidden, statusOf(err))

	admin := &auth.Claims{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	_, err = svc.ListInvoices(ctx, admin, "bob")
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	bobs, err := svc.ListInvoices(ctx, admin, bobID)
	require.NoError(t, err)
	require.Len(t, bobs, 1)
	assert.Equal(t, "i-2", bobs[0].ID)
}
