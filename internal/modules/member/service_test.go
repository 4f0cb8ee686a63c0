package member

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timehair/internal/database"
	"timehair/internal/domain"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:member_test_%s?mode=memory&cache=shared", uuid.NewString())
	store, err := database.Open(dsn, "silent")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewService(store)
}

func TestService_CreateAndGet(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, MemberRequest{Name: " 김철수 ", Phone: "010-1111-2222"})
	require.NoError(t, err)
	assert.Equal(t, "김철수", m.Name)
	assert.Equal(t, 0, m.Stamps)

	got, err := svc.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.Phone, got.Phone)

	byPhone, err := svc.GetByPhone(ctx, "010-1111-2222")
	require.NoError(t, err)
	assert.Equal(t, m.ID, byPhone.ID)
}

func TestService_Create_DuplicatePhone(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, MemberRequest{Name: "A", Phone: "010-1111-2222"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, MemberRequest{Name: "B", Phone: "010-1111-2222"})
	assert.ErrorIs(t, err, ErrDuplicatePhone)
	assert.ErrorIs(t, err, domain.ErrValidation)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestService_DeletedPhoneCanBeReused(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, MemberRequest{Name: "A", Phone: "010-1111-2222"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, first.ID))

	second, err := svc.Create(ctx, MemberRequest{Name: "B", Phone: "010-1111-2222"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	_, err = svc.Get(ctx, first.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, first.ID), domain.ErrNotFound)
}

func TestService_Update(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, MemberRequest{Name: "A", Phone: "010-1111-2222"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, MemberRequest{Name: "B", Phone: "010-3333-4444"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, a.ID, MemberRequest{Name: "A2", Phone: "010-1111-2222"})
	require.NoError(t, err)
	assert.Equal(t, "A2", updated.Name)

	_, err = svc.Update(ctx, a.ID, MemberRequest{Name: "A2", Phone: "010-3333-4444"})
	assert.ErrorIs(t, err, ErrDuplicatePhone)

	_, err = svc.Update(ctx, "missing", MemberRequest{Name: "X", Phone: "010-0000-0000"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_ListSearchNormalizesInput(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, MemberRequest{Name: "간호사", Phone: "010-1111-2222"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, MemberRequest{Name: "Lee", Phone: "010-3333-4444"})
	require.NoError(t, err)

	// decomposed jamo for 간
	found, err := svc.List(ctx, "\u1100\u1161\u11ab")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "간호사", found[0].Name)
}

func TestService_Stamps(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()
	m, err := svc.Create(ctx, MemberRequest{Name: "A", Phone: "010-1111-2222"})
	require.NoError(t, err)

	m, err = svc.AddStamp(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Stamps)

	m, err = svc.ResetStamps(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Stamps)

	_, err = svc.AddStamp(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_Validation(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, MemberRequest{Name: "  ", Phone: "010"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.GetByPhone(ctx, " ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
