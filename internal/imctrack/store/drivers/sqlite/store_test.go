package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bodytraq/imctrack/internal/imctrack/domain"
	"github.com/bodytraq/imctrack/internal/imctrack/store"
	"github.com/bodytraq/imctrack/pkg/idx"
)

func newMigratedStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func makeUser(email string) domain.User {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		FirstName:    "Test",
		LastName:     "User",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUsersCRUD(t *testing.T) {
	ctx := context.Background()
	st := newMigratedStore(t)

	user := makeUser("alice@example.com")
	require.NoError(t, st.Users().CreateUser(ctx, user))

	t.Run("get by id and email", func(t *testing.T) {
		got, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, user.Email, got.Email)
		require.Equal(t, user.PasswordHash, got.PasswordHash)

		got, err = st.Users().GetUserByEmail(ctx, user.Email)
		require.NoError(t, err)
		require.Equal(t, user.ID, got.ID)
	})

	t.Run("missing user yields ErrNotFound", func(t *testing.T) {
		_, err := st.Users().GetUserByID(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = st.Users().GetUserByEmail(ctx, "nope@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate email yields ErrAlreadyExists", func(t *testing.T) {
		dup := makeUser(user.Email)
		require.ErrorIs(t, st.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("update", func(t *testing.T) {
		user.FirstName = "Alicia"
		require.NoError(t, st.Users().UpdateUser(ctx, user))

		got, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, "Alicia", got.FirstName)
		require.False(t, got.UpdatedAt.Before(user.UpdatedAt))
	})

	t.Run("update to a taken email yields ErrAlreadyExists", func(t *testing.T) {
		other := makeUser("bob@example.com")
		require.NoError(t, st.Users().CreateUser(ctx, other))

		other.Email = user.Email
		require.ErrorIs(t, st.Users().UpdateUser(ctx, other), store.ErrAlreadyExists)
	})

	t.Run("update of a missing user yields ErrNotFound", func(t *testing.T) {
		ghost := makeUser("ghost@example.com")
		require.ErrorIs(t, st.Users().UpdateUser(ctx, ghost), store.ErrNotFound)
	})

	t.Run("list and count", func(t *testing.T) {
		users, err := st.Users().ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)

		count, err := st.Users().CountUsers(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(2), count)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, st.Users().DeleteUser(ctx, user.ID))
		_, err := st.Users().GetUserByID(ctx, user.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		require.ErrorIs(t, st.Users().DeleteUser(ctx, user.ID), store.ErrNotFound)
	})
}

func makeRecord(userID string, weight float64, at time.Time) domain.BmiRecord {
	bmi := weight / (1.75 * 1.75)
	return domain.BmiRecord{
		ID:         idx.New().String(),
		UserID:     userID,
		Height:     1.75,
		Weight:     weight,
		Bmi:        bmi,
		Category:   domain.CategoryNormal,
		ComputedAt: at,
	}
}

func TestBmiRecords(t *testing.T) {
	ctx := context.Background()
	st := newMigratedStore(t)

	user := makeUser("carla@example.com")
	require.NoError(t, st.Users().CreateUser(ctx, user))

	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 5; i++ {
		rec := makeRecord(user.ID, 70+float64(i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, st.BmiRecords().CreateRecord(ctx, rec))
		ids = append(ids, rec.ID)
	}

	t.Run("get by id", func(t *testing.T) {
		rec, err := st.BmiRecords().GetRecordByID(ctx, ids[0])
		require.NoError(t, err)
		require.Equal(t, user.ID, rec.UserID)
		require.Equal(t, 70.0, rec.Weight)

		_, err = st.BmiRecords().GetRecordByID(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("foreign key enforced", func(t *testing.T) {
		rec := makeRecord("no-such-user", 70, base)
		require.Error(t, st.BmiRecords().CreateRecord(ctx, rec))
	})

	t.Run("paged listing both directions", func(t *testing.T) {
		desc, err := st.BmiRecords().ListByUser(ctx, user.ID, store.SortDesc, 2, 0)
		require.NoError(t, err)
		require.Len(t, desc, 2)
		require.Equal(t, ids[4], desc[0].ID)
		require.Equal(t, ids[3], desc[1].ID)

		asc, err := st.BmiRecords().ListByUser(ctx, user.ID, store.SortAsc, 2, 2)
		require.NoError(t, err)
		require.Len(t, asc, 2)
		require.Equal(t, ids[2], asc[0].ID)
		require.Equal(t, ids[3], asc[1].ID)
	})

	t.Run("full ascending listing", func(t *testing.T) {
		all, err := st.BmiRecords().ListAllByUserAsc(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, all, 5)
		require.Equal(t, ids[0], all[0].ID)
		require.Equal(t, ids[4], all[4].ID)
	})

	t.Run("count scoped per user", func(t *testing.T) {
		count, err := st.BmiRecords().CountByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, int64(5), count)

		count, err = st.BmiRecords().CountByUser(ctx, "someone-else")
		require.NoError(t, err)
		require.Zero(t, count)
	})

	t.Run("deleting the user cascades", func(t *testing.T) {
		require.NoError(t, st.Users().DeleteUser(ctx, user.ID))

		count, err := st.BmiRecords().CountByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Zero(t, count)
	})
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	st := newMigratedStore(t)

	t.Run("commit on success", func(t *testing.T) {
		user := makeUser("tx-ok@example.com")
		err := st.WithTx(ctx, func(tx store.Tx) error {
			return tx.Users().CreateUser(ctx, user)
		})
		require.NoError(t, err)

		_, err = st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
	})

	t.Run("rollback on error", func(t *testing.T) {
		user := makeUser("tx-fail@example.com")
		boom := errors.New("boom")
		err := st.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Users().CreateUser(ctx, user); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = st.Users().GetUserByID(ctx, user.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestPing(t *testing.T) {
	st := newMigratedStore(t)
	require.NoError(t, st.Ping(context.Background()))
}
