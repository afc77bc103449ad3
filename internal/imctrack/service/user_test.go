package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bodytraq/imctrack/internal/imctrack/store"
	"github.com/bodytraq/imctrack/pkg/cryptox"
)

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	auth := &AuthService{Store: st, Tokens: &TokenService{Codec: newTestCodec(t)}}
	svc := &UserService{Store: st}

	user, err := auth.Register(ctx, "carol@example.com", "initial password", "Carol", "Chen")
	require.NoError(t, err)

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		first := "Caroline"
		updated, err := svc.UpdateUser(ctx, user.ID, UpdateUserParams{FirstName: &first})
		require.NoError(t, err)
		require.Equal(t, "Caroline", updated.FirstName)
		require.Equal(t, "Chen", updated.LastName)
		require.Equal(t, "carol@example.com", updated.Email)
		require.Equal(t, user.PasswordHash, updated.PasswordHash)
	})

	t.Run("supplied password is re-hashed", func(t *testing.T) {
		password := "brand new password"
		updated, err := svc.UpdateUser(ctx, user.ID, UpdateUserParams{Password: &password})
		require.NoError(t, err)
		require.NotEqual(t, user.PasswordHash, updated.PasswordHash)
		require.NoError(t, cryptox.VerifyPassword(password, updated.PasswordHash))
	})

	t.Run("email collision is rejected", func(t *testing.T) {
		_, err := auth.Register(ctx, "dave@example.com", "daves password", "Dave", "Diaz")
		require.NoError(t, err)

		email := "dave@example.com"
		_, err = svc.UpdateUser(ctx, user.ID, UpdateUserParams{Email: &email})
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("unknown user", func(t *testing.T) {
		first := "Nobody"
		_, err := svc.UpdateUser(ctx, "missing-id", UpdateUserParams{FirstName: &first})
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestDeleteUserCascadesHistory(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := seedUser(t, st)
	seedHistory(t, st, user.ID, 3)

	svc := &UserService{Store: st}

	require.NoError(t, svc.DeleteUser(ctx, user.ID))

	_, err := st.Users().GetUserByID(ctx, user.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	count, err := st.BmiRecords().CountByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	require.ErrorIs(t, svc.DeleteUser(ctx, user.ID), store.ErrNotFound)
}
