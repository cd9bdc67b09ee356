package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/video-hub/internal/domain/user"
	"github.com/khoahotran/video-hub/pkg/apperror"
	"github.com/khoahotran/video-hub/pkg/auth"
	"github.com/khoahotran/video-hub/pkg/logger"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) Upsert(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)
	stored := &user.User{ID: uuid.New(), Email: "a@example.com", PasswordHash: hash}
	jwtSvc := auth.NewJWTService("secret", time.Hour)

	t.Run("valid credentials issue a token for the user", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("FindByEmail", mock.Anything, stored.Email).Return(stored, nil)
		uc := NewLoginUseCase(repo, jwtSvc, logger.NewNop())

		out, err := uc.Execute(context.Background(), LoginInput{Email: stored.Email, Password: "correct-horse"})
		require.NoError(t, err)

		claims, err := jwtSvc.ValidateToken(out.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, stored.ID, claims.UserID)
		repo.AssertExpectations(t)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("FindByEmail", mock.Anything, stored.Email).Return(stored, nil)
		uc := NewLoginUseCase(repo, jwtSvc, logger.NewNop())

		_, err := uc.Execute(context.Background(), LoginInput{Email: stored.Email, Password: "nope"})
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})

	t.Run("unknown email is unauthorized", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, apperror.NewNotFound("user", "ghost@example.com"))
		uc := NewLoginUseCase(repo, jwtSvc, logger.NewNop())

		_, err := uc.Execute(context.Background(), LoginInput{Email: "ghost@example.com", Password: "x"})
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
		assert.NotErrorIs(t, err, apperror.ErrNotFound)
	})
}
