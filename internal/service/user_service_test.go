package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-eshop-api/internal/core/auth"
	"go-eshop-api/internal/domain"
	"go-eshop-api/internal/repo"
	"go-eshop-api/pkg/utils"
)

func setupUsers(t *testing.T) (*UserService, *auth.JWTer) {
	t.Helper()
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: 24 * time.Hour}
	store := repo.NewMemoryStore()
	return NewUserService(store.Users(), jwter), jwter
}

func TestUserCreateHashesPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupUsers(t)

	u := &domain.User{Name: "alice", Email: "alice@example.com"}
	require.NoError(t, svc.Create(ctx, u, "s3cret"))
	require.NotEmpty(t, u.PasswordHash)
	require.NotEqual(t, "s3cret", u.PasswordHash)
	require.True(t, utils.CheckPassword("s3cret", u.PasswordHash))
}

func TestUserUpdateWithoutPasswordKeepsHash(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupUsers(t)

	u := &domain.User{Name: "alice", Email: "alice@example.com"}
	require.NoError(t, svc.Create(ctx, u, "s3cret"))
	originalHash := u.PasswordHash

	updated := &domain.User{ID: u.ID, Name: "alice 2", Email: "alice@example.com"}
	require.NoError(t, svc.Update(ctx, updated, ""))

	got, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, originalHash, got.PasswordHash, "hash carried forward byte-for-byte")
	require.Equal(t, "alice 2", got.Name)
}

func TestUserUpdateWithPasswordRehashes(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupUsers(t)

	u := &domain.User{Name: "alice", Email: "alice@example.com"}
	require.NoError(t, svc.Create(ctx, u, "old-pass"))

	updated := &domain.User{ID: u.ID, Name: "alice", Email: "alice@example.com"}
	require.NoError(t, svc.Update(ctx, updated, "new-pass"))

	got, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, utils.CheckPassword("new-pass", got.PasswordHash))
	require.False(t, utils.CheckPassword("old-pass", got.PasswordHash))
}

func TestLoginIssuesTokenWithClaims(t *testing.T) {
	ctx := context.Background()
	svc, jwter := setupUsers(t)

	u := &domain.User{Name: "admin", Email: "admin@example.com", IsAdmin: true}
	require.NoError(t, svc.Create(ctx, u, "s3cret"))

	got, token, err := svc.Login(ctx, "admin@example.com", "s3cret")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	claims, err := jwter.Parse(token)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.UserID)
	require.True(t, claims.IsAdmin)
}

// 邮箱唯一：重复注册与改成他人邮箱都被拒绝
func TestUserEmailMustBeUnique(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupUsers(t)

	u := &domain.User{Name: "alice", Email: "alice@example.com"}
	require.NoError(t, svc.Create(ctx, u, "s3cret"))

	dup := &domain.User{Name: "mallory", Email: "alice@example.com"}
	require.ErrorIs(t, svc.Create(ctx, dup, "other"), domain.ErrDuplicateEmail)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	bob := &domain.User{Name: "bob", Email: "bob@example.com"}
	require.NoError(t, svc.Create(ctx, bob, "s3cret"))

	bob.Email = "alice@example.com"
	require.ErrorIs(t, svc.Update(ctx, bob, ""), domain.ErrDuplicateEmail)

	// 不改邮箱的自更新不受唯一性检查影响
	got, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	got.Name = "alice 2"
	require.NoError(t, svc.Update(ctx, got, ""))
}

// 未知邮箱与密码错误必须是同一个错误，不向客户端区分
func TestLoginFailureIsIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupUsers(t)

	u := &domain.User{Name: "alice", Email: "alice@example.com"}
	require.NoError(t, svc.Create(ctx, u, "s3cret"))

	_, _, errWrongPass := svc.Login(ctx, "alice@example.com", "wrong")
	_, _, errUnknown := svc.Login(ctx, "nobody@example.com", "s3cret")

	require.ErrorIs(t, errWrongPass, domain.ErrInvalidCredentials)
	require.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	require.Equal(t, errWrongPass.Error(), errUnknown.Error())
}
