package application

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/mood-diary/internal/domain/entity"
	repo "github.com/oksasatya/mood-diary/internal/domain/repository"
	"github.com/oksasatya/mood-diary/internal/infrastructure/sqlite"
	"github.com/oksasatya/mood-diary/pkg/helpers"
)

type fixture struct {
	auth   *AuthService
	mood   *MoodService
	users  repo.UserRepository
	tokens *helpers.TokenManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "svc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(db, nil))

	hasher, err := helpers.NewPasswordHasher("sha256", 1000, 16, "$")
	require.NoError(t, err)
	tokens, err := helpers.NewTokenManager("test-secret", "HS256", time.Minute, time.Hour)
	require.NoError(t, err)
	logger, _ := logtest.NewNullLogger()

	users := sqlite.NewUserRepository(db)
	return &fixture{
		auth:   NewAuthService(users, hasher, tokens, logger),
		mood:   NewMoodService(sqlite.NewMoodRepository(db), logger),
		users:  users,
		tokens: tokens,
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := entity.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestAuthService_Register(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.auth.Register(ctx, "alice", "Passw0rd!", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, "Alice", p.Name)
	assert.NotEmpty(t, p.ID)

	stored, err := f.users.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd!", stored.HashedPassword)
	assert.True(t, f.auth.Hasher.Verify("Passw0rd!", stored.HashedPassword))
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.auth.Register(ctx, "alice", "Passw0rd!", "Alice")
	require.NoError(t, err)

	_, err = f.auth.Register(ctx, "alice", "Other123!", "Mallory")
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)

	p, err := f.auth.GetProfile(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.Name)
	_, err = f.auth.Login(ctx, "alice", "Passw0rd!")
	assert.NoError(t, err)
}

func TestAuthService_Login(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, err := f.auth.Register(ctx, "alice", "Passw0rd!", "Alice")
	require.NoError(t, err)

	pair, err := f.auth.Login(ctx, "alice", "Passw0rd!")
	require.NoError(t, err)

	uid, err := f.auth.Authenticate(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, p.ID, uid)
	assert.True(t, f.tokens.IsTokenValid(pair.RefreshToken, helpers.RefreshToken))
	assert.True(t, pair.RefreshTokenExpiry.After(pair.AccessTokenExpiry))

	_, err = f.auth.Login(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrIncorrectPasswordOrUserDoesNotExists)
	_, err = f.auth.Login(ctx, "nobody", "Passw0rd!")
	assert.ErrorIs(t, err, ErrIncorrectPasswordOrUserDoesNotExists)
}

func TestAuthService_Refresh(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, err := f.auth.Register(ctx, "alice", "Passw0rd!", "Alice")
	require.NoError(t, err)
	pair, err := f.auth.Login(ctx, "alice", "Passw0rd!")
	require.NoError(t, err)

	access, exp, err := f.auth.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))
	uid, err := f.auth.Authenticate(access)
	require.NoError(t, err)
	assert.Equal(t, p.ID, uid)

	_, _, err = f.auth.Refresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredRefreshToken)
	_, _, err = f.auth.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredRefreshToken)
}

func TestAuthService_AuthenticateRejectsRefreshToken(t *testing.T) {
	f := newFixture(t)
	tok, _, err := f.tokens.CreateToken(helpers.RefreshToken, uuid.NewString())
	require.NoError(t, err)

	_, err = f.auth.Authenticate(tok)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredAccessToken)
}

func TestAuthService_ChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, err := f.auth.Register(ctx, "alice", "Passw0rd!", "Alice")
	require.NoError(t, err)

	err = f.auth.ChangePassword(ctx, p.ID, "not-the-old", "NewPassw0rd!")
	assert.ErrorIs(t, err, ErrIncorrectOldPassword)

	require.NoError(t, f.auth.ChangePassword(ctx, p.ID, "Passw0rd!", "NewPassw0rd!"))
	_, err = f.auth.Login(ctx, "alice", "Passw0rd!")
	assert.ErrorIs(t, err, ErrIncorrectPasswordOrUserDoesNotExists)
	_, err = f.auth.Login(ctx, "alice", "NewPassw0rd!")
	assert.NoError(t, err)

	after, err := f.auth.GetProfile(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, after.PasswordUpdatedAt.Before(p.PasswordUpdatedAt))

	err = f.auth.ChangePassword(ctx, uuid.NewString(), "Passw0rd!", "NewPassw0rd!")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, err := f.auth.Register(ctx, "alice", "Passw0rd!", "Alice")
	require.NoError(t, err)

	updated, err := f.auth.UpdateProfile(ctx, p.ID, "Alice L.")
	require.NoError(t, err)
	assert.Equal(t, "Alice L.", updated.Name)
	assert.Equal(t, "alice", updated.Username)

	_, err = f.auth.UpdateProfile(ctx, uuid.NewString(), "Ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = f.auth.GetProfile(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func registerUser(t *testing.T, f *fixture) string {
	t.Helper()
	p, err := f.auth.Register(context.Background(), "alice", "Passw0rd!", "Alice")
	require.NoError(t, err)
	return p.ID
}

func TestMoodService_CreateGetDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uid := registerUser(t, f)
	d := mustDate(t, "2024-01-01")

	created, err := f.mood.Create(ctx, uid, CreateMoodInput{Date: d, Value: 5, Note: "ok"})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", created.Date)
	assert.Equal(t, uid, created.UserID)

	_, err = f.mood.Create(ctx, uid, CreateMoodInput{Date: d, Value: 6})
	assert.ErrorIs(t, err, ErrMoodStampAlreadyExists)

	got, err := f.mood.Get(ctx, uid, d)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, 5, got.Value)

	require.NoError(t, f.mood.Delete(ctx, uid, d))
	_, err = f.mood.Get(ctx, uid, d)
	assert.ErrorIs(t, err, ErrMoodStampNotExist)
	assert.ErrorIs(t, f.mood.Delete(ctx, uid, d), ErrMoodStampNotExist)
}

func TestMoodService_RejectsOutOfRangeValue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uid := registerUser(t, f)
	d := mustDate(t, "2024-01-01")

	for _, v := range []int{0, 11, -3} {
		_, err := f.mood.Create(ctx, uid, CreateMoodInput{Date: d, Value: v})
		assert.ErrorIs(t, err, ErrIncorrectMoodValue)
	}

	_, err := f.mood.Create(ctx, uid, CreateMoodInput{Date: d, Value: 10})
	require.NoError(t, err)
	bad := 0
	_, err = f.mood.Update(ctx, uid, d, repo.MoodPatch{Value: &bad})
	assert.ErrorIs(t, err, ErrIncorrectMoodValue)
}

func TestMoodService_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uid := registerUser(t, f)
	d := mustDate(t, "2024-01-01")
	_, err := f.mood.Create(ctx, uid, CreateMoodInput{Date: d, Value: 5, Note: "ok"})
	require.NoError(t, err)

	note := "better"
	updated, err := f.mood.Update(ctx, uid, d, repo.MoodPatch{Note: &note})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Value)
	assert.Equal(t, "better", updated.Note)

	v := 7
	_, err = f.mood.Update(ctx, uid, mustDate(t, "2024-02-02"), repo.MoodPatch{Value: &v})
	assert.ErrorIs(t, err, ErrMoodStampNotExist)
}

func TestMoodService_ListEmptyIsNotAnError(t *testing.T) {
	f := newFixture(t)
	uid := registerUser(t, f)

	got, err := f.mood.List(context.Background(), uid, repo.MoodFilter{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMoodService_ListFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uid := registerUser(t, f)
	for i, v := range []int{3, 8, 3} {
		d := mustDate(t, "2024-03-01").AddDate(0, 0, i)
		_, err := f.mood.Create(ctx, uid, CreateMoodInput{Date: d, Value: v})
		require.NoError(t, err)
	}

	three := 3
	start := mustDate(t, "2024-03-02")
	got, err := f.mood.List(ctx, uid, repo.MoodFilter{StartDate: &start, Value: &three})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-03-03", got[0].Date)
}

type failingMoods struct{ repo.MoodRepository }

var errBoom = errors.New("boom")

func (failingMoods) Get(context.Context, string, time.Time) (*entity.MoodEntry, error) {
	return nil, errBoom
}

func TestMoodService_PassesThroughUntypedErrors(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	svc := NewMoodService(failingMoods{}, logger)

	_, err := svc.Get(context.Background(), "u", time.Now())
	assert.ErrorIs(t, err, errBoom)
	var appErr *Error
	assert.False(t, errors.As(err, &appErr))
}
