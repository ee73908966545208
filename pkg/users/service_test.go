package users

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) CreateUser(ctx context.Context, name, email, role, passwordHash, profilePicURL, uuid string) (User, error) {
	args := m.Called(ctx, name, email, role, passwordHash, profilePicURL, uuid)
	u, _ := args.Get(0).(User)
	return u, args.Error(1)
}

func (m *mockUserRepository) UpdateUserByUUID(ctx context.Context, uuid string, u User) (User, error) {
	args := m.Called(ctx, uuid, u)
	user, _ := args.Get(0).(User)
	return user, args.Error(1)
}

func (m *mockUserRepository) DeleteUserByUUID(ctx context.Context, uuid string) error {
	args := m.Called(ctx, uuid)
	return args.Error(0)
}

func (m *mockUserRepository) GetUserByUUID(ctx context.Context, uuid string) (User, error) {
	args := m.Called(ctx, uuid)
	u, _ := args.Get(0).(User)
	return u, args.Error(1)
}

func (m *mockUserRepository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(User)
	return u, args.Error(1)
}

func (m *mockUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]User, int64, error) {
	args := m.Called(ctx, limit, offset)
	list, _ := args.Get(0).([]User)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepository) GetUserAuthByEmail(ctx context.Context, email string) (string, string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.String(1), args.Error(2)
}

func TestUserService_CreateUser_HashesPassword(t *testing.T) {
	repo := new(mockUserRepository)
	service := NewUserService(repo)

	repo.On("CreateUser", mock.Anything, "Alice", "alice@example.com", RoleFounder,
		mock.MatchedBy(func(hash string) bool {
			return bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret")) == nil
		}), "", "uuid-1").
		Return(User{ID: 1, UUID: "uuid-1", Name: "Alice"}, nil)

	u, err := service.CreateUser(context.Background(), "Alice", "alice@example.com", RoleFounder, "secret", "", "uuid-1")

	require.NoError(t, err)
	require.Equal(t, "uuid-1", u.UUID)
	repo.AssertExpectations(t)
}

func TestUserService_CreateUser_InvalidRole(t *testing.T) {
	repo := new(mockUserRepository)
	service := NewUserService(repo)

	_, err := service.CreateUser(context.Background(), "Alice", "alice@example.com", "admin", "secret", "", "uuid-1")

	require.EqualError(t, err, "invalid role")
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	repo := new(mockUserRepository)
	service := NewUserService(repo)

	repo.On("CreateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(User{}, &pgconn.PgError{Code: "23505"})

	_, err := service.CreateUser(context.Background(), "Alice", "alice@example.com", RoleInvestor, "secret", "", "uuid-1")

	require.EqualError(t, err, "user exists with that email")
}

func TestUserService_Login_Success(t *testing.T) {
	repo := new(mockUserRepository)
	service := NewUserService(repo)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	repo.On("GetUserAuthByEmail", mock.Anything, "alice@example.com").Return("uuid-1", string(hash), nil)
	repo.On("GetUserByUUID", mock.Anything, "uuid-1").Return(User{ID: 1, UUID: "uuid-1"}, nil)

	u, err := service.Login(context.Background(), "alice@example.com", "secret")

	require.NoError(t, err)
	require.Equal(t, "uuid-1", u.UUID)
	repo.AssertExpectations(t)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	repo := new(mockUserRepository)
	service := NewUserService(repo)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	repo.On("GetUserAuthByEmail", mock.Anything, "alice@example.com").Return("uuid-1", string(hash), nil)

	_, err = service.Login(context.Background(), "alice@example.com", "wrong")

	require.EqualError(t, err, "invalid credentials")
	repo.AssertNotCalled(t, "GetUserByUUID", mock.Anything, mock.Anything)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	repo := new(mockUserRepository)
	service := NewUserService(repo)

	repo.On("GetUserAuthByEmail", mock.Anything, "ghost@example.com").Return("", "", ErrUserNotFound)

	_, err := service.Login(context.Background(), "ghost@example.com", "secret")

	// Unknown email and bad password look the same to the caller.
	require.EqualError(t, err, "invalid credentials")
}

func TestUserService_UpdateUser_ValidatesRole(t *testing.T) {
	repo := new(mockUserRepository)
	service := NewUserService(repo)

	_, err := service.UpdateUserByUUID(context.Background(), "uuid-1", User{Name: "Alice", Role: "admin"})

	require.EqualError(t, err, "invalid role")
	repo.AssertNotCalled(t, "UpdateUserByUUID", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_DeleteUser_ErrorPropagation(t *testing.T) {
	repo := new(mockUserRepository)
	service := NewUserService(repo)

	repo.On("DeleteUserByUUID", mock.Anything, "uuid-1").Return(errors.New("boom"))

	err := service.DeleteUserByUUID(context.Background(), "uuid-1")

	require.EqualError(t, err, "boom")
}

func TestUserService_ListUsers_Defaults(t *testing.T) {
	repo := new(mockUserRepository)
	service := NewUserService(repo)

	repo.On("ListUsers", mock.Anything, 10, 0).Return([]User{}, int64(0), nil)

	_, _, err := service.ListUsers(context.Background(), 0, 0)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}
