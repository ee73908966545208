package users

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	CreateUser(ctx context.Context, name, email, role, password, profilePicURL, uuid string) (User, error)
	UpdateUserByUUID(ctx context.Context, uuid string, u User) (User, error)
	DeleteUserByUUID(ctx context.Context, uuid string) error
	GetUserByUUID(ctx context.Context, uuid string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ListUsers(ctx context.Context, page, limit int) ([]User, int64, error)
	Login(ctx context.Context, email, password string) (User, error)
}

type userService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) UserService {
	return &userService{repo: repo}
}

func validRole(role string) bool {
	return role == RoleFounder || role == RoleInvestor
}

func (s *userService) CreateUser(ctx context.Context, name, email, role, password, profilePicURL, uuid string) (User, error) {
	if !validRole(role) {
		return User{}, errors.New("invalid role")
	}
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	u, err := s.repo.CreateUser(ctx, name, email, role, string(hashBytes), profilePicURL, uuid)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return User{}, errors.New("user exists with that email")
		}
		return User{}, err
	}
	return u, nil
}

func (s *userService) UpdateUserByUUID(ctx context.Context, uuid string, u User) (User, error) {
	if u.Role != "" && !validRole(u.Role) {
		return User{}, errors.New("invalid role")
	}
	return s.repo.UpdateUserByUUID(ctx, uuid, u)
}

func (s *userService) DeleteUserByUUID(ctx context.Context, uuid string) error {
	return s.repo.DeleteUserByUUID(ctx, uuid)
}

func (s *userService) GetUserByUUID(ctx context.Context, uuid string) (User, error) {
	return s.repo.GetUserByUUID(ctx, uuid)
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return s.repo.GetUserByEmail(ctx, email)
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	return s.repo.ListUsers(ctx, limit, offset)
}

func (s *userService) Login(ctx context.Context, email, password string) (User, error) {
	uuid, hash, err := s.repo.GetUserAuthByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, errors.New("invalid credentials")
		}
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return User{}, errors.New("invalid credentials")
	}

	return s.repo.GetUserByUUID(ctx, uuid)
}
