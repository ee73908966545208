package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	CreateUser(ctx context.Context, name, email, role, passwordHash, profilePicURL, uuid string) (User, error)
	UpdateUserByUUID(ctx context.Context, uuid string, u User) (User, error)
	DeleteUserByUUID(ctx context.Context, uuid string) error
	GetUserByUUID(ctx context.Context, uuid string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]User, int64, error)
	GetUserAuthByEmail(ctx context.Context, email string) (string, string, error)
}

type postgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(pool *pgxpool.Pool) UserRepository {
	return &postgresUserRepository{pool: pool}
}

func (r *postgresUserRepository) CreateUser(ctx context.Context, name, email, role, passwordHash, profilePicURL, uuid string) (User, error) {
	query := `INSERT INTO users (name, email, role, password_hash, profile_pic_url, uuid, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, NOW())
              RETURNING id, uuid, name, email, role, profile_pic_url, created_at`
	row := r.pool.QueryRow(ctx, query, name, email, role, passwordHash, profilePicURL, uuid)

	var u User
	if err := row.Scan(&u.ID, &u.UUID, &u.Name, &u.Email, &u.Role, &u.ProfilePicURL, &u.CreatedAt); err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *postgresUserRepository) UpdateUserByUUID(ctx context.Context, uuid string, u User) (User, error) {
	query := `UPDATE users
              SET name = $1, role = $2, profile_pic_url = $3
              WHERE uuid = $4
              RETURNING id, uuid, name, email, role, profile_pic_url, created_at`
	row := r.pool.QueryRow(ctx, query, u.Name, u.Role, u.ProfilePicURL, uuid)

	var out User
	if err := row.Scan(&out.ID, &out.UUID, &out.Name, &out.Email, &out.Role, &out.ProfilePicURL, &out.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return out, nil
}

func (r *postgresUserRepository) DeleteUserByUUID(ctx context.Context, uuid string) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM users WHERE uuid = $1", uuid)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *postgresUserRepository) GetUserByUUID(ctx context.Context, uuid string) (User, error) {
	query := `SELECT id, uuid, name, email, role, profile_pic_url, created_at
              FROM users WHERE uuid = $1`
	row := r.pool.QueryRow(ctx, query, uuid)

	var u User
	if err := row.Scan(&u.ID, &u.UUID, &u.Name, &u.Email, &u.Role, &u.ProfilePicURL, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *postgresUserRepository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	query := `SELECT id, uuid, name, email, role, profile_pic_url, created_at
              FROM users WHERE email = $1`
	row := r.pool.QueryRow(ctx, query, email)

	var u User
	if err := row.Scan(&u.ID, &u.UUID, &u.Name, &u.Email, &u.Role, &u.ProfilePicURL, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *postgresUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]User, int64, error) {
	query := `SELECT id, uuid, name, email, role, profile_pic_url, created_at
              FROM users
              ORDER BY id
              LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]User, 0)
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.UUID, &u.Name, &u.Email, &u.Role, &u.ProfilePicURL, &u.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	countRow := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users")
	if err := countRow.Scan(&total); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// GetUserAuthByEmail returns the user's uuid and password hash for login.
func (r *postgresUserRepository) GetUserAuthByEmail(ctx context.Context, email string) (string, string, error) {
	row := r.pool.QueryRow(ctx, "SELECT uuid, password_hash FROM users WHERE email = $1", email)

	var uuid, hash string
	if err := row.Scan(&uuid, &hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", "", ErrUserNotFound
		}
		return "", "", err
	}
	return uuid, hash, nil
}
