package postgresql

import (
	"context"
	"fmt"

	"github.com/danny20232023/hris-sub003/internal/domain/auth"
	"github.com/danny20232023/hris-sub003/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type sysUserRepository struct {
	db *database.DB
}

// GetByUsername implements auth.SysUserRepository. pgx.ErrNoRows passes
// through so the auth service can fold it into invalid-credentials.
func (s *sysUserRepository) GetByUsername(ctx context.Context, username string) (auth.SysUser, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, username, password_hash, full_name, role, created_at
		FROM sysusers
		WHERE username = $1
	`

	var u auth.SysUser
	err := q.QueryRow(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return auth.SysUser{}, err
		}
		return auth.SysUser{}, fmt.Errorf("failed to get user by username: %w", err)
	}
	return u, nil
}

// GetByID implements auth.SysUserRepository.
func (s *sysUserRepository) GetByID(ctx context.Context, id string) (auth.SysUser, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, username, password_hash, full_name, role, created_at
		FROM sysusers
		WHERE id = $1
	`

	var u auth.SysUser
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return auth.SysUser{}, err
		}
		return auth.SysUser{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return u, nil
}

func NewSysUserRepository(db *database.DB) auth.SysUserRepository {
	return &sysUserRepository{db: db}
}
