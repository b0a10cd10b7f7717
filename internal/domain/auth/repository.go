package auth

import "context"

type SysUserRepository interface {
	GetByUsername(ctx context.Context, username string) (SysUser, error)
	GetByID(ctx context.Context, id string) (SysUser, error)
}
