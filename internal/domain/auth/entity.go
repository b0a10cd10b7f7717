package auth

import "time"

// SysUser is an HR system user allowed to file and reconcile overtime.
type SysUser struct {
	ID           string
	Username     string
	PasswordHash string
	FullName     *string
	Role         string
	CreatedAt    time.Time
}
