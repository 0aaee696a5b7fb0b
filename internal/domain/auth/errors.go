package auth

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAccountInactive      = errors.New("account is inactive")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked  = errors.New("refresh token has been revoked")
	ErrUserNotFound         = errors.New("user not found")
	ErrGoogleNotConfigured  = errors.New("google login is not configured")
	ErrGoogleAccountUnknown = errors.New("no account is registered for this google email")
	ErrInvalidOAuthState    = errors.New("invalid oauth state")
	ErrWrongPassword        = errors.New("current password is incorrect")
	ErrUnauthenticated      = errors.New("authentication required")
)
