package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenResponse, error)
	// GoogleLoginURL returns the consent URL for the given anti-forgery state.
	GoogleLoginURL(state string) (string, error)
	// LoginWithGoogle only signs in users whose email is already registered.
	LoginWithGoogle(ctx context.Context, code string, session SessionTrackingRequest) (TokenResponse, error)
	Logout(ctx context.Context, accessToken string, refreshToken string) error
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
}
