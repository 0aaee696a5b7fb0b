package auth

import "github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"

// LoginRequest accepts either an email or an employee unique ID in Login.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Login) {
		errs = append(errs, validator.ValidationError{
			Field:   "login",
			Message: "email or employee id is required",
		})
	} else if len(r.Login) > 254 {
		errs = append(errs, validator.ValidationError{
			Field:   "login",
			Message: "login must not exceed 254 characters",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must not exceed 255 characters",
		})
	}

	return errs.Err()
}

// IsEmail reports whether Login should be matched against user emails.
func (r *LoginRequest) IsEmail() bool {
	return validator.IsValidEmail(r.Login)
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors
	validator.Required(&errs, "refresh_token", r.RefreshToken)
	return errs.Err()
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	validator.Required(&errs, "current_password", r.CurrentPassword)
	if validator.IsEmpty(r.NewPassword) {
		errs = append(errs, validator.ValidationError{Field: "new_password", Message: "new_password is required"})
	} else if len(r.NewPassword) < 6 {
		errs = append(errs, validator.ValidationError{Field: "new_password", Message: "new_password must be at least 6 characters"})
	}

	return errs.Err()
}

type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}
