package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupRequest_Validate(t *testing.T) {
	valid := SignupRequest{
		Email:           "amy@example.com",
		Username:        "amy",
		Password:        "password1",
		ConfirmPassword: "password1",
		FirstName:       "Amy",
	}

	tests := []struct {
		name    string
		mutate  func(r *SignupRequest)
		wantErr bool
	}{
		{
			name:   "valid request",
			mutate: func(r *SignupRequest) {},
		},
		{
			name:    "missing email",
			mutate:  func(r *SignupRequest) { r.Email = "" },
			wantErr: true,
		},
		{
			name:    "invalid email",
			mutate:  func(r *SignupRequest) { r.Email = "not-an-email" },
			wantErr: true,
		},
		{
			name:    "username too short",
			mutate:  func(r *SignupRequest) { r.Username = "a" },
			wantErr: true,
		},
		{
			name: "password too short",
			mutate: func(r *SignupRequest) {
				r.Password = "pass1"
				r.ConfirmPassword = "pass1"
			},
			wantErr: true,
		},
		{
			name: "password without a number",
			mutate: func(r *SignupRequest) {
				r.Password = "passwords"
				r.ConfirmPassword = "passwords"
			},
			wantErr: true,
		},
		{
			name: "password without a letter",
			mutate: func(r *SignupRequest) {
				r.Password = "12345678"
				r.ConfirmPassword = "12345678"
			},
			wantErr: true,
		},
		{
			name:    "confirm password mismatch",
			mutate:  func(r *SignupRequest) { r.ConfirmPassword = "password2" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     LoginRequest
		wantErr bool
	}{
		{
			name: "email login",
			req:  LoginRequest{Email: "amy@example.com", Password: "password1"},
		},
		{
			name: "username login",
			req:  LoginRequest{Username: "ben", Password: "password1"},
		},
		{
			name:    "neither email nor username",
			req:     LoginRequest{Password: "password1"},
			wantErr: true,
		},
		{
			name:    "invalid email",
			req:     LoginRequest{Email: "not-an-email", Password: "password1"},
			wantErr: true,
		},
		{
			name:    "missing password",
			req:     LoginRequest{Email: "amy@example.com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVerifyEmailRequest_Validate(t *testing.T) {
	assert.NoError(t, (&VerifyEmailRequest{Token: "abc123"}).Validate())
	assert.Error(t, (&VerifyEmailRequest{}).Validate())
}
