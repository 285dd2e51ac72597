package request

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateKidRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	Password  string `json:"password"`
}

func (req *CreateKidRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Password, validation.Required),
	)
	if err != nil {
		return err
	}

	return validatePassword(req.Password)
}

type ResetChildPasswordRequest struct {
	ChildUsername string `json:"child_username"`
	NewPassword   string `json:"new_password"`
}

func (req *ResetChildPasswordRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.ChildUsername, validation.Required),
		validation.Field(&req.NewPassword, validation.Required),
	)
	if err != nil {
		return err
	}

	return validatePassword(req.NewPassword)
}
