package request

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type SpendRequest struct {
	Amount float64 `json:"amount"`
	Note   string  `json:"note"`
}

func (req *SpendRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Amount, validation.Required, validation.Min(0.01)),
		validation.Field(&req.Note, validation.Required, validation.Length(1, 200)),
	)
}

type PayoutRequest struct {
	Amount float64 `json:"amount"`
	Note   string  `json:"note"`
}

func (req *PayoutRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Amount, validation.Required, validation.Min(0.01)),
		validation.Field(&req.Note, validation.Length(0, 200)),
	)
}
