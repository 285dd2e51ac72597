package response

import "github.com/mccajr2/reading-rewards/internal/domain"

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}
