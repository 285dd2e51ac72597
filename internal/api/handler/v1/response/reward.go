package response

import "github.com/mccajr2/reading-rewards/internal/domain"

type RewardListResponse struct {
	Rewards []domain.Reward `json:"rewards"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
	Total   int64           `json:"total"`
}

type AddBookResponse struct {
	Book     domain.Book     `json:"book"`
	BookRead domain.BookRead `json:"book_read"`
}

type KidResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}
