package domain

import "time"

type RewardType string

const (
	RewardEarn   RewardType = "EARN"
	RewardSpend  RewardType = "SPEND"
	RewardPayout RewardType = "PAYOUT"
)

// Reward is one append-only ledger entry. EARN entries reference the
// chapter completion that minted them; SPEND and PAYOUT never do.
type Reward struct {
	ID            uint       `json:"id"`
	Type          RewardType `json:"type"`
	UserID        uint       `json:"user_id"`
	ChapterReadID *uint      `json:"chapter_read_id,omitempty"`
	Amount        float64    `json:"amount"`
	Note          string     `json:"note,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`

	// Populated for EARN entries when listing the ledger.
	ChapterRead *RewardChapterRead `json:"chapter_read,omitempty"`
}

// RewardChapterRead is the nested context of an EARN entry.
type RewardChapterRead struct {
	ChapterRead
	ChapterName  string `json:"chapter_name"`
	ChapterIndex int    `json:"chapter_index"`
	BookID       string `json:"book_id"`
	BookTitle    string `json:"book_title"`
}

// Signed returns the entry's contribution to the balance.
func (r Reward) Signed() float64 {
	if r.Type == RewardEarn {
		return r.Amount
	}

	return -r.Amount
}

// RewardSummary is derived from the full ledger on every read, never stored.
type RewardSummary struct {
	TotalEarned    float64 `json:"total_earned"`
	TotalPaidOut   float64 `json:"total_paid_out"`
	TotalSpent     float64 `json:"total_spent"`
	CurrentBalance float64 `json:"current_balance"`
}
