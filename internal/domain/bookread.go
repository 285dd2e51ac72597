package domain

import "time"

// BookRead is one reading session: a single attempt at a book, bounded
// by StartDate and EndDate. A user re-reading a book gets a new session.
type BookRead struct {
	ID         uint       `json:"id"`
	BookID     string     `json:"book_id"`
	UserID     uint       `json:"user_id"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	InProgress bool       `json:"in_progress"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ChapterRead marks one chapter completed within one session.
type ChapterRead struct {
	ID             uint      `json:"id"`
	BookReadID     uint      `json:"book_read_id"`
	ChapterID      uint      `json:"chapter_id"`
	UserID         uint      `json:"user_id"`
	CompletionDate time.Time `json:"completion_date"`
}

// HistoryEntry is one chapter completion with its chapter and book
// context, for the user's completion history across all sessions.
type HistoryEntry struct {
	ChapterRead
	ChapterName  string `json:"chapter_name"`
	ChapterIndex int    `json:"chapter_index"`
	BookID       string `json:"book_id"`
	BookTitle    string `json:"book_title"`
}

// SessionProgress is an in-progress session joined with its book and
// the distinct chapters completed so far. Completion percentage is for
// the caller to compute against the book's chapter list.
type SessionProgress struct {
	BookRead
	Title          string   `json:"title"`
	Authors        []string `json:"authors"`
	ReadCount      int      `json:"read_count"`
	ReadChapterIDs []uint   `json:"read_chapter_ids"`
}
