package domain

import "time"

// Book is a catalog entry. The ID is the provider-issued identifier
// (an Open Library OLID or a Google Books volume ID) and never changes.
type Book struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Authors      []string  `json:"authors"`
	Description  string    `json:"description,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Chapters     []Chapter `json:"chapters,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Chapter struct {
	ID           uint      `json:"id"`
	BookID       string    `json:"book_id"`
	Name         string    `json:"name"`
	ChapterIndex int       `json:"chapter_index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BookOverview is one row of a user's bookshelf, aggregated over
// all of their reading sessions for that book.
type BookOverview struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Authors    []string `json:"authors"`
	InProgress bool     `json:"in_progress"`
	ReadCount  int      `json:"read_count"`
}
