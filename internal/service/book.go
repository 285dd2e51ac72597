package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mccajr2/reading-rewards/internal/domain"
	"github.com/mccajr2/reading-rewards/internal/repository"
)

var (
	ErrBookNotFound        = repository.ErrBookNotFound
	ErrChapterNotFound     = repository.ErrChapterNotFound
	ErrSessionNotFound     = repository.ErrSessionNotFound
	ErrChapterReadNotFound = repository.ErrChapterReadNotFound
)

// Every chapter completion mints one EARN reward of this amount.
const earnPerChapter = 1.0

type BookRepository interface {
	Upsert(ctx context.Context, book domain.Book) (domain.Book, error)
	FindByID(ctx context.Context, id string) (domain.Book, error)
	ReplaceChapters(ctx context.Context, bookID string, chapters []domain.Chapter) ([]domain.Chapter, error)
	FindChapters(ctx context.Context, bookID string) ([]domain.Chapter, error)
	RenameChapter(ctx context.Context, id uint, name string) (domain.Chapter, error)
}

type BookReadRepository interface {
	Start(ctx context.Context, userID uint, bookID string, start time.Time) (domain.BookRead, error)
	FindByID(ctx context.Context, id uint) (domain.BookRead, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.BookRead, []domain.Book, error)
	FinishInProgress(ctx context.Context, userID uint, bookID string, end time.Time) error
	FindChapterReads(ctx context.Context, bookReadID uint) ([]domain.ChapterRead, error)
	History(ctx context.Context, userID uint) ([]domain.HistoryEntry, error)
	MarkChapterRead(ctx context.Context, read domain.ChapterRead, earnAmount float64) (domain.ChapterRead, error)
	UnmarkChapterRead(ctx context.Context, bookReadID, chapterID, userID uint) error
	Delete(ctx context.Context, bookReadID uint) error
}

type BookService struct {
	books    BookRepository
	sessions BookReadRepository
}

func NewBookService(books BookRepository, sessions BookReadRepository) *BookService {
	return &BookService{
		books:    books,
		sessions: sessions,
	}
}

// ListBooks aggregates the user's sessions into one bookshelf row per book.
func (s *BookService) ListBooks(ctx context.Context, userID uint) ([]domain.BookOverview, error) {
	sessions, books, err := s.sessions.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.sessions.FindByUserID -> %w", err)
	}

	byID := make(map[string]*domain.BookOverview)
	order := make([]string, 0, len(sessions))
	for i, session := range sessions {
		overview, ok := byID[session.BookID]
		if !ok {
			overview = &domain.BookOverview{
				ID:      books[i].ID,
				Title:   books[i].Title,
				Authors: books[i].Authors,
			}
			byID[session.BookID] = overview
			order = append(order, session.BookID)
		}

		overview.ReadCount++
		if session.InProgress {
			overview.InProgress = true
		}
	}

	result := make([]domain.BookOverview, 0, len(order))
	for _, id := range order {
		result = append(result, *byID[id])
	}

	return result, nil
}

// AddBook saves the catalog pick and opens the first reading session.
func (s *BookService) AddBook(ctx context.Context, userID uint, book domain.Book) (domain.Book, domain.BookRead, error) {
	saved, err := s.books.Upsert(ctx, book)
	if err != nil {
		return domain.Book{}, domain.BookRead{}, fmt.Errorf("s.books.Upsert -> %w", err)
	}

	session, err := s.sessions.Start(ctx, userID, saved.ID, time.Now())
	if err != nil {
		return domain.Book{}, domain.BookRead{}, fmt.Errorf("s.sessions.Start -> %w", err)
	}

	return saved, session, nil
}

func (s *BookService) FinishBook(ctx context.Context, userID uint, bookID string) error {
	if err := s.sessions.FinishInProgress(ctx, userID, bookID, time.Now()); err != nil {
		return fmt.Errorf("s.sessions.FinishInProgress -> %w", err)
	}

	return nil
}

// RereadBook opens another session for a book already on the shelf,
// keeping the history of earlier completions intact.
func (s *BookService) RereadBook(ctx context.Context, userID uint, bookID string) (domain.BookRead, error) {
	if _, err := s.books.FindByID(ctx, bookID); err != nil {
		return domain.BookRead{}, fmt.Errorf("s.books.FindByID -> %w", err)
	}

	session, err := s.sessions.Start(ctx, userID, bookID, time.Now())
	if err != nil {
		return domain.BookRead{}, fmt.Errorf("s.sessions.Start -> %w", err)
	}

	return session, nil
}

func (s *BookService) GetChapters(ctx context.Context, bookID string) ([]domain.Chapter, error) {
	chapters, err := s.books.FindChapters(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("s.books.FindChapters -> %w", err)
	}

	return chapters, nil
}

func (s *BookService) ReplaceChapters(ctx context.Context, bookID string, chapters []domain.Chapter) ([]domain.Chapter, error) {
	if _, err := s.books.FindByID(ctx, bookID); err != nil {
		return nil, fmt.Errorf("s.books.FindByID -> %w", err)
	}

	saved, err := s.books.ReplaceChapters(ctx, bookID, chapters)
	if err != nil {
		return nil, fmt.Errorf("s.books.ReplaceChapters -> %w", err)
	}

	return saved, nil
}

func (s *BookService) RenameChapter(ctx context.Context, chapterID uint, name string) (domain.Chapter, error) {
	chapter, err := s.books.RenameChapter(ctx, chapterID, name)
	if err != nil {
		return domain.Chapter{}, fmt.Errorf("s.books.RenameChapter -> %w", err)
	}

	return chapter, nil
}

// InProgressSessions lists the user's open sessions with the distinct
// chapters completed so far, for the caller to turn into a progress bar.
func (s *BookService) InProgressSessions(ctx context.Context, userID uint) ([]domain.SessionProgress, error) {
	sessions, books, err := s.sessions.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.sessions.FindByUserID -> %w", err)
	}

	readCounts := make(map[string]int)
	for _, session := range sessions {
		readCounts[session.BookID]++
	}

	result := make([]domain.SessionProgress, 0)
	for i, session := range sessions {
		if !session.InProgress {
			continue
		}

		reads, err := s.sessions.FindChapterReads(ctx, session.ID)
		if err != nil {
			return nil, fmt.Errorf("s.sessions.FindChapterReads -> %w", err)
		}

		seen := make(map[uint]bool)
		chapterIDs := make([]uint, 0, len(reads))
		for _, cr := range reads {
			if !seen[cr.ChapterID] {
				seen[cr.ChapterID] = true
				chapterIDs = append(chapterIDs, cr.ChapterID)
			}
		}

		result = append(result, domain.SessionProgress{
			BookRead:       session,
			Title:          books[i].Title,
			Authors:        books[i].Authors,
			ReadCount:      readCounts[session.BookID],
			ReadChapterIDs: chapterIDs,
		})
	}

	return result, nil
}

// History lists every chapter the user completed, across all books and
// sessions, newest first.
func (s *BookService) History(ctx context.Context, userID uint) ([]domain.HistoryEntry, error) {
	entries, err := s.sessions.History(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.sessions.History -> %w", err)
	}

	return entries, nil
}

func (s *BookService) GetChapterReads(ctx context.Context, userID, bookReadID uint) ([]domain.ChapterRead, error) {
	if _, err := s.ownSession(ctx, userID, bookReadID); err != nil {
		return nil, err
	}

	reads, err := s.sessions.FindChapterReads(ctx, bookReadID)
	if err != nil {
		return nil, fmt.Errorf("s.sessions.FindChapterReads -> %w", err)
	}

	return reads, nil
}

// MarkChapterRead records the completion and its EARN reward. The two
// rows are written in one transaction at the DAO layer.
func (s *BookService) MarkChapterRead(ctx context.Context, userID, bookReadID, chapterID uint) (domain.ChapterRead, error) {
	if _, err := s.ownSession(ctx, userID, bookReadID); err != nil {
		return domain.ChapterRead{}, err
	}

	created, err := s.sessions.MarkChapterRead(ctx, domain.ChapterRead{
		BookReadID:     bookReadID,
		ChapterID:      chapterID,
		UserID:         userID,
		CompletionDate: time.Now(),
	}, earnPerChapter)
	if err != nil {
		return domain.ChapterRead{}, fmt.Errorf("s.sessions.MarkChapterRead -> %w", err)
	}

	return created, nil
}

func (s *BookService) UnmarkChapterRead(ctx context.Context, userID, bookReadID, chapterID uint) error {
	if _, err := s.ownSession(ctx, userID, bookReadID); err != nil {
		return err
	}

	if err := s.sessions.UnmarkChapterRead(ctx, bookReadID, chapterID, userID); err != nil {
		return fmt.Errorf("s.sessions.UnmarkChapterRead -> %w", err)
	}

	return nil
}

func (s *BookService) DeleteSession(ctx context.Context, userID, bookReadID uint) error {
	if _, err := s.ownSession(ctx, userID, bookReadID); err != nil {
		return err
	}

	if err := s.sessions.Delete(ctx, bookReadID); err != nil {
		return fmt.Errorf("s.sessions.Delete -> %w", err)
	}

	return nil
}

// ownSession loads a session and hides other users' sessions behind
// the same not-found error.
func (s *BookService) ownSession(ctx context.Context, userID, bookReadID uint) (domain.BookRead, error) {
	session, err := s.sessions.FindByID(ctx, bookReadID)
	if err != nil {
		return domain.BookRead{}, fmt.Errorf("s.sessions.FindByID -> %w", err)
	}

	if session.UserID != userID {
		return domain.BookRead{}, ErrSessionNotFound
	}

	return session, nil
}
