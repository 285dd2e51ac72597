package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/mccajr2/reading-rewards/internal/domain"
	"github.com/mccajr2/reading-rewards/internal/repository/dao"
)

var (
	ErrSessionNotFound     = dao.ErrSessionNotFound
	ErrChapterReadNotFound = dao.ErrChapterReadNotFound
)

type BookReadDAO interface {
	Insert(ctx context.Context, bookRead dao.BookRead) (dao.BookRead, error)
	FindByID(ctx context.Context, id uint) (dao.BookRead, error)
	FindByUserID(ctx context.Context, userID uint) ([]dao.BookRead, error)
	FinishInProgress(ctx context.Context, userID uint, bookID string, end time.Time) error
	FindChapterReadsByUserID(ctx context.Context, userID uint) ([]dao.ChapterRead, error)
	FindChapterReadsByBookReadID(ctx context.Context, bookReadID uint) ([]dao.ChapterRead, error)
	InsertChapterRead(ctx context.Context, read dao.ChapterRead, earnAmount float64) (dao.ChapterRead, error)
	DeleteChapterRead(ctx context.Context, bookReadID, chapterID, userID uint) error
	DeleteCascade(ctx context.Context, bookReadID uint) error
}

type BookReadRepository struct {
	dao BookReadDAO
}

func NewBookReadRepository(dao BookReadDAO) *BookReadRepository {
	return &BookReadRepository{
		dao: dao,
	}
}

func (r *BookReadRepository) Start(ctx context.Context, userID uint, bookID string, start time.Time) (domain.BookRead, error) {
	created, err := r.dao.Insert(ctx, dao.BookRead{
		BookID:    bookID,
		UserID:    userID,
		StartDate: start,
	})
	if err != nil {
		return domain.BookRead{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *BookReadRepository) FindByID(ctx context.Context, id uint) (domain.BookRead, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.BookRead{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

// FindByUserID returns the user's sessions with book metadata attached.
func (r *BookReadRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.BookRead, []domain.Book, error) {
	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	sessions := make([]domain.BookRead, 0, len(found))
	books := make([]domain.Book, 0, len(found))
	for _, br := range found {
		sessions = append(sessions, r.daoToDomain(br))
		books = append(books, domain.Book{
			ID:      br.Book.ID,
			Title:   br.Book.Title,
			Authors: splitAuthors(br.Book.Authors),
		})
	}

	return sessions, books, nil
}

func (r *BookReadRepository) FinishInProgress(ctx context.Context, userID uint, bookID string, end time.Time) error {
	if err := r.dao.FinishInProgress(ctx, userID, bookID, end); err != nil {
		return fmt.Errorf("r.dao.FinishInProgress -> %w", err)
	}

	return nil
}

// History returns every completion the user logged, newest first, with
// chapter and book context attached.
func (r *BookReadRepository) History(ctx context.Context, userID uint) ([]domain.HistoryEntry, error) {
	found, err := r.dao.FindChapterReadsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindChapterReadsByUserID -> %w", err)
	}

	entries := make([]domain.HistoryEntry, 0, len(found))
	for _, cr := range found {
		entries = append(entries, domain.HistoryEntry{
			ChapterRead:  r.chapterReadDAOToDomain(cr),
			ChapterName:  cr.Chapter.Name,
			ChapterIndex: cr.Chapter.ChapterIndex,
			BookID:       cr.BookRead.BookID,
			BookTitle:    cr.BookRead.Book.Title,
		})
	}

	return entries, nil
}

func (r *BookReadRepository) FindChapterReads(ctx context.Context, bookReadID uint) ([]domain.ChapterRead, error) {
	found, err := r.dao.FindChapterReadsByBookReadID(ctx, bookReadID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindChapterReadsByBookReadID -> %w", err)
	}

	reads := make([]domain.ChapterRead, 0, len(found))
	for _, cr := range found {
		reads = append(reads, r.chapterReadDAOToDomain(cr))
	}

	return reads, nil
}

func (r *BookReadRepository) MarkChapterRead(ctx context.Context, read domain.ChapterRead, earnAmount float64) (domain.ChapterRead, error) {
	created, err := r.dao.InsertChapterRead(ctx, dao.ChapterRead{
		BookReadID:     read.BookReadID,
		ChapterID:      read.ChapterID,
		UserID:         read.UserID,
		CompletionDate: read.CompletionDate,
	}, earnAmount)
	if err != nil {
		return domain.ChapterRead{}, fmt.Errorf("r.dao.InsertChapterRead -> %w", err)
	}

	return r.chapterReadDAOToDomain(created), nil
}

func (r *BookReadRepository) UnmarkChapterRead(ctx context.Context, bookReadID, chapterID, userID uint) error {
	if err := r.dao.DeleteChapterRead(ctx, bookReadID, chapterID, userID); err != nil {
		return fmt.Errorf("r.dao.DeleteChapterRead -> %w", err)
	}

	return nil
}

func (r *BookReadRepository) Delete(ctx context.Context, bookReadID uint) error {
	if err := r.dao.DeleteCascade(ctx, bookReadID); err != nil {
		return fmt.Errorf("r.dao.DeleteCascade -> %w", err)
	}

	return nil
}

func (r *BookReadRepository) daoToDomain(br dao.BookRead) domain.BookRead {
	return domain.BookRead{
		ID:         br.ID,
		BookID:     br.BookID,
		UserID:     br.UserID,
		StartDate:  br.StartDate,
		EndDate:    br.EndDate,
		InProgress: br.EndDate == nil,
		CreatedAt:  br.CreatedAt,
		UpdatedAt:  br.UpdatedAt,
	}
}

func (r *BookReadRepository) chapterReadDAOToDomain(cr dao.ChapterRead) domain.ChapterRead {
	return domain.ChapterRead{
		ID:             cr.ID,
		BookReadID:     cr.BookReadID,
		ChapterID:      cr.ChapterID,
		UserID:         cr.UserID,
		CompletionDate: cr.CompletionDate,
	}
}
