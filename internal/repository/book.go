package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/mccajr2/reading-rewards/internal/domain"
	"github.com/mccajr2/reading-rewards/internal/repository/dao"
)

var (
	ErrBookNotFound    = dao.ErrBookNotFound
	ErrChapterNotFound = dao.ErrChapterNotFound
)

type BookDAO interface {
	Upsert(ctx context.Context, book dao.Book) (dao.Book, error)
	FindByID(ctx context.Context, id string) (dao.Book, error)
	ReplaceChapters(ctx context.Context, bookID string, chapters []dao.Chapter) ([]dao.Chapter, error)
	FindChaptersByBookID(ctx context.Context, bookID string) ([]dao.Chapter, error)
	FindChapterByID(ctx context.Context, id uint) (dao.Chapter, error)
	UpdateChapterName(ctx context.Context, id uint, name string) (dao.Chapter, error)
}

type BookRepository struct {
	dao BookDAO
}

func NewBookRepository(dao BookDAO) *BookRepository {
	return &BookRepository{
		dao: dao,
	}
}

func (r *BookRepository) Upsert(ctx context.Context, book domain.Book) (domain.Book, error) {
	saved, err := r.dao.Upsert(ctx, dao.Book{
		ID:           book.ID,
		Title:        book.Title,
		Authors:      joinAuthors(book.Authors),
		Description:  book.Description,
		ThumbnailURL: book.ThumbnailURL,
	})
	if err != nil {
		return domain.Book{}, fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return r.daoToDomain(saved), nil
}

func (r *BookRepository) FindByID(ctx context.Context, id string) (domain.Book, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Book{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *BookRepository) ReplaceChapters(ctx context.Context, bookID string, chapters []domain.Chapter) ([]domain.Chapter, error) {
	daoChapters := make([]dao.Chapter, 0, len(chapters))
	for _, c := range chapters {
		daoChapters = append(daoChapters, dao.Chapter{
			Name:         c.Name,
			ChapterIndex: c.ChapterIndex,
		})
	}

	saved, err := r.dao.ReplaceChapters(ctx, bookID, daoChapters)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ReplaceChapters -> %w", err)
	}

	return r.chaptersDAOToDomain(saved), nil
}

func (r *BookRepository) FindChapters(ctx context.Context, bookID string) ([]domain.Chapter, error) {
	found, err := r.dao.FindChaptersByBookID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindChaptersByBookID -> %w", err)
	}

	return r.chaptersDAOToDomain(found), nil
}

func (r *BookRepository) RenameChapter(ctx context.Context, id uint, name string) (domain.Chapter, error) {
	updated, err := r.dao.UpdateChapterName(ctx, id, name)
	if err != nil {
		return domain.Chapter{}, fmt.Errorf("r.dao.UpdateChapterName -> %w", err)
	}

	return r.chapterDAOToDomain(updated), nil
}

func (r *BookRepository) daoToDomain(b dao.Book) domain.Book {
	return domain.Book{
		ID:           b.ID,
		Title:        b.Title,
		Authors:      splitAuthors(b.Authors),
		Description:  b.Description,
		ThumbnailURL: b.ThumbnailURL,
		Chapters:     r.chaptersDAOToDomain(b.Chapters),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func (r *BookRepository) chapterDAOToDomain(c dao.Chapter) domain.Chapter {
	return domain.Chapter{
		ID:           c.ID,
		BookID:       c.BookID,
		Name:         c.Name,
		ChapterIndex: c.ChapterIndex,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (r *BookRepository) chaptersDAOToDomain(chapters []dao.Chapter) []domain.Chapter {
	if chapters == nil {
		return nil
	}

	converted := make([]domain.Chapter, 0, len(chapters))
	for _, c := range chapters {
		converted = append(converted, r.chapterDAOToDomain(c))
	}

	return converted
}

// Authors live in a single text column, comma-joined, exactly as the
// provider hands them over.
func joinAuthors(authors []string) string {
	return strings.Join(authors, ", ")
}

func splitAuthors(joined string) []string {
	if joined == "" {
		return []string{}
	}

	parts := strings.Split(joined, ",")
	authors := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			authors = append(authors, trimmed)
		}
	}

	return authors
}
