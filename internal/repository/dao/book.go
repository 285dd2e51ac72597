package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrBookNotFound    = errors.New("book not found")
	ErrChapterNotFound = errors.New("chapter not found")
)

type Book struct {
	ID string `gorm:"primaryKey;size:50"` // provider-issued catalog id

	Title        string `gorm:"not null;size:500"`
	Authors      string `gorm:"not null;type:text"` // comma-joined
	Description  string `gorm:"type:text"`
	ThumbnailURL string `gorm:"size:1000"`

	Chapters []Chapter `gorm:"foreignKey:BookID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Chapter struct {
	ID uint `gorm:"primaryKey"`

	BookID       string `gorm:"not null;size:50;uniqueIndex:idx_chapters_book_index"`
	Name         string `gorm:"not null;size:500"`
	ChapterIndex int    `gorm:"not null;uniqueIndex:idx_chapters_book_index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type BookDAO struct {
	db *gorm.DB
}

func NewBookDAO(db *gorm.DB) *BookDAO {
	return &BookDAO{
		db: db,
	}
}

// Upsert inserts the book or refreshes its metadata if the catalog id
// is already known.
func (d *BookDAO) Upsert(ctx context.Context, book Book) (Book, error) {
	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "authors", "description", "thumbnail_url", "updated_at"}),
	}).Create(&book)
	if result.Error != nil {
		return Book{}, result.Error
	}

	return book, nil
}

func (d *BookDAO) FindByID(ctx context.Context, id string) (Book, error) {
	var book Book

	result := d.db.WithContext(ctx).First(&book, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Book{}, ErrBookNotFound
		}

		return Book{}, result.Error
	}

	return book, nil
}

// ReplaceChapters swaps the whole chapter list of a book in one transaction.
func (d *BookDAO) ReplaceChapters(ctx context.Context, bookID string, chapters []Chapter) ([]Chapter, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", bookID).Delete(&Chapter{}).Error; err != nil {
			return err
		}

		for i := range chapters {
			chapters[i].ID = 0
			chapters[i].BookID = bookID
		}
		if len(chapters) == 0 {
			return nil
		}

		return tx.Create(&chapters).Error
	})
	if err != nil {
		return nil, err
	}

	return chapters, nil
}

func (d *BookDAO) FindChaptersByBookID(ctx context.Context, bookID string) ([]Chapter, error) {
	var chapters []Chapter

	result := d.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("chapter_index").
		Find(&chapters)
	if result.Error != nil {
		return nil, result.Error
	}

	return chapters, nil
}

func (d *BookDAO) FindChapterByID(ctx context.Context, id uint) (Chapter, error) {
	var chapter Chapter

	result := d.db.WithContext(ctx).First(&chapter, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Chapter{}, ErrChapterNotFound
		}

		return Chapter{}, result.Error
	}

	return chapter, nil
}

func (d *BookDAO) UpdateChapterName(ctx context.Context, id uint, name string) (Chapter, error) {
	chapter, err := d.FindChapterByID(ctx, id)
	if err != nil {
		return Chapter{}, err
	}

	chapter.Name = name
	if err := d.db.WithContext(ctx).Save(&chapter).Error; err != nil {
		return Chapter{}, err
	}

	return chapter, nil
}
