package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrSessionNotFound     = errors.New("reading session not found")
	ErrChapterReadNotFound = errors.New("chapter completion not found")
)

type BookRead struct {
	ID uint `gorm:"primaryKey"`

	BookID string `gorm:"not null;size:50;index"`
	Book   Book   `gorm:"foreignKey:BookID"`

	UserID uint `gorm:"not null;index"`
	User   User `gorm:"foreignKey:UserID"`

	StartDate time.Time  `gorm:"not null"`
	EndDate   *time.Time // nil while the session is in progress

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ChapterRead struct {
	ID uint `gorm:"primaryKey"`

	BookReadID uint     `gorm:"not null;index"`
	BookRead   BookRead `gorm:"foreignKey:BookReadID"`

	ChapterID uint    `gorm:"not null;index"`
	Chapter   Chapter `gorm:"foreignKey:ChapterID"`

	UserID         uint      `gorm:"not null;index"`
	CompletionDate time.Time `gorm:"not null"`
}

type BookReadDAO struct {
	db *gorm.DB
}

func NewBookReadDAO(db *gorm.DB) *BookReadDAO {
	return &BookReadDAO{
		db: db,
	}
}

func (d *BookReadDAO) Insert(ctx context.Context, bookRead BookRead) (BookRead, error) {
	result := d.db.WithContext(ctx).Create(&bookRead)
	if result.Error != nil {
		return BookRead{}, result.Error
	}

	return bookRead, nil
}

func (d *BookReadDAO) FindByID(ctx context.Context, id uint) (BookRead, error) {
	var bookRead BookRead

	result := d.db.WithContext(ctx).First(&bookRead, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return BookRead{}, ErrSessionNotFound
		}

		return BookRead{}, result.Error
	}

	return bookRead, nil
}

func (d *BookReadDAO) FindByUserID(ctx context.Context, userID uint) ([]BookRead, error) {
	var bookReads []BookRead

	result := d.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("id").
		Find(&bookReads)
	if result.Error != nil {
		return nil, result.Error
	}

	return bookReads, nil
}

// FinishInProgress closes every open session for the user/book pair and
// reports ErrSessionNotFound when there was nothing to close.
func (d *BookReadDAO) FinishInProgress(ctx context.Context, userID uint, bookID string, end time.Time) error {
	result := d.db.WithContext(ctx).Model(&BookRead{}).
		Where("user_id = ? AND book_id = ? AND end_date IS NULL", userID, bookID).
		Update("end_date", end)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// FindChapterReadsByUserID lists every completion the user ever logged,
// across all books and sessions, newest first.
func (d *BookReadDAO) FindChapterReadsByUserID(ctx context.Context, userID uint) ([]ChapterRead, error) {
	var reads []ChapterRead

	result := d.db.WithContext(ctx).
		Preload("Chapter").
		Preload("BookRead.Book").
		Where("user_id = ?", userID).
		Order("completion_date DESC, id DESC").
		Find(&reads)
	if result.Error != nil {
		return nil, result.Error
	}

	return reads, nil
}

func (d *BookReadDAO) FindChapterReadsByBookReadID(ctx context.Context, bookReadID uint) ([]ChapterRead, error) {
	var reads []ChapterRead

	result := d.db.WithContext(ctx).
		Where("book_read_id = ?", bookReadID).
		Order("id").
		Find(&reads)
	if result.Error != nil {
		return nil, result.Error
	}

	return reads, nil
}

// InsertChapterRead records a completion and mints its EARN reward in
// one transaction, so a completion never exists without its reward.
func (d *BookReadDAO) InsertChapterRead(ctx context.Context, read ChapterRead, earnAmount float64) (ChapterRead, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&read).Error; err != nil {
			return err
		}

		reward := Reward{
			Type:          "EARN",
			UserID:        read.UserID,
			ChapterReadID: &read.ID,
			Amount:        earnAmount,
		}

		return tx.Create(&reward).Error
	})
	if err != nil {
		return ChapterRead{}, err
	}

	return read, nil
}

// DeleteChapterRead removes the most recent completion of the chapter
// within the session together with the EARN reward that references it.
func (d *BookReadDAO) DeleteChapterRead(ctx context.Context, bookReadID, chapterID, userID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var read ChapterRead
		err := tx.
			Where("book_read_id = ? AND chapter_id = ? AND user_id = ?", bookReadID, chapterID, userID).
			Order("id DESC").
			First(&read).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrChapterReadNotFound
			}

			return err
		}

		if err = tx.Where("chapter_read_id = ?", read.ID).Delete(&Reward{}).Error; err != nil {
			return err
		}

		return tx.Delete(&read).Error
	})
}

// DeleteCascade removes a session, its completions, and their EARN
// rewards as one transaction. Children go first so no reward is ever
// left referencing a deleted completion.
func (d *BookReadDAO) DeleteCascade(ctx context.Context, bookReadID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var readIDs []uint
		err := tx.Model(&ChapterRead{}).
			Where("book_read_id = ?", bookReadID).
			Pluck("id", &readIDs).Error
		if err != nil {
			return err
		}

		if len(readIDs) > 0 {
			if err = tx.Where("chapter_read_id IN ?", readIDs).Delete(&Reward{}).Error; err != nil {
				return err
			}
			if err = tx.Where("id IN ?", readIDs).Delete(&ChapterRead{}).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&BookRead{}, bookReadID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSessionNotFound
		}

		return nil
	})
}
