package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Reward struct {
	ID uint `gorm:"primaryKey"`

	Type   string `gorm:"not null;size:10"` // "EARN", "SPEND", or "PAYOUT"
	UserID uint   `gorm:"not null;index"`
	User   User   `gorm:"foreignKey:UserID"`

	ChapterReadID *uint        `gorm:"index"` // set iff Type is EARN
	ChapterRead   *ChapterRead `gorm:"foreignKey:ChapterReadID"`

	Amount float64 `gorm:"not null"`
	Note   string  `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
}

type RewardDAO struct {
	db *gorm.DB
}

func NewRewardDAO(db *gorm.DB) *RewardDAO {
	return &RewardDAO{
		db: db,
	}
}

func (d *RewardDAO) Insert(ctx context.Context, reward Reward) (Reward, error) {
	result := d.db.WithContext(ctx).Create(&reward)
	if result.Error != nil {
		return Reward{}, result.Error
	}

	return reward, nil
}

func (d *RewardDAO) FindByUserID(ctx context.Context, userID uint, limit, offset int) ([]Reward, error) {
	var rewards []Reward

	result := d.db.WithContext(ctx).
		Preload("ChapterRead.Chapter").
		Preload("ChapterRead.BookRead.Book").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rewards)
	if result.Error != nil {
		return nil, result.Error
	}

	return rewards, nil
}

func (d *RewardDAO) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Reward{}).
		Where("user_id = ?", userID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// SumByType recomputes one leg of the balance from the full ledger.
func (d *RewardDAO) SumByType(ctx context.Context, userID uint, rewardType string) (float64, error) {
	var sum float64

	result := d.db.WithContext(ctx).Model(&Reward{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND type = ?", userID, rewardType).
		Scan(&sum)
	if result.Error != nil {
		return 0, result.Error
	}

	return sum, nil
}
