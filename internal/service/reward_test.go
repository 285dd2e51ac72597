package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mccajr2/reading-rewards/internal/domain"
)

type fakeLedgerRepo struct {
	created []domain.Reward
	rewards []domain.Reward
	summary domain.RewardSummary

	lastLimit  int
	lastOffset int
}

func (f *fakeLedgerRepo) Create(_ context.Context, reward domain.Reward) (domain.Reward, error) {
	reward.ID = uint(len(f.created) + 1)
	f.created = append(f.created, reward)

	return reward, nil
}

func (f *fakeLedgerRepo) FindByUserID(_ context.Context, _ uint, limit, offset int) ([]domain.Reward, error) {
	f.lastLimit = limit
	f.lastOffset = offset

	return f.rewards, nil
}

func (f *fakeLedgerRepo) CountByUserID(_ context.Context, _ uint) (int64, error) {
	return int64(len(f.rewards)), nil
}

func (f *fakeLedgerRepo) Summary(_ context.Context, _ uint) (domain.RewardSummary, error) {
	return f.summary, nil
}

func TestRewardService_List(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		perPage    int
		wantLimit  int
		wantOffset int
	}{
		{
			name:       "defaults applied when out of range",
			page:       0,
			perPage:    0,
			wantLimit:  20,
			wantOffset: 0,
		},
		{
			name:       "oversized page size falls back to default",
			page:       1,
			perPage:    500,
			wantLimit:  20,
			wantOffset: 0,
		},
		{
			name:       "offset derived from page",
			page:       3,
			perPage:    10,
			wantLimit:  10,
			wantOffset: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeLedgerRepo{
				rewards: []domain.Reward{{ID: 1, Type: domain.RewardEarn, Amount: 1}},
			}
			svc := NewRewardService(repo)

			rewards, total, err := svc.List(context.Background(), 7, tt.page, tt.perPage)

			require.NoError(t, err)
			assert.Len(t, rewards, 1)
			assert.Equal(t, int64(1), total)
			assert.Equal(t, tt.wantLimit, repo.lastLimit)
			assert.Equal(t, tt.wantOffset, repo.lastOffset)
		})
	}
}

func TestRewardService_Spend(t *testing.T) {
	repo := &fakeLedgerRepo{}
	svc := NewRewardService(repo)

	reward, err := svc.Spend(context.Background(), 7, 2.5, "lego set")

	require.NoError(t, err)
	assert.Equal(t, domain.RewardSpend, reward.Type)
	assert.Equal(t, uint(7), reward.UserID)
	assert.Equal(t, 2.5, reward.Amount)
	assert.Equal(t, "lego set", reward.Note)
	assert.Len(t, repo.created, 1)
}

func TestRewardService_Spend_RejectsNonPositiveAmounts(t *testing.T) {
	repo := &fakeLedgerRepo{}
	svc := NewRewardService(repo)

	_, err := svc.Spend(context.Background(), 7, 0, "nothing")
	assert.ErrorIs(t, err, ErrNonPositiveAmount)

	_, err = svc.Spend(context.Background(), 7, -1, "refund")
	assert.ErrorIs(t, err, ErrNonPositiveAmount)

	// A rejected spend must never reach the ledger.
	assert.Empty(t, repo.created)
}

func TestRewardService_Payout(t *testing.T) {
	repo := &fakeLedgerRepo{}
	svc := NewRewardService(repo)

	reward, err := svc.Payout(context.Background(), 12, 5, "weekly allowance")

	require.NoError(t, err)
	assert.Equal(t, domain.RewardPayout, reward.Type)
	assert.Equal(t, uint(12), reward.UserID)
	assert.Equal(t, 5.0, reward.Amount)
}

func TestRewardService_Summary(t *testing.T) {
	repo := &fakeLedgerRepo{
		summary: domain.RewardSummary{
			TotalEarned:    10,
			TotalPaidOut:   4,
			TotalSpent:     3,
			CurrentBalance: 3,
		},
	}
	svc := NewRewardService(repo)

	summary, err := svc.Summary(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 3.0, summary.CurrentBalance)
}
