package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// FrameResultRepository provides database operations for campaign
// frame results.
type FrameResultRepository struct {
	db *gorm.DB
}

func NewFrameResultRepository(db *gorm.DB) *FrameResultRepository {
	return &FrameResultRepository{db: db}
}

// Insert stores a single frame result.
func (r *FrameResultRepository) Insert(res *FrameResult) error {
	if res == nil {
		return fmt.Errorf("frame result cannot be nil")
	}
	res.CreatedAt = time.Now()
	return r.db.Create(res).Error
}

// InsertBatch stores a whole campaign's results in one transaction.
func (r *FrameResultRepository) InsertBatch(results []FrameResult) error {
	if len(results) == 0 {
		return nil
	}
	now := time.Now()
	for i := range results {
		results[i].CreatedAt = now
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(results, 200).Error
	})
}

// CountByBFI returns how many frames of the campaign ended with the
// given bad-frame indication.
func (r *FrameResultRepository) CountByBFI(campaign string, bfi int) (int64, error) {
	var n int64
	err := r.db.Model(&FrameResult{}).
		Where("campaign = ? AND bfi = ?", campaign, bfi).
		Count(&n).Error
	return n, err
}

// CampaignSummary aggregates one campaign's stored outcomes.
type CampaignSummary struct {
	Frames  int64
	Clean   int64
	Fatal   int64
	Partial int64
	Intact  int64
}

// Summary computes the aggregate counters for a campaign.
func (r *FrameResultRepository) Summary(campaign string) (CampaignSummary, error) {
	var s CampaignSummary
	err := r.db.Model(&FrameResult{}).
		Where("campaign = ?", campaign).Count(&s.Frames).Error
	if err != nil {
		return s, err
	}
	for bfi, dst := range map[int]*int64{0: &s.Clean, 1: &s.Fatal, 2: &s.Partial} {
		if *dst, err = r.CountByBFI(campaign, bfi); err != nil {
			return s, err
		}
	}
	err = r.db.Model(&FrameResult{}).
		Where("campaign = ? AND data_intact = ?", campaign, true).
		Count(&s.Intact).Error
	return s, err
}

// DeleteCampaign removes every stored frame of a campaign.
func (r *FrameResultRepository) DeleteCampaign(campaign string) error {
	return r.db.Where("campaign = ?", campaign).Delete(&FrameResult{}).Error
}
