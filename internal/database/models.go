package database

import "time"

// FrameResult is one decoded frame of a simulation campaign.
type FrameResult struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Campaign     string    `gorm:"index;size:64" json:"campaign"`
	Frame        int       `json:"frame"`
	SlotBytes    int       `json:"slot_bytes"`
	TrueMode     int       `json:"true_mode"`
	DetectedMode int       `json:"detected_mode"`
	BFI          int       `gorm:"index" json:"bfi"`
	Injected     int       `json:"injected"`
	Corrected    int       `json:"corrected"`
	EPMRMatch    bool      `json:"epmr_match"`
	DataIntact   bool      `json:"data_intact"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (FrameResult) TableName() string {
	return "frame_results"
}

// Degraded reports whether the frame came back anything but clean.
func (r FrameResult) Degraded() bool {
	return r.BFI != 0
}
