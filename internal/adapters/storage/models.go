package storage

import "time"

// TimeboxModel is the GORM model for the timeboxes table
type TimeboxModel struct {
	AfterTimeStoppedAt *time.Time `gorm:"default:null"`
	ArchivedAt         *time.Time `gorm:"default:null;index:idx_timeboxes_archived_at"`
	AutoStoppedAt      *time.Time `gorm:"default:null"`
	CanceledAt         *time.Time `gorm:"default:null"`
	CompletedAt        *time.Time `gorm:"default:null"`
	CreatedAt          time.Time  `gorm:"not null;index:idx_timeboxes_created_at"`
	DisplayOrder       *int       `gorm:"default:null;index:idx_timeboxes_display_order"`
	ExternalRef        string     `gorm:"not null;default:''"`
	FinishedAt         *time.Time `gorm:"default:null"`
	ID                 int64      `gorm:"primaryKey;autoIncrement"`
	IntendedDuration   int64      `gorm:"not null;check:intended_duration > 0"`
	Intention          string     `gorm:"not null"`
	Notes              *string    `gorm:"default:null"`
	PausedAt           *time.Time `gorm:"default:null"`
	StartedAt          *time.Time `gorm:"default:null"`
	Status             string     `gorm:"not null;default:'not_started';index:idx_timeboxes_status;check:status IN ('not_started','in_progress','paused','stopped','completed','cancelled')"`
	UpdatedAt          time.Time  `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (TimeboxModel) TableName() string { return "timeboxes" }

// SessionModel is the GORM model for the sessions table
type SessionModel struct {
	CancelledAt *time.Time
	CreatedAt   time.Time
	EndReason   *string
	ExpiredAt   *time.Time
	ID          int64 `gorm:"primaryKey;autoIncrement"`
	StartedAt   time.Time
	StoppedAt   *time.Time
	TimeboxID   int64
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string { return "sessions" }

// TimeboxChangeModel is the GORM model for the timebox_change_log table
type TimeboxChangeModel struct {
	ID                       int64 `gorm:"primaryKey;autoIncrement"`
	NewIntendedDuration      *int64
	PreviousIntendedDuration *int64
	PreviousIntentionTitle   *string
	PreviousNoteContent      *string
	TimeboxID                int64
	UpdatedAt                time.Time
	UpdatedIntentionTitle    *string
	UpdatedNoteContent       *string
}

// TableName specifies the table name for GORM
func (TimeboxChangeModel) TableName() string { return "timebox_change_log" }

// SettingModel is the GORM model for the key/value settings table
type SettingModel struct {
	Key       string `gorm:"primaryKey"`
	UpdatedAt time.Time
	Value     string `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (SettingModel) TableName() string { return "settings" }
