package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"melodia/internal/shared/constants"
)

// SongModel represents the database persistence model for songs.
// AuthorID plus CreatedAt back the monthly creation quota, so both carry
// indexes that keep the count query cheap.
type SongModel struct {
	ID          uint   `gorm:"primarykey"`
	SID         string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: song_xxx"`
	Title       string `gorm:"not null;size:255"`
	Description string `gorm:"size:2000"`
	AudioURL    string `gorm:"not null;size:500"`
	CoverImage  string `gorm:"size:500"`
	Duration    int    `gorm:"not null;comment:seconds"`
	Genre       string `gorm:"size:50;index"`
	Mood        string `gorm:"size:50;index"`
	Language    string `gorm:"size:50"`
	Tempo       int
	Key         string `gorm:"size:10;column:song_key"`
	Price       int64  `gorm:"not null;default:0"`
	LicenseType string `gorm:"size:50;index"`
	Tags        datatypes.JSON
	AuthorID    uint      `gorm:"not null;index:idx_author_created,priority:1"`
	IsPublic    bool      `gorm:"not null;default:true;index"`
	CreatedAt   time.Time `gorm:"index:idx_author_created,priority:2"`
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM.
func (SongModel) TableName() string {
	return constants.TableSongs
}

// ReviewModel represents the database persistence model for song reviews.
type ReviewModel struct {
	ID        uint   `gorm:"primarykey"`
	SongID    uint   `gorm:"not null;uniqueIndex:idx_song_user_review,priority:1"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_song_user_review,priority:2"`
	Rating    int    `gorm:"not null"`
	Comment   string `gorm:"size:2000"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM.
func (ReviewModel) TableName() string {
	return constants.TableReviews
}
