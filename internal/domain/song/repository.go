package song

import (
	"context"
	"time"
)

// Filter narrows marketplace listings. Empty/"All" values match everything.
type Filter struct {
	Genre       string
	Mood        string
	LicenseType string
	Search      string
	Page        int
	PageSize    int
	SortBy      string
	SortDesc    bool
}

// RatingSummary is the aggregate review data attached to a listing.
type RatingSummary struct {
	SongID        uint
	AverageRating float64
	ReviewCount   int64
}

// Repository defines persistence operations for songs and reviews.
// Implementations return (nil, nil) when no record matches.
type Repository interface {
	Create(ctx context.Context, s *Song) error
	GetByID(ctx context.Context, songID uint) (*Song, error)
	GetBySID(ctx context.Context, sid string) (*Song, error)

	// ListPublic returns public songs matching the filter plus the total count.
	ListPublic(ctx context.Context, filter Filter) ([]*Song, int64, error)

	// CountByAuthorSince counts songs owned by authorID created at or after
	// since. This is the usage-event aggregation behind the monthly song
	// quota: consumption is derived by counting rows, never by a running
	// counter, so edits and backfills cannot drift the tally.
	CountByAuthorSince(ctx context.Context, authorID uint, since time.Time) (int64, error)

	// RatingSummaries returns review aggregates for the given song IDs.
	RatingSummaries(ctx context.Context, songIDs []uint) (map[uint]RatingSummary, error)

	CreateReview(ctx context.Context, r *Review) error
}
