package song

import (
	"fmt"
	"time"
)

// Review is a user rating attached to a marketplace song.
type Review struct {
	reviewID  uint
	songID    uint
	userID    uint
	rating    int
	comment   string
	createdAt time.Time
}

// NewReview creates a review. Rating is 1-5.
func NewReview(songID, userID uint, rating int, comment string) (*Review, error) {
	if songID == 0 || userID == 0 {
		return nil, fmt.Errorf("song ID and user ID are required")
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	return &Review{
		songID:    songID,
		userID:    userID,
		rating:    rating,
		comment:   comment,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructReview reconstructs a review from persistence.
func ReconstructReview(reviewID, songID, userID uint, rating int, comment string, createdAt time.Time) (*Review, error) {
	if reviewID == 0 {
		return nil, fmt.Errorf("review ID cannot be zero")
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}
	return &Review{
		reviewID:  reviewID,
		songID:    songID,
		userID:    userID,
		rating:    rating,
		comment:   comment,
		createdAt: createdAt,
	}, nil
}

func (r *Review) ID() uint             { return r.reviewID }
func (r *Review) SongID() uint         { return r.songID }
func (r *Review) UserID() uint         { return r.userID }
func (r *Review) Rating() int          { return r.rating }
func (r *Review) Comment() string      { return r.comment }
func (r *Review) CreatedAt() time.Time { return r.createdAt }
