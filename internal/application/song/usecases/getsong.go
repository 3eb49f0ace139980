package usecases

import (
	"context"

	"melodia/internal/domain/song"
	"melodia/internal/shared/errors"
	"melodia/internal/shared/logger"
)

type GetSongCommand struct {
	SongSID string
}

// GetSongUseCase fetches a single song with its rating aggregate.
type GetSongUseCase struct {
	songRepo song.Repository
	logger   logger.Interface
}

func NewGetSongUseCase(songRepo song.Repository, logger logger.Interface) *GetSongUseCase {
	return &GetSongUseCase{songRepo: songRepo, logger: logger}
}

func (uc *GetSongUseCase) Execute(ctx context.Context, cmd GetSongCommand) (*ListedSong, error) {
	s, err := uc.songRepo.GetBySID(ctx, cmd.SongSID)
	if err != nil {
		uc.logger.Errorw("failed to get song by SID", "song_sid", cmd.SongSID, "error", err)
		return nil, errors.NewInternalError("failed to get song")
	}
	if s == nil {
		return nil, errors.NewNotFoundError("song not found")
	}

	result := &ListedSong{Song: s}
	summaries, err := uc.songRepo.RatingSummaries(ctx, []uint{s.ID()})
	if err != nil {
		uc.logger.Warnw("failed to load rating summary", "song_sid", cmd.SongSID, "error", err)
		return result, nil
	}
	if summary, ok := summaries[s.ID()]; ok {
		result.AverageRating = summary.AverageRating
		result.ReviewCount = summary.ReviewCount
	}
	return result, nil
}
