package usecases

import (
	"context"

	"melodia/internal/domain/song"
	"melodia/internal/shared/constants"
	"melodia/internal/shared/errors"
	"melodia/internal/shared/logger"
)

type ListSongsCommand struct {
	Genre       string
	Mood        string
	LicenseType string
	Search      string
	Page        int
	PageSize    int
	SortBy      string
	SortDesc    bool
}

// ListedSong pairs a marketplace song with its review aggregates.
type ListedSong struct {
	Song          *song.Song
	AverageRating float64
	ReviewCount   int64
}

type ListSongsResult struct {
	Songs    []ListedSong
	Total    int64
	Page     int
	PageSize int
}

// ListSongsUseCase serves the public marketplace listing with filters,
// search, pagination, and per-song rating aggregates.
type ListSongsUseCase struct {
	songRepo song.Repository
	logger   logger.Interface
}

func NewListSongsUseCase(songRepo song.Repository, logger logger.Interface) *ListSongsUseCase {
	return &ListSongsUseCase{songRepo: songRepo, logger: logger}
}

func (uc *ListSongsUseCase) Execute(ctx context.Context, cmd ListSongsCommand) (*ListSongsResult, error) {
	page := cmd.Page
	if page < 1 {
		page = constants.DefaultPage
	}
	pageSize := cmd.PageSize
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	filter := song.Filter{
		Genre:       cmd.Genre,
		Mood:        cmd.Mood,
		LicenseType: cmd.LicenseType,
		Search:      cmd.Search,
		Page:        page,
		PageSize:    pageSize,
		SortBy:      cmd.SortBy,
		SortDesc:    cmd.SortDesc,
	}

	songs, total, err := uc.songRepo.ListPublic(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list songs", "error", err)
		return nil, errors.NewInternalError("failed to list songs")
	}

	songIDs := make([]uint, 0, len(songs))
	for _, s := range songs {
		songIDs = append(songIDs, s.ID())
	}
	summaries, err := uc.songRepo.RatingSummaries(ctx, songIDs)
	if err != nil {
		uc.logger.Errorw("failed to load rating summaries", "error", err)
		return nil, errors.NewInternalError("failed to list songs")
	}

	listed := make([]ListedSong, 0, len(songs))
	for _, s := range songs {
		item := ListedSong{Song: s}
		if summary, ok := summaries[s.ID()]; ok {
			item.AverageRating = summary.AverageRating
			item.ReviewCount = summary.ReviewCount
		}
		listed = append(listed, item)
	}

	return &ListSongsResult{Songs: listed, Total: total, Page: page, PageSize: pageSize}, nil
}
