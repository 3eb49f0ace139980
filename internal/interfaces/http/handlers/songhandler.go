package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	songUC "melodia/internal/application/song/usecases"
	"melodia/internal/domain/song"
	"melodia/internal/shared/logger"
	"melodia/internal/shared/utils"
)

type SongHandler struct {
	createUC *songUC.CreateSongUseCase
	listUC   *songUC.ListSongsUseCase
	getUC    *songUC.GetSongUseCase
	reviewUC *songUC.CreateReviewUseCase
	logger   logger.Interface
}

func NewSongHandler(
	createUC *songUC.CreateSongUseCase,
	listUC *songUC.ListSongsUseCase,
	getUC *songUC.GetSongUseCase,
	reviewUC *songUC.CreateReviewUseCase,
	logger logger.Interface,
) *SongHandler {
	return &SongHandler{
		createUC: createUC,
		listUC:   listUC,
		getUC:    getUC,
		reviewUC: reviewUC,
		logger:   logger,
	}
}

type createSongRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	AudioURL    string   `json:"audio_url" binding:"required"`
	CoverImage  string   `json:"cover_image"`
	Duration    int      `json:"duration" binding:"required,min=1"`
	Genre       string   `json:"genre"`
	Mood        string   `json:"mood"`
	Language    string   `json:"language"`
	Tempo       int      `json:"tempo"`
	Key         string   `json:"key"`
	Price       int64    `json:"price"`
	LicenseType string   `json:"license_type"`
	Tags        []string `json:"tags"`
	IsPublic    bool     `json:"is_public"`
}

type createReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type songResponse struct {
	SID           string    `json:"sid"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	AudioURL      string    `json:"audio_url"`
	CoverImage    string    `json:"cover_image,omitempty"`
	Duration      int       `json:"duration"`
	Genre         string    `json:"genre,omitempty"`
	Mood          string    `json:"mood,omitempty"`
	Language      string    `json:"language,omitempty"`
	Tempo         int       `json:"tempo,omitempty"`
	Key           string    `json:"key,omitempty"`
	Price         int64     `json:"price"`
	LicenseType   string    `json:"license_type,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	IsPublic      bool      `json:"is_public"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int64     `json:"review_count"`
	CreatedAt     time.Time `json:"created_at"`
}

func toSongResponse(s *song.Song, avgRating float64, reviewCount int64) songResponse {
	return songResponse{
		SID:           s.SID(),
		Title:         s.Title(),
		Description:   s.Description(),
		AudioURL:      s.AudioURL(),
		CoverImage:    s.CoverImage(),
		Duration:      s.Duration(),
		Genre:         s.Genre(),
		Mood:          s.Mood(),
		Language:      s.Language(),
		Tempo:         s.Tempo(),
		Key:           s.Key(),
		Price:         s.Price(),
		LicenseType:   s.LicenseType(),
		Tags:          s.Tags(),
		IsPublic:      s.IsPublic(),
		AverageRating: avgRating,
		ReviewCount:   reviewCount,
		CreatedAt:     s.CreatedAt(),
	}
}

func (h *SongHandler) Create(c *gin.Context) {
	var req createSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.createUC.Execute(c.Request.Context(), songUC.CreateSongCommand{
		UserSID:     userSID(c),
		Title:       req.Title,
		Description: req.Description,
		AudioURL:    req.AudioURL,
		CoverImage:  req.CoverImage,
		Duration:    req.Duration,
		Genre:       req.Genre,
		Mood:        req.Mood,
		Language:    req.Language,
		Tempo:       req.Tempo,
		Key:         req.Key,
		Price:       req.Price,
		LicenseType: req.LicenseType,
		Tags:        req.Tags,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toSongResponse(s, 0, 0), "song created")
}

func (h *SongHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	result, err := h.listUC.Execute(c.Request.Context(), songUC.ListSongsCommand{
		Genre:       c.Query("genre"),
		Mood:        c.Query("mood"),
		LicenseType: c.Query("license_type"),
		Search:      c.Query("search"),
		Page:        page,
		PageSize:    pageSize,
		SortBy:      c.Query("sort_by"),
		SortDesc:    c.DefaultQuery("sort_order", "desc") == "desc",
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]songResponse, 0, len(result.Songs))
	for _, listed := range result.Songs {
		items = append(items, toSongResponse(listed.Song, listed.AverageRating, listed.ReviewCount))
	}
	utils.ListSuccessResponse(c, items, result.Total, result.Page, result.PageSize)
}

func (h *SongHandler) Get(c *gin.Context) {
	listed, err := h.getUC.Execute(c.Request.Context(), songUC.GetSongCommand{
		SongSID: c.Param("id"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c, toSongResponse(listed.Song, listed.AverageRating, listed.ReviewCount))
}

func (h *SongHandler) CreateReview(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.reviewUC.Execute(c.Request.Context(), songUC.CreateReviewCommand{
		UserSID: userSID(c),
		SongSID: c.Param("id"),
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"rating":     review.Rating(),
		"comment":    review.Comment(),
		"created_at": review.CreatedAt(),
	}, "review created")
}
