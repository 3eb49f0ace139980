package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	genUC "melodia/internal/application/generation/usecases"
	"melodia/internal/shared/logger"
	"melodia/internal/shared/utils"
)

type GenerationHandler struct {
	lyricsUC *genUC.GenerateLyricsUseCase
	musicUC  *genUC.GenerateMusicUseCase
	listUC   *genUC.ListGenerationsUseCase
	logger   logger.Interface
}

func NewGenerationHandler(
	lyricsUC *genUC.GenerateLyricsUseCase,
	musicUC *genUC.GenerateMusicUseCase,
	listUC *genUC.ListGenerationsUseCase,
	logger logger.Interface,
) *GenerationHandler {
	return &GenerationHandler{
		lyricsUC: lyricsUC,
		musicUC:  musicUC,
		listUC:   listUC,
		logger:   logger,
	}
}

type generateLyricsRequest struct {
	Theme    string `json:"theme" binding:"required"`
	Language string `json:"language"`
	Style    string `json:"style"`
	Idea     string `json:"idea"`
	Mood     string `json:"mood"`
}

type generateMusicRequest struct {
	Genre         string   `json:"genre" binding:"required"`
	Mood          string   `json:"mood"`
	Tempo         int      `json:"tempo"`
	Key           string   `json:"key"`
	Duration      int      `json:"duration" binding:"required,min=1"`
	Instrument    string   `json:"instrument"`
	TimeSignature string   `json:"time_signature"`
	Scale         string   `json:"scale"`
	Complexity    string   `json:"complexity"`
	Layers        []string `json:"layers"`
}

func (h *GenerationHandler) GenerateLyrics(c *gin.Context) {
	var req generateLyricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.lyricsUC.Execute(c.Request.Context(), genUC.GenerateLyricsCommand{
		UserSID:  userSID(c),
		Theme:    req.Theme,
		Language: req.Language,
		Style:    req.Style,
		Idea:     req.Idea,
		Mood:     req.Mood,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp := gin.H{
		"generation_sid": result.Generation.SID(),
		"lyrics":         result.Lyrics,
		"lines":          result.Lines,
	}
	if result.Remaining != nil {
		resp["remaining"] = *result.Remaining
	}
	utils.OKResponse(c, resp)
}

func (h *GenerationHandler) GenerateMusic(c *gin.Context) {
	var req generateMusicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.musicUC.Execute(c.Request.Context(), genUC.GenerateMusicCommand{
		UserSID:       userSID(c),
		Genre:         req.Genre,
		Mood:          req.Mood,
		Tempo:         req.Tempo,
		Key:           req.Key,
		Duration:      req.Duration,
		Instrument:    req.Instrument,
		TimeSignature: req.TimeSignature,
		Scale:         req.Scale,
		Complexity:    req.Complexity,
		Layers:        req.Layers,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp := gin.H{
		"generation_sid": result.Generation.SID(),
		"descriptor":     result.Descriptor,
	}
	if result.Remaining != nil {
		resp["remaining"] = *result.Remaining
	}
	utils.OKResponse(c, resp)
}

func (h *GenerationHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, err := h.listUC.Execute(c.Request.Context(), genUC.ListGenerationsCommand{
		UserSID: userSID(c),
		Kind:    c.Query("kind"),
		Limit:   limit,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	responses := make([]gin.H, 0, len(items))
	for _, g := range items {
		responses = append(responses, gin.H{
			"sid":        g.SID(),
			"kind":       g.Kind(),
			"prompt":     g.Prompt(),
			"model":      g.Model(),
			"result_url": g.ResultURL(),
			"metadata":   g.Metadata(),
			"created_at": g.CreatedAt(),
		})
	}
	utils.OKResponse(c, responses)
}
