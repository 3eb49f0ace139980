package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	practiceUC "melodia/internal/application/practice/usecases"
	"melodia/internal/domain/practice"
	"melodia/internal/shared/logger"
	"melodia/internal/shared/mapper"
	"melodia/internal/shared/utils"
)

type PracticeHandler struct {
	recordUC *practiceUC.RecordSessionUseCase
	listUC   *practiceUC.ListSessionsUseCase
	statsUC  *practiceUC.GetStatsUseCase
	logger   logger.Interface
}

func NewPracticeHandler(
	recordUC *practiceUC.RecordSessionUseCase,
	listUC *practiceUC.ListSessionsUseCase,
	statsUC *practiceUC.GetStatsUseCase,
	logger logger.Interface,
) *PracticeHandler {
	return &PracticeHandler{
		recordUC: recordUC,
		listUC:   listUC,
		statsUC:  statsUC,
		logger:   logger,
	}
}

type recordSessionRequest struct {
	SessionType    string  `json:"session_type" binding:"required"`
	Duration       int     `json:"duration" binding:"required,min=1"`
	PitchScore     float64 `json:"pitch_score"`
	RhythmScore    float64 `json:"rhythm_score"`
	StabilityScore float64 `json:"stability_score"`
	OverallScore   float64 `json:"overall_score"`
	Notes          string  `json:"notes"`
	AudioURL       string  `json:"audio_url"`
}

type sessionResponse struct {
	SID            string    `json:"sid"`
	SessionType    string    `json:"session_type"`
	Duration       int       `json:"duration"`
	PitchScore     float64   `json:"pitch_score"`
	RhythmScore    float64   `json:"rhythm_score"`
	StabilityScore float64   `json:"stability_score"`
	OverallScore   float64   `json:"overall_score"`
	Notes          string    `json:"notes,omitempty"`
	AudioURL       string    `json:"audio_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func toSessionResponse(s *practice.Session) sessionResponse {
	return sessionResponse{
		SID:            s.SID(),
		SessionType:    s.SessionType(),
		Duration:       s.Duration(),
		PitchScore:     s.PitchScore(),
		RhythmScore:    s.RhythmScore(),
		StabilityScore: s.StabilityScore(),
		OverallScore:   s.OverallScore(),
		Notes:          s.Notes(),
		AudioURL:       s.AudioURL(),
		CreatedAt:      s.CreatedAt(),
	}
}

func (h *PracticeHandler) Record(c *gin.Context) {
	var req recordSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.recordUC.Execute(c.Request.Context(), practiceUC.RecordSessionCommand{
		UserSID:        userSID(c),
		SessionType:    req.SessionType,
		Duration:       req.Duration,
		PitchScore:     req.PitchScore,
		RhythmScore:    req.RhythmScore,
		StabilityScore: req.StabilityScore,
		OverallScore:   req.OverallScore,
		Notes:          req.Notes,
		AudioURL:       req.AudioURL,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp := gin.H{"session": toSessionResponse(result.Session)}
	if result.RemainingMinutes != nil {
		resp["remaining_minutes"] = *result.RemainingMinutes
	}
	utils.CreatedResponse(c, resp, "practice session recorded")
}

func (h *PracticeHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	sessions, err := h.listUC.Execute(c.Request.Context(), practiceUC.ListSessionsCommand{
		UserSID:     userSID(c),
		SessionType: c.Query("type"),
		Limit:       limit,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, mapper.MapSlice(sessions, toSessionResponse))
}

func (h *PracticeHandler) Stats(c *gin.Context) {
	stats, err := h.statsUC.Execute(c.Request.Context(), practiceUC.GetStatsCommand{
		UserSID:     userSID(c),
		SessionType: c.Query("type"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, gin.H{
		"total_sessions":    stats.TotalSessions,
		"total_duration":    stats.TotalDuration,
		"avg_pitch_score":   stats.AvgPitchScore,
		"avg_rhythm_score":  stats.AvgRhythmScore,
		"avg_stability":     stats.AvgStability,
		"avg_overall_score": stats.AvgOverallScore,
	})
}
