package handlers

import (
	"github.com/gin-gonic/gin"

	subUC "melodia/internal/application/subscription/usecases"
	"melodia/internal/domain/subscription"
	"melodia/internal/shared/mapper"
	"melodia/internal/shared/utils"
)

type PlanHandler struct {
	listPlansUC *subUC.ListPlansUseCase
}

func NewPlanHandler(listPlansUC *subUC.ListPlansUseCase) *PlanHandler {
	return &PlanHandler{listPlansUC: listPlansUC}
}

type planLimitsResponse struct {
	SongsPerMonth         int    `json:"songs_per_month"`
	PracticeMinutesPerDay int    `json:"practice_minutes_per_day"`
	AudioQuality          string `json:"audio_quality"`
	AIGenerationsPerMonth int    `json:"ai_generations_per_month"`
}

type planResponse struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Price    int64              `json:"price"`
	Currency string             `json:"currency"`
	Duration string             `json:"duration"`
	Features []string           `json:"features,omitempty"`
	Limits   planLimitsResponse `json:"limits"`
}

func toPlanResponse(p subscription.Plan) planResponse {
	return planResponse{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Currency: p.Currency,
		Duration: string(p.Duration),
		Features: p.Features,
		Limits: planLimitsResponse{
			SongsPerMonth:         p.Limits.SongsPerMonth,
			PracticeMinutesPerDay: p.Limits.PracticeMinutesPerDay,
			AudioQuality:          p.Limits.AudioQuality,
			AIGenerationsPerMonth: p.Limits.AIGenerationsPerMonth,
		},
	}
}

func (h *PlanHandler) List(c *gin.Context) {
	plans := h.listPlansUC.Execute(c.Request.Context())

	utils.OKResponse(c, mapper.MapSlice(plans, toPlanResponse))
}
