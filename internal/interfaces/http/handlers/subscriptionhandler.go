package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	entitlement "melodia/internal/application/entitlement/usecases"
	subUC "melodia/internal/application/subscription/usecases"
	"melodia/internal/domain/subscription"
	"melodia/internal/shared/constants"
	"melodia/internal/shared/logger"
	"melodia/internal/shared/mapper"
	"melodia/internal/shared/utils"
)

type SubscriptionHandler struct {
	createUC *subUC.CreateSubscriptionUseCase
	cancelUC *subUC.CancelSubscriptionUseCase
	statusUC *subUC.GetSubscriptionStatusUseCase
	listUC   *subUC.ListSubscriptionsUseCase
	guard    *entitlement.Guard
	logger   logger.Interface
}

func NewSubscriptionHandler(
	createUC *subUC.CreateSubscriptionUseCase,
	cancelUC *subUC.CancelSubscriptionUseCase,
	statusUC *subUC.GetSubscriptionStatusUseCase,
	listUC *subUC.ListSubscriptionsUseCase,
	guard *entitlement.Guard,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createUC: createUC,
		cancelUC: cancelUC,
		statusUC: statusUC,
		listUC:   listUC,
		guard:    guard,
		logger:   logger,
	}
}

// userSID extracts the authenticated user's SID set by the auth middleware.
func userSID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyUserSID)
}

type createSubscriptionRequest struct {
	PlanID string `json:"plan_id" binding:"required"`
}

type subscriptionResponse struct {
	SID         string     `json:"sid"`
	PlanID      string     `json:"plan_id"`
	Status      string     `json:"status"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Amount      int64      `json:"amount"`
	Currency    string     `json:"currency,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toSubscriptionResponse(s *subscription.Subscription) subscriptionResponse {
	return subscriptionResponse{
		SID:         s.SID(),
		PlanID:      s.PlanID(),
		Status:      string(s.Status()),
		StartDate:   s.StartDate(),
		EndDate:     s.EndDate(),
		Amount:      s.Amount(),
		Currency:    s.Currency(),
		CancelledAt: s.CancelledAt(),
		CreatedAt:   s.CreatedAt(),
	}
}

func (h *SubscriptionHandler) Create(c *gin.Context) {
	var req createSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), subUC.CreateSubscriptionCommand{
		UserSID: userSID(c),
		PlanID:  req.PlanID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"subscription": toSubscriptionResponse(result.Subscription),
		"plan":         toPlanResponse(result.Plan),
	}, "subscription created")
}

func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	err := h.cancelUC.Execute(c.Request.Context(), subUC.CancelSubscriptionCommand{
		UserSID:         userSID(c),
		SubscriptionSID: c.Param("id"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "subscription cancelled", nil)
}

func (h *SubscriptionHandler) Status(c *gin.Context) {
	result, err := h.statusUC.Execute(c.Request.Context(), subUC.GetSubscriptionStatusCommand{
		UserSID: userSID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp := gin.H{
		"plan":       toPlanResponse(result.Plan),
		"is_premium": result.IsPremium,
	}
	if result.Subscription != nil {
		resp["subscription"] = toSubscriptionResponse(result.Subscription)
	}
	utils.OKResponse(c, resp)
}

func (h *SubscriptionHandler) History(c *gin.Context) {
	subs, err := h.listUC.Execute(c.Request.Context(), subUC.ListSubscriptionsCommand{
		UserSID: userSID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, mapper.MapSlice(subs, toSubscriptionResponse))
}

// Entitlements aggregates the guard's decisions for the UI so it can grey
// out actions before the user hits a wall. The plan itself is served from
// the Redis plan cache when warm.
func (h *SubscriptionHandler) Entitlements(c *gin.Context) {
	ctx := c.Request.Context()
	sid := userSID(c)

	plan, isPremium, err := h.statusUC.ResolvePlan(ctx, sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, gin.H{
		"plan":          toPlanResponse(plan),
		"is_premium":    isPremium,
		"create_song":   h.guard.CanCreateSong(ctx, sid),
		"ai_generation": h.guard.CanUseAIGeneration(ctx, sid),
		"practice":      h.guard.CanPracticeMore(ctx, sid),
	})
}
