package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	videoUC "melodia/internal/application/video/usecases"
	"melodia/internal/shared/logger"
	"melodia/internal/shared/utils"
)

type VideoHandler struct {
	renderUC *videoUC.RenderVideoUseCase
	logger   logger.Interface
}

func NewVideoHandler(renderUC *videoUC.RenderVideoUseCase, logger logger.Interface) *VideoHandler {
	return &VideoHandler{renderUC: renderUC, logger: logger}
}

type renderVideoRequest struct {
	Composition string      `json:"composition" binding:"required"`
	Title       string      `json:"title"`
	AudioURL    string      `json:"audio_url"`
	Lines       interface{} `json:"lines"`
	ThemeName   string      `json:"theme_name"`
	Quality     string      `json:"quality"`
}

func (h *VideoHandler) Render(c *gin.Context) {
	var req renderVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.renderUC.Execute(c.Request.Context(), videoUC.RenderVideoCommand{
		UserSID:     userSID(c),
		Composition: req.Composition,
		Title:       req.Title,
		AudioURL:    req.AudioURL,
		Lines:       req.Lines,
		ThemeName:   req.ThemeName,
		Quality:     req.Quality,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, gin.H{
		"job_sid":   result.JobSID,
		"video_url": result.VideoURL,
	})
}
