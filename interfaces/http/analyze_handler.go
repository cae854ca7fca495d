package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tubelens/domain/dto"
	"tubelens/usecase"
)

// IAnalyzeHandler defines the AI analysis HTTP handlers.
type IAnalyzeHandler interface {
	Strategy(ctx *gin.Context)
	Growth(ctx *gin.Context)
	Consulting(ctx *gin.Context)
	Sentiment(ctx *gin.Context)
	Thumbnail(ctx *gin.Context)
	ShortsScript(ctx *gin.Context)
	Titles(ctx *gin.Context)
	ThumbnailText(ctx *gin.Context)
	Trend(ctx *gin.Context)
	History(ctx *gin.Context)
}

type AnalyzeHandler struct {
	analyzeUseCase usecase.IAnalyzeUseCase
}

func NewAnalyzeHandler(analyzeUseCase usecase.IAnalyzeUseCase) IAnalyzeHandler {
	return &AnalyzeHandler{analyzeUseCase: analyzeUseCase}
}

func currentUser(ctx *gin.Context) string {
	return ctx.GetString("user_name")
}

// Strategy handles POST /api/analyze/strategy
func (h *AnalyzeHandler) Strategy(ctx *gin.Context) {
	var req dto.ChannelAnalyzeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}
	result, err := h.analyzeUseCase.AnalyzeStrategy(ctx.Request.Context(), currentUser(ctx), req.ChannelID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze strategy", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// Growth handles POST /api/analyze/growth
func (h *AnalyzeHandler) Growth(ctx *gin.Context) {
	var req dto.ChannelAnalyzeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}
	result, err := h.analyzeUseCase.AnalyzeGrowth(ctx.Request.Context(), currentUser(ctx), req.ChannelID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze growth", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// Consulting handles POST /api/analyze/consulting
func (h *AnalyzeHandler) Consulting(ctx *gin.Context) {
	var req dto.ChannelAnalyzeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}
	result, err := h.analyzeUseCase.ConsultingReport(ctx.Request.Context(), currentUser(ctx), req.ChannelID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build consulting report", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// Sentiment handles POST /api/analyze/sentiment
func (h *AnalyzeHandler) Sentiment(ctx *gin.Context) {
	var req dto.VideoAnalyzeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}
	result, err := h.analyzeUseCase.CommentSentiment(ctx.Request.Context(), currentUser(ctx), req.VideoID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze sentiment", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// Thumbnail handles POST /api/analyze/thumbnail
func (h *AnalyzeHandler) Thumbnail(ctx *gin.Context) {
	var req dto.VideoAnalyzeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}
	result, err := h.analyzeUseCase.AnalyzeThumbnail(ctx.Request.Context(), currentUser(ctx), req.VideoID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze thumbnail", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// ShortsScript handles POST /api/generate/shorts-script
func (h *AnalyzeHandler) ShortsScript(ctx *gin.Context) {
	var req dto.TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}
	result, err := h.analyzeUseCase.GenerateShortsScript(ctx.Request.Context(), currentUser(ctx), &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate shorts script", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// Titles handles POST /api/generate/titles
func (h *AnalyzeHandler) Titles(ctx *gin.Context) {
	var req dto.TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}
	result, err := h.analyzeUseCase.SuggestTitles(ctx.Request.Context(), currentUser(ctx), &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to suggest titles", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// ThumbnailText handles POST /api/generate/thumbnail-text
func (h *AnalyzeHandler) ThumbnailText(ctx *gin.Context) {
	var req dto.TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}
	result, err := h.analyzeUseCase.SuggestThumbnailText(ctx.Request.Context(), currentUser(ctx), &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to suggest thumbnail text", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// Trend handles POST /api/analyze/trend
func (h *AnalyzeHandler) Trend(ctx *gin.Context) {
	var req dto.TrendRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}
	result, err := h.analyzeUseCase.AnalyzeTrend(ctx.Request.Context(), currentUser(ctx), &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze trend", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// History handles GET /api/analyze/history
func (h *AnalyzeHandler) History(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	records, err := h.analyzeUseCase.History(ctx.Request.Context(), currentUser(ctx), limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": records})
}
