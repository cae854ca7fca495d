package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tubelens/domain/dto"
	"tubelens/infrastructure/filecsv"
	"tubelens/infrastructure/realtime"
	"tubelens/usecase"
)

// IVideoHandler defines the video search and collection HTTP handlers.
type IVideoHandler interface {
	CollectVideos(ctx *gin.Context)
	SearchVideos(ctx *gin.Context)
	GetVideoDetails(ctx *gin.Context)
	ListCachedVideos(ctx *gin.Context)
	ExportVideos(ctx *gin.Context)
	GetVideoCategories(ctx *gin.Context)
	GetVideoComments(ctx *gin.Context)
	CollectProgress(ctx *gin.Context)
}

type VideoHandler struct {
	videoUseCase usecase.IVideoUseCase
	progressHub  *realtime.Hub
}

func NewVideoHandler(videoUseCase usecase.IVideoUseCase, progressHub *realtime.Hub) IVideoHandler {
	return &VideoHandler{videoUseCase: videoUseCase, progressHub: progressHub}
}

// CollectVideos handles POST /api/videos/collect
func (h *VideoHandler) CollectVideos(ctx *gin.Context) {
	var req dto.CollectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
		return
	}

	var onProgress usecase.ProgressFunc
	if h.progressHub != nil {
		userName := ctx.GetString("user_name")
		onProgress = func(collected, target int) {
			h.progressHub.BroadcastProgress(userName, realtime.CollectProgressEvent{
				Keyword:   req.Keyword,
				Collected: collected,
				Target:    target,
			})
		}
	}

	response, err := h.videoUseCase.CollectVideosByKeyword(ctx.Request.Context(), &req, onProgress)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to collect videos",
			"message": err.Error(),
		})
		return
	}

	if h.progressHub != nil {
		h.progressHub.BroadcastProgress(ctx.GetString("user_name"), realtime.CollectProgressEvent{
			Keyword:   req.Keyword,
			Collected: response.Total,
			Target:    response.Total,
			Done:      true,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": response})
}

// CollectProgress handles GET /api/videos/collect/progress as an SSE stream.
func (h *VideoHandler) CollectProgress(ctx *gin.Context) {
	if h.progressHub == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Progress streaming not configured"})
		return
	}
	h.progressHub.Serve(ctx)
}

// SearchVideos handles GET /api/videos/search
func (h *VideoHandler) SearchVideos(ctx *gin.Context) {
	req := &dto.VideoSearchRequest{
		Keyword:         ctx.Query("keyword"),
		Order:           ctx.Query("order"),
		VideoDuration:   ctx.Query("video_duration"),
		PublishedAfter:  ctx.Query("published_after"),
		PublishedBefore: ctx.Query("published_before"),
		RegionCode:      ctx.Query("region_code"),
		CategoryID:      ctx.Query("category_id"),
	}
	if req.Keyword == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "keyword is required"})
		return
	}

	page, err := h.videoUseCase.SearchVideos(ctx.Request.Context(), req, ctx.Query("page_token"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to search videos",
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": page})
}

// GetVideoDetails handles GET /api/videos/:videoId
func (h *VideoHandler) GetVideoDetails(ctx *gin.Context) {
	videoID := ctx.Param("videoId")
	if videoID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Video ID is required"})
		return
	}

	video, err := h.videoUseCase.GetVideoDetails(ctx.Request.Context(), videoID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get video details",
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": video})
}

// ListCachedVideos handles GET /api/videos/cached
func (h *VideoHandler) ListCachedVideos(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "25"))

	videos, total, err := h.videoUseCase.ListCachedVideos(ctx.Request.Context(), page, pageSize)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list cached videos",
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": videos, "total": total})
}

// ExportVideos handles GET /api/videos/export, streaming the cached batch as CSV.
func (h *VideoHandler) ExportVideos(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "100"))

	videos, _, err := h.videoUseCase.ListCachedVideos(ctx.Request.Context(), page, pageSize)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to export videos",
			"message": err.Error(),
		})
		return
	}

	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", `attachment; filename="videos.csv"`)
	if err := filecsv.WriteVideos(ctx.Writer, videos); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to write CSV",
			"message": err.Error(),
		})
	}
}

// GetVideoCategories handles GET /api/videos/categories
func (h *VideoHandler) GetVideoCategories(ctx *gin.Context) {
	categories, err := h.videoUseCase.GetVideoCategories(ctx.Request.Context(), ctx.Query("region_code"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get video categories",
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": categories})
}

// GetVideoComments handles GET /api/videos/:videoId/comments
func (h *VideoHandler) GetVideoComments(ctx *gin.Context) {
	videoID := ctx.Param("videoId")
	if videoID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Video ID is required"})
		return
	}
	maxResults, _ := strconv.ParseInt(ctx.DefaultQuery("max_results", "100"), 10, 64)

	comments, err := h.videoUseCase.GetVideoComments(ctx.Request.Context(), videoID, maxResults)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get video comments",
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": comments})
}
