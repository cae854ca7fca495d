package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tubelens/domain/dto"
	"tubelens/domain/model"
	"tubelens/usecase"
)

type MockYouTube struct {
	mock.Mock
}

func (m *MockYouTube) SearchPage(ctx context.Context, req *dto.VideoSearchRequest, pageToken string) (*dto.VideoPage, error) {
	args := m.Called(ctx, req, pageToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.VideoPage), args.Error(1)
}

func (m *MockYouTube) VideoDetails(ctx context.Context, ids []string) ([]model.VideoRecord, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VideoRecord), args.Error(1)
}

func (m *MockYouTube) ChannelDetails(ctx context.Context, channelID string) (*model.ChannelRecord, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChannelRecord), args.Error(1)
}

func (m *MockYouTube) ChannelVideos(ctx context.Context, channelID string, maxResults int64) ([]model.VideoRecord, error) {
	args := m.Called(ctx, channelID, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VideoRecord), args.Error(1)
}

func (m *MockYouTube) VideoCategories(ctx context.Context, regionCode string) ([]model.VideoCategory, error) {
	args := m.Called(ctx, regionCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VideoCategory), args.Error(1)
}

func (m *MockYouTube) VideoComments(ctx context.Context, videoID string, maxResults int64) ([]model.VideoComment, error) {
	args := m.Called(ctx, videoID, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VideoComment), args.Error(1)
}

type MockVideoCache struct {
	mock.Mock
}

func (m *MockVideoCache) GetVideo(ctx context.Context, videoID string) (*model.VideoRecord, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VideoRecord), args.Error(1)
}

func (m *MockVideoCache) UpsertVideos(ctx context.Context, videos []model.VideoRecord) error {
	args := m.Called(ctx, videos)
	return args.Error(0)
}

func (m *MockVideoCache) ListVideos(ctx context.Context, limit, offset int) ([]model.VideoRecord, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.VideoRecord), args.Get(1).(int64), args.Error(2)
}

func videoPage(prefix string, count int, nextToken string) *dto.VideoPage {
	items := make([]model.VideoRecord, count)
	for i := range items {
		items[i] = model.VideoRecord{ID: fmt.Sprintf("%s-%d", prefix, i)}
	}
	return &dto.VideoPage{Items: items, NextPageToken: nextToken}
}

func TestCollectVideosByKeyword_TruncatesToTarget(t *testing.T) {
	mockYouTube := new(MockYouTube)
	req := &dto.CollectRequest{
		VideoSearchRequest: dto.VideoSearchRequest{Keyword: "cooking"},
		TargetCount:        70,
	}
	mockYouTube.On("SearchPage", mock.Anything, &req.VideoSearchRequest, "").
		Return(videoPage("p1", 50, "token-1"), nil).Once()
	mockYouTube.On("SearchPage", mock.Anything, &req.VideoSearchRequest, "token-1").
		Return(videoPage("p2", 50, "token-2"), nil).Once()

	videoUseCase := usecase.NewVideoUseCase(mockYouTube)
	resp, err := videoUseCase.CollectVideosByKeyword(context.Background(), req, nil)

	assert.Nil(t, err)
	assert.Equal(t, 70, resp.Total)
	assert.Equal(t, 70, len(resp.Videos))
	assert.True(t, resp.Complete)
	assert.Equal(t, "cooking", resp.Keyword)
	mockYouTube.AssertExpectations(t)
}

func TestCollectVideosByKeyword_HardCapBindsOversizedTarget(t *testing.T) {
	mockYouTube := new(MockYouTube)
	req := &dto.CollectRequest{
		VideoSearchRequest: dto.VideoSearchRequest{Keyword: "music"},
		TargetCount:        1000,
	}
	// Short pages so the running total never lands exactly on the cap.
	token := ""
	for i := 1; i <= 11; i++ {
		next := fmt.Sprintf("token-%d", i)
		mockYouTube.On("SearchPage", mock.Anything, &req.VideoSearchRequest, token).
			Return(videoPage(fmt.Sprintf("p%d", i), 49, next), nil).Once()
		token = next
	}

	var progress []int
	videoUseCase := usecase.NewVideoUseCase(mockYouTube)
	resp, err := videoUseCase.CollectVideosByKeyword(context.Background(), req, func(collected, target int) {
		progress = append(progress, collected)
	})

	assert.Nil(t, err)
	assert.LessOrEqual(t, resp.Total, 500)
	assert.Equal(t, 500, len(resp.Videos))
	assert.False(t, resp.Complete)
	for i := 1; i < len(progress); i++ {
		assert.GreaterOrEqual(t, progress[i], progress[i-1])
	}
	mockYouTube.AssertExpectations(t)
}

func TestCollectVideosByKeyword_ProgressIsMonotonic(t *testing.T) {
	mockYouTube := new(MockYouTube)
	req := &dto.CollectRequest{
		VideoSearchRequest: dto.VideoSearchRequest{Keyword: "golang"},
		TargetCount:        120,
	}
	mockYouTube.On("SearchPage", mock.Anything, &req.VideoSearchRequest, "").
		Return(videoPage("p1", 50, "token-1"), nil).Once()
	mockYouTube.On("SearchPage", mock.Anything, &req.VideoSearchRequest, "token-1").
		Return(videoPage("p2", 50, "token-2"), nil).Once()
	mockYouTube.On("SearchPage", mock.Anything, &req.VideoSearchRequest, "token-2").
		Return(videoPage("p3", 50, ""), nil).Once()

	var reported []int
	onProgress := func(collected, target int) {
		assert.Equal(t, 120, target)
		reported = append(reported, collected)
	}

	videoUseCase := usecase.NewVideoUseCase(mockYouTube)
	resp, err := videoUseCase.CollectVideosByKeyword(context.Background(), req, onProgress)

	assert.Nil(t, err)
	assert.Equal(t, []int{50, 100, 150}, reported)
	for i := 1; i < len(reported); i++ {
		assert.GreaterOrEqual(t, reported[i], reported[i-1])
	}
	assert.Equal(t, 120, resp.Total)
	assert.True(t, resp.Complete)
	mockYouTube.AssertExpectations(t)
}

func TestCollectVideosByKeyword_PartialOnMidRunError(t *testing.T) {
	mockYouTube := new(MockYouTube)
	req := &dto.CollectRequest{
		VideoSearchRequest: dto.VideoSearchRequest{Keyword: "vlog"},
		TargetCount:        100,
	}
	mockYouTube.On("SearchPage", mock.Anything, &req.VideoSearchRequest, "").
		Return(videoPage("p1", 50, "token-1"), nil).Once()
	mockYouTube.On("SearchPage", mock.Anything, &req.VideoSearchRequest, "token-1").
		Return(nil, errors.New("quota exceeded")).Once()

	videoUseCase := usecase.NewVideoUseCase(mockYouTube)
	resp, err := videoUseCase.CollectVideosByKeyword(context.Background(), req, nil)

	assert.Nil(t, err)
	assert.Equal(t, 50, resp.Total)
	assert.False(t, resp.Complete)
	mockYouTube.AssertExpectations(t)
}

func TestCollectVideosByKeyword_FirstPageErrorFails(t *testing.T) {
	mockYouTube := new(MockYouTube)
	req := &dto.CollectRequest{
		VideoSearchRequest: dto.VideoSearchRequest{Keyword: "vlog"},
	}
	mockYouTube.On("SearchPage", mock.Anything, &req.VideoSearchRequest, "").
		Return(nil, errors.New("quota exceeded")).Once()

	videoUseCase := usecase.NewVideoUseCase(mockYouTube)
	resp, err := videoUseCase.CollectVideosByKeyword(context.Background(), req, nil)

	assert.Nil(t, resp)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "failed to collect videos")
	mockYouTube.AssertExpectations(t)
}

func TestCollectVideosByKeyword_StopsWhenPagesRunOut(t *testing.T) {
	mockYouTube := new(MockYouTube)
	req := &dto.CollectRequest{
		VideoSearchRequest: dto.VideoSearchRequest{Keyword: "rare topic"},
		TargetCount:        200,
	}
	mockYouTube.On("SearchPage", mock.Anything, &req.VideoSearchRequest, "").
		Return(videoPage("p1", 30, ""), nil).Once()

	videoUseCase := usecase.NewVideoUseCase(mockYouTube)
	resp, err := videoUseCase.CollectVideosByKeyword(context.Background(), req, nil)

	assert.Nil(t, err)
	assert.Equal(t, 30, resp.Total)
	assert.False(t, resp.Complete)
	mockYouTube.AssertExpectations(t)
}

func TestCollectVideosByKeyword_MissingKeyword(t *testing.T) {
	videoUseCase := usecase.NewVideoUseCase(new(MockYouTube))
	resp, err := videoUseCase.CollectVideosByKeyword(context.Background(), &dto.CollectRequest{}, nil)

	assert.Nil(t, resp)
	assert.NotNil(t, err)
}

func TestCollectVideosByKeyword_WritesThroughCache(t *testing.T) {
	mockYouTube := new(MockYouTube)
	mockCache := new(MockVideoCache)
	req := &dto.CollectRequest{
		VideoSearchRequest: dto.VideoSearchRequest{Keyword: "cooking"},
		TargetCount:        2,
	}
	page := videoPage("p1", 2, "")
	mockYouTube.On("SearchPage", mock.Anything, &req.VideoSearchRequest, "").
		Return(page, nil).Once()
	mockCache.On("UpsertVideos", mock.Anything, page.Items).Return(nil).Once()

	videoUseCase := usecase.NewVideoUseCaseWithCache(mockYouTube, mockCache)
	resp, err := videoUseCase.CollectVideosByKeyword(context.Background(), req, nil)

	assert.Nil(t, err)
	assert.True(t, resp.Complete)
	mockCache.AssertExpectations(t)
}

func TestGetVideoDetails_CacheHitSkipsAPI(t *testing.T) {
	mockYouTube := new(MockYouTube)
	mockCache := new(MockVideoCache)
	cached := &model.VideoRecord{ID: "abc", Title: "cached"}
	mockCache.On("GetVideo", mock.Anything, "abc").Return(cached, nil).Once()

	videoUseCase := usecase.NewVideoUseCaseWithCache(mockYouTube, mockCache)
	got, err := videoUseCase.GetVideoDetails(context.Background(), "abc")

	assert.Nil(t, err)
	assert.Equal(t, cached, got)
	mockYouTube.AssertNotCalled(t, "VideoDetails", mock.Anything, mock.Anything)
	mockCache.AssertExpectations(t)
}

func TestGetVideoDetails_CacheMissFetchesAndStores(t *testing.T) {
	mockYouTube := new(MockYouTube)
	mockCache := new(MockVideoCache)
	record := model.VideoRecord{ID: "abc", Title: "fresh"}
	mockCache.On("GetVideo", mock.Anything, "abc").Return(nil, nil).Once()
	mockYouTube.On("VideoDetails", mock.Anything, []string{"abc"}).
		Return([]model.VideoRecord{record}, nil).Once()
	mockCache.On("UpsertVideos", mock.Anything, []model.VideoRecord{record}).Return(nil).Once()

	videoUseCase := usecase.NewVideoUseCaseWithCache(mockYouTube, mockCache)
	got, err := videoUseCase.GetVideoDetails(context.Background(), "abc")

	assert.Nil(t, err)
	assert.Equal(t, "fresh", got.Title)
	mockYouTube.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestListCachedVideos_RequiresCache(t *testing.T) {
	videoUseCase := usecase.NewVideoUseCase(new(MockYouTube))
	_, _, err := videoUseCase.ListCachedVideos(context.Background(), 1, 25)
	assert.NotNil(t, err)
}

func TestListCachedVideos_ClampsPageSize(t *testing.T) {
	mockCache := new(MockVideoCache)
	mockCache.On("ListVideos", mock.Anything, 100, 100).
		Return([]model.VideoRecord{}, int64(0), nil).Once()

	videoUseCase := usecase.NewVideoUseCaseWithCache(new(MockYouTube), mockCache)
	_, _, err := videoUseCase.ListCachedVideos(context.Background(), 2, 500)

	assert.Nil(t, err)
	mockCache.AssertExpectations(t)
}
