package persistence

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"tubelens/domain/model"
)

func cachedRecordJSON(t *testing.T, v model.VideoRecord) []byte {
	t.Helper()
	raw, err := json.Marshal(&v)
	require.NoError(t, err)
	return raw
}

func TestVideoCacheRepository_GetVideo_Hit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewVideoCacheRepository(db)
	record := model.VideoRecord{ID: "abc123", Title: "How To Bake Bread", ViewCount: 12000}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT data, expires_at FROM video_cache WHERE video_id=$1`)).
		WithArgs("abc123").
		WillReturnRows(sqlmock.NewRows([]string{"data", "expires_at"}).
			AddRow(cachedRecordJSON(t, record), time.Now().Add(time.Hour)))

	res, err := repository.GetVideo(context.Background(), "abc123")

	require.NoError(t, err)
	require.NotNil(t, res)
	require.Equal(t, "How To Bake Bread", res.Title)
	require.Equal(t, int64(12000), res.ViewCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoCacheRepository_GetVideo_Miss(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewVideoCacheRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT data, expires_at FROM video_cache WHERE video_id=$1`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"data", "expires_at"}))

	res, err := repository.GetVideo(context.Background(), "missing")

	require.NoError(t, err)
	require.Nil(t, res)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoCacheRepository_GetVideo_ExpiredIsMiss(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewVideoCacheRepository(db)
	record := model.VideoRecord{ID: "abc123", Title: "Stale"}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT data, expires_at FROM video_cache WHERE video_id=$1`)).
		WithArgs("abc123").
		WillReturnRows(sqlmock.NewRows([]string{"data", "expires_at"}).
			AddRow(cachedRecordJSON(t, record), time.Now().Add(-time.Minute)))

	res, err := repository.GetVideo(context.Background(), "abc123")

	require.NoError(t, err)
	require.Nil(t, res)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoCacheRepository_UpsertVideos(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewVideoCacheRepository(db)
	videos := []model.VideoRecord{
		{ID: "v1", Title: "First"},
		{ID: "v2", Title: "Second"},
	}

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO video_cache(video_id, data, expires_at, updated_at)`))
	prep.ExpectExec().
		WithArgs("v1", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs("v2", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repository.UpsertVideos(context.Background(), videos))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoCacheRepository_UpsertVideos_EmptyIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewVideoCacheRepository(db)

	require.NoError(t, repository.UpsertVideos(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoCacheRepository_ListVideos(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewVideoCacheRepository(db)
	first := model.VideoRecord{ID: "v1", Title: "Newest"}
	second := model.VideoRecord{ID: "v2", Title: "Older"}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(1) FROM video_cache WHERE expires_at > NOW()`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT data FROM video_cache WHERE expires_at > NOW() ORDER BY (data->>'published_at')::timestamptz DESC NULLS LAST LIMIT $1 OFFSET $2`)).
		WithArgs(2, 0).
		WillReturnRows(sqlmock.NewRows([]string{"data"}).
			AddRow(cachedRecordJSON(t, first)).
			AddRow(cachedRecordJSON(t, second)))

	res, total, err := repository.ListVideos(context.Background(), 2, 0)

	require.NoError(t, err)
	require.Equal(t, int64(7), total)
	require.Len(t, res, 2)
	require.Equal(t, "Newest", res[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoCacheRepository_NilDbDegradesToMiss(t *testing.T) {
	repository := NewVideoCacheRepository(nil)

	res, err := repository.GetVideo(context.Background(), "abc")
	require.NoError(t, err)
	require.Nil(t, res)

	require.NoError(t, repository.UpsertVideos(context.Background(), []model.VideoRecord{{ID: "v1"}}))

	list, total, err := repository.ListVideos(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Nil(t, list)
	require.Equal(t, int64(0), total)
}
