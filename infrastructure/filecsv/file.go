package filecsv

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"tubelens/domain/model"
	"tubelens/infrastructure/logger"
)

func NewFile(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while open file")
		return nil, err
	}

	return file, nil
}

var videoHeader = []string{
	"video_id", "title", "channel_title", "published_at", "video_type",
	"duration_seconds", "view_count", "like_count", "comment_count", "popularity_score",
}

// WriteVideos streams the records as CSV, header first.
func WriteVideos(w io.Writer, videos []model.VideoRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(videoHeader); err != nil {
		return err
	}
	for _, v := range videos {
		row := []string{
			v.ID,
			v.Title,
			v.ChannelTitle,
			v.PublishedAt.Format(time.RFC3339),
			string(v.VideoType),
			strconv.Itoa(v.DurationSeconds),
			strconv.FormatInt(v.ViewCount, 10),
			strconv.FormatInt(v.LikeCount, 10),
			strconv.FormatInt(v.CommentCount, 10),
			strconv.FormatFloat(v.PopularityScore, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
