package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/vaultbox/vaultbox/internal/logging"
	"github.com/vaultbox/vaultbox/internal/server/models"
	"github.com/vaultbox/vaultbox/internal/server/repositories/repomanager"
)

// chartCategories maps file-type keys to display buckets. Types not listed
// here fall into Others.
var chartCategories = map[string]string{
	"jpg":  "Images",
	"jpeg": "Images",
	"png":  "Images",
	"gif":  "Images",
	"svg":  "Images",
	"webp": "Images",
	"pdf":  "Documents",
	"doc":  "Documents",
	"docx": "Documents",
	"txt":  "Documents",
	"xls":  "Documents",
	"xlsx": "Documents",
	"ppt":  "Documents",
	"pptx": "Documents",
	"mp4":  "Videos",
	"mov":  "Videos",
	"avi":  "Videos",
	"mkv":  "Videos",
	"webm": "Videos",
	"mp3":  "Audio",
	"wav":  "Audio",
	"flac": "Audio",
	"ogg":  "Audio",
}

// chartOrder fixes the bucket order in chart_data so the response is stable
// across requests.
var chartOrder = []string{"Images", "Documents", "Videos", "Audio", "Others"}

// StatsService computes per-account usage on demand. Nothing is cached:
// every call reflects the current file rows, so an upload or delete is
// visible in the very next stats read.
type StatsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

// NewStatsService constructs a StatsService.
func NewStatsService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *StatsService {
	return &StatsService{db: db, repomanager: m, logger: logger}
}

// Usage aggregates the account's files into a total size, file count and a
// per-category chart. Empty accounts get zeros with an empty chart.
func (s *StatsService) Usage(ctx context.Context, accountID string) (*models.UsageStats, error) {
	fileRepo := s.repomanager.Files(s.db)

	rows, err := fileRepo.StatsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error aggregating usage: %w", err)
	}

	var totalBytes, fileCount int64
	bucketBytes := make(map[string]int64)
	for _, row := range rows {
		totalBytes += row.TotalBytes
		fileCount += row.Count
		category, ok := chartCategories[row.FileType]
		if !ok {
			category = "Others"
		}
		bucketBytes[category] += row.TotalBytes
	}

	chart := make([]models.ChartBucket, 0, len(bucketBytes))
	for _, category := range chartOrder {
		if bytes, ok := bucketBytes[category]; ok {
			chart = append(chart, models.ChartBucket{Name: category, Value: toMB(bytes)})
		}
	}

	return &models.UsageStats{
		TotalUsedMB: toMB(totalBytes),
		FileCount:   fileCount,
		ChartData:   chart,
	}, nil
}

// toMB converts bytes to megabytes rounded to two decimals.
func toMB(bytes int64) float64 {
	return math.Round(float64(bytes)/(1024*1024)*100) / 100
}
