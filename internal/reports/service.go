package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"shopadmin/internal/analytics"
	"shopadmin/internal/common"
	"shopadmin/internal/models"
	"shopadmin/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const presignedURLExpiry = 24 * time.Hour

// RevenueAnalytics is the slice of the analytics service the exporter reads from.
type RevenueAnalytics interface {
	Summary(ctx context.Context, start, end *time.Time) (*analytics.SalesSummary, error)
	RevenueByPeriod(ctx context.Context, period repositories.PeriodType, start, end *time.Time, platform *string, categoryID *uuid.UUID) ([]*models.RevenueBucket, error)
}

// Service renders revenue reports to CSV, uploads them to object storage and
// returns a time-limited download link.
type Service struct {
	analytics RevenueAnalytics
	store     ObjectStore
	bucket    string
	logger    *zap.Logger
}

func NewService(analyticsService RevenueAnalytics, store ObjectStore, bucket string, logger *zap.Logger) *Service {
	return &Service{
		analytics: analyticsService,
		store:     store,
		bucket:    bucket,
		logger:    logger,
	}
}

// ExportRevenue bucketizes revenue the same way the analytics endpoints do,
// writes the buckets as CSV and uploads the file. Returns the presigned URL.
func (s *Service) ExportRevenue(ctx context.Context, period repositories.PeriodType, start, end *time.Time, platform *string, categoryID *uuid.UUID) (string, error) {
	buckets, err := s.analytics.RevenueByPeriod(ctx, period, start, end, platform, categoryID)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"period", "revenue", "order_count"}); err != nil {
		return "", err
	}
	for _, bucket := range buckets {
		record := []string{
			bucket.Period,
			strconv.FormatFloat(bucket.Revenue, 'f', 2, 64),
			strconv.Itoa(bucket.OrderCount),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("revenue/%s-%s.csv", period, time.Now().UTC().Format("20060102T150405"))
	if err := s.store.EnsureBucketExists(ctx, s.bucket); err != nil {
		return "", err
	}
	if err := s.store.Upload(ctx, s.bucket, objectName, "text/csv", &buf, int64(buf.Len())); err != nil {
		return "", err
	}

	url, err := s.presign(ctx, objectName)
	if err != nil {
		return "", err
	}
	s.logger.Info("revenue report exported",
		zap.String("object", objectName), zap.Int("buckets", len(buckets)))
	return url, nil
}

// ExportSummary writes the sales summary for a window as a small CSV with a
// totals section followed by the platform breakdown and top products.
func (s *Service) ExportSummary(ctx context.Context, start, end *time.Time) (string, error) {
	summary, err := s.analytics.Summary(ctx, start, end)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	rows := [][]string{
		{"metric", "value"},
		{"start_date", summary.Period.StartDate.Format(time.RFC3339)},
		{"end_date", summary.Period.EndDate.Format(time.RFC3339)},
		{"total_orders", strconv.Itoa(summary.TotalOrders)},
		{"total_revenue", strconv.FormatFloat(summary.TotalRevenue, 'f', 2, 64)},
		{"average_order_value", strconv.FormatFloat(summary.AverageOrderValue, 'f', 2, 64)},
		{},
		{"platform", "orders", "revenue"},
	}
	for _, p := range summary.Platforms {
		platform := common.SafeString(p.Platform)
		if platform == "" {
			platform = "unknown"
		}
		rows = append(rows, []string{platform, strconv.Itoa(p.OrderCount), strconv.FormatFloat(p.Revenue, 'f', 2, 64)})
	}
	rows = append(rows, []string{}, []string{"product", "quantity", "revenue"})
	for _, tp := range summary.TopProducts {
		rows = append(rows, []string{tp.Name, strconv.Itoa(tp.TotalQuantity), strconv.FormatFloat(tp.TotalRevenue, 'f', 2, 64)})
	}
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("summary/%s.csv", time.Now().UTC().Format("20060102T150405"))
	if err := s.store.EnsureBucketExists(ctx, s.bucket); err != nil {
		return "", err
	}
	if err := s.store.Upload(ctx, s.bucket, objectName, "text/csv", &buf, int64(buf.Len())); err != nil {
		return "", err
	}
	url, err := s.presign(ctx, objectName)
	if err != nil {
		return "", err
	}
	s.logger.Info("summary report exported", zap.String("object", objectName))
	return url, nil
}

// presign hands out the download link for an uploaded report. If the link
// cannot be generated the orphaned object is removed so the bucket does not
// accumulate unreachable files.
func (s *Service) presign(ctx context.Context, objectName string) (string, error) {
	url, err := s.store.PresignedURL(ctx, s.bucket, objectName, presignedURLExpiry)
	if err != nil {
		if removeErr := s.store.Remove(ctx, s.bucket, objectName); removeErr != nil {
			s.logger.Warn("failed to remove orphaned report object",
				zap.String("object", objectName), zap.Error(removeErr))
		}
		return "", err
	}
	return url, nil
}
