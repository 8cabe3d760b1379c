package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/zerosource"
)

// Ensure LoggingSource implements zerosource.Source.
var _ zerosource.Source = (*LoggingSource)(nil)

// LoggingSource wraps a Source with debug logging.
type LoggingSource struct {
	next   zerosource.Source
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next zerosource.Source, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Load delegates to the wrapped source and logs the operation.
func (s *LoggingSource) Load(ctx context.Context, location string) (doc *zerosource.Document, err error) {
	defer func(begin time.Time) {
		var size int
		if doc != nil {
			size = len(doc.Content)
		}
		s.logger.Info("load document",
			"location", location,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx, location)
}

// Ensure LoggingFetcher implements zerosource.Fetcher.
var _ zerosource.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   zerosource.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next zerosource.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (res *zerosource.Resource, err error) {
	defer func(begin time.Time) {
		var size int
		var contentType string
		if res != nil {
			size = len(res.Body)
			contentType = res.ContentType
		}
		f.logger.Info("fetch",
			"url", url,
			"contentType", contentType,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
