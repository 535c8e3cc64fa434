// README: Generated-image download passthrough so browsers can save cross-origin images.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	ErrMissingURL = errors.New("imageUrl is required")
	ErrUpstream   = errors.New("failed to fetch image")
)

const (
	DefaultTimeout     = 30 * time.Second
	DefaultContentType = "image/png"
	DefaultFilename    = "tripkit-image.png"

	MaxImageBytes      = 32 << 20

	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

type Image struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ContentDisposition is the attachment header value with the filename URL-escaped.
func (i Image) ContentDisposition() string {
	return fmt.Sprintf("attachment; filename=%q", url.PathEscape(i.Filename))
}

type Service struct {
	httpc    *http.Client
	timeout  time.Duration
	maxBytes int64
	log      *zap.Logger
}

func NewService(httpc *http.Client, timeout time.Duration, logger *zap.Logger) *Service {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{httpc: httpc, timeout: timeout, maxBytes: MaxImageBytes, log: logger}
}

// Fetch downloads imageURL within the configured timeout.
func (s *Service) Fetch(ctx context.Context, imageURL, filename string) (*Image, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil, ErrMissingURL
	}
	if strings.TrimSpace(filename) == "" {
		filename = DefaultFilename
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("download: build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.log.Warn("image fetch failed", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: %d", ErrUpstream, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("download: read body: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		s.log.Warn("image too large", zap.Int64("limit", s.maxBytes))
		return nil, fmt.Errorf("%w: image exceeds %d bytes", ErrUpstream, s.maxBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = DefaultContentType
	}

	s.log.Info("image downloaded", zap.Int("size", len(data)), zap.String("content_type", contentType))
	return &Image{Data: data, ContentType: contentType, Filename: filename}, nil
}
