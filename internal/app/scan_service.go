package app

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"labelscanner/internal/domain"
)

// ErrEmptyImage indicates a scan request carried no image data.
var ErrEmptyImage = errors.New("image data is required")

// LabelAnalyzer is the port for the remote image-analysis service.
type LabelAnalyzer interface {
	AnalyzeLabel(ctx context.Context, image []byte, profile domain.ScanProfile) (*domain.LabelAnalysis, error)
}

// ScanService orchestrates a label scan: build the user's dietary profile,
// hand the image to the analyzer, return the structured result. Saving the
// result to the log is a separate operation.
type ScanService struct {
	analyzer LabelAnalyzer
	settings *SettingsService
}

// NewScanService creates a ScanService.
func NewScanService(analyzer LabelAnalyzer, settings *SettingsService) *ScanService {
	return &ScanService{analyzer: analyzer, settings: settings}
}

// Scan decodes a base64 JPEG (a data-URI prefix is tolerated) and analyzes
// it. Analyzer failures surface to the caller; there is no retry.
func (s *ScanService) Scan(ctx context.Context, userID int64, imageB64 string) (*domain.LabelAnalysis, error) {
	if i := strings.IndexByte(imageB64, ','); i >= 0 && strings.HasPrefix(imageB64, "data:") {
		imageB64 = imageB64[i+1:]
	}
	if imageB64 == "" {
		return nil, ErrEmptyImage
	}

	image, err := base64.StdEncoding.DecodeString(imageB64)
	if err != nil {
		return nil, errors.New("invalid base64 image data")
	}
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}

	profile, err := s.settings.ScanProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.analyzer.AnalyzeLabel(ctx, image, profile)
}
