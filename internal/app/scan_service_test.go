package app_test

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"labelscanner/internal/app"
	"labelscanner/internal/domain"
)

type mockAnalyzer struct {
	analyzeFn func(ctx context.Context, image []byte, profile domain.ScanProfile) (*domain.LabelAnalysis, error)
}

func (m *mockAnalyzer) AnalyzeLabel(ctx context.Context, image []byte, profile domain.ScanProfile) (*domain.LabelAnalysis, error) {
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, image, profile)
	}
	return &domain.LabelAnalysis{ProductName: "Test Product"}, nil
}

func newScanService(analyzer *mockAnalyzer, sr *mockSettingsRepo) *app.ScanService {
	return app.NewScanService(analyzer, app.NewSettingsService(sr))
}

func TestScan_DecodesImage(t *testing.T) {
	raw := []byte("jpeg-bytes")
	var gotImage []byte
	analyzer := &mockAnalyzer{
		analyzeFn: func(_ context.Context, image []byte, _ domain.ScanProfile) (*domain.LabelAnalysis, error) {
			gotImage = image
			return &domain.LabelAnalysis{ProductName: "Granola"}, nil
		},
	}
	svc := newScanService(analyzer, &mockSettingsRepo{})

	analysis, err := svc.Scan(context.Background(), 1, base64.StdEncoding.EncodeToString(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(gotImage) != string(raw) {
		t.Errorf("image: got %q", gotImage)
	}
	if analysis.ProductName != "Granola" {
		t.Errorf("productName: got %q", analysis.ProductName)
	}
}

func TestScan_StripsDataURIPrefix(t *testing.T) {
	raw := []byte("jpeg-bytes")
	var gotImage []byte
	analyzer := &mockAnalyzer{
		analyzeFn: func(_ context.Context, image []byte, _ domain.ScanProfile) (*domain.LabelAnalysis, error) {
			gotImage = image
			return &domain.LabelAnalysis{}, nil
		},
	}
	svc := newScanService(analyzer, &mockSettingsRepo{})

	in := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw)
	if _, err := svc.Scan(context.Background(), 1, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(gotImage) != string(raw) {
		t.Errorf("image: got %q", gotImage)
	}
}

func TestScan_EmptyImage(t *testing.T) {
	svc := newScanService(&mockAnalyzer{}, &mockSettingsRepo{})

	for _, in := range []string{"", "data:image/jpeg;base64,"} {
		if _, err := svc.Scan(context.Background(), 1, in); !errors.Is(err, app.ErrEmptyImage) {
			t.Errorf("input %q: got %v, want ErrEmptyImage", in, err)
		}
	}
}

func TestScan_InvalidBase64(t *testing.T) {
	svc := newScanService(&mockAnalyzer{}, &mockSettingsRepo{})

	_, err := svc.Scan(context.Background(), 1, "not-valid-base64!!!")
	if err == nil || errors.Is(err, app.ErrEmptyImage) {
		t.Errorf("got %v, want decode error", err)
	}
}

func TestScan_PassesProfile(t *testing.T) {
	sr := &mockSettingsRepo{
		getFn: func(_ context.Context, _ int64) (*domain.UserSettings, error) {
			return &domain.UserSettings{
				Diet: []string{"Vegan"},
				Goal: domain.GoalWeightLoss,
			}, nil
		},
	}
	var gotProfile domain.ScanProfile
	analyzer := &mockAnalyzer{
		analyzeFn: func(_ context.Context, _ []byte, profile domain.ScanProfile) (*domain.LabelAnalysis, error) {
			gotProfile = profile
			return &domain.LabelAnalysis{}, nil
		},
	}
	svc := newScanService(analyzer, sr)

	in := base64.StdEncoding.EncodeToString([]byte("img"))
	if _, err := svc.Scan(context.Background(), 1, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotProfile.VegType != "Vegan" || gotProfile.Goal != domain.GoalWeightLoss {
		t.Errorf("profile: got %+v", gotProfile)
	}
}

func TestScan_AnalyzerFailure(t *testing.T) {
	boom := errors.New("upstream unavailable")
	analyzer := &mockAnalyzer{
		analyzeFn: func(_ context.Context, _ []byte, _ domain.ScanProfile) (*domain.LabelAnalysis, error) {
			return nil, boom
		},
	}
	svc := newScanService(analyzer, &mockSettingsRepo{})

	in := base64.StdEncoding.EncodeToString([]byte("img"))
	if _, err := svc.Scan(context.Background(), 1, in); !errors.Is(err, boom) {
		t.Errorf("got %v, want analyzer error", err)
	}
}
