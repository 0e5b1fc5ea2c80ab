package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/nutrilog/backend/internal/config"
)

// ErrClassifierUnavailable wraps any transport or server failure from
// the external classifier so handlers can answer 502 uniformly.
var ErrClassifierUnavailable = errors.New("classifier unavailable")

// ClassifierService forwards an image to the external food classifier
// and returns the predicted label. The model itself is a separate
// deployment; this service only speaks its HTTP contract.
type ClassifierService struct {
	client *resty.Client
}

func NewClassifierService(cfg *config.ClassifierConfig) *ClassifierService {
	client := resty.New().
		SetBaseURL(cfg.URL).
		SetTimeout(cfg.Timeout)

	return &ClassifierService{client: client}
}

// Classify posts the image bytes and reads back the label. An empty
// label is treated as a classifier failure, never as a valid answer.
func (s *ClassifierService) Classify(ctx context.Context, image []byte, filename string) (string, error) {
	var result struct {
		Label string `json:"label"`
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetFileReader("file", filename, bytes.NewReader(image)).
		SetResult(&result).
		Post("/classify")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: status %s", ErrClassifierUnavailable, resp.Status())
	}
	if result.Label == "" {
		return "", fmt.Errorf("%w: empty label", ErrClassifierUnavailable)
	}

	return result.Label, nil
}
