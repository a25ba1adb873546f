package extract

import (
	"context"
	"time"
)

// TextExtractor is Stage 1: invoice file -> raw text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextResult, error)
}

type TextResult struct {
	Text     string
	Model    string
	Duration time.Duration
	Warnings []string
}
