package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/parsewell/invoice-tracker/internal/common"
	"github.com/parsewell/invoice-tracker/internal/extract"
)

// generation is one fragment of decoded text in the endpoint's response.
// Image-to-text models return a list of these.
type generation struct {
	GeneratedText string `json:"generated_text"`
}

// Extract implements extract.TextExtractor: it uploads the image at path and
// returns the decoded text. A successful call with an empty transcription is
// not an error; the caller sees an empty string.
func (c *Client) Extract(ctx context.Context, path string) (extract.TextResult, error) {
	rid := uuid.New().String()
	if tid := common.TraceIDFromContext(ctx); tid != "" {
		rid = tid
	}
	start := time.Now()

	st, err := os.Stat(path)
	if err != nil {
		return extract.TextResult{}, fmt.Errorf("stat image: %w", err)
	}
	if st.Size() > c.cfg.MaxImageBytes {
		return extract.TextResult{}, fmt.Errorf("image too large: %d bytes (limit %d)", st.Size(), c.cfg.MaxImageBytes)
	}
	img, err := os.ReadFile(path)
	if err != nil {
		return extract.TextResult{}, fmt.Errorf("read image: %w", err)
	}

	url := c.cfg.BaseURL + "/models/" + c.cfg.Model
	c.logger.Info("inference.request",
		"req_id", rid,
		"model", c.cfg.Model,
		"image_bytes", len(img),
	)

	raw, status, err := c.post(ctx, url, img)
	if err != nil {
		c.logger.Error("inference.http_error",
			"req_id", rid, "status", status, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return extract.TextResult{}, err
	}

	var gens []generation
	if err := json.Unmarshal(raw, &gens); err != nil {
		c.logger.Error("inference.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return extract.TextResult{}, fmt.Errorf("decode inference response: %w", err)
	}

	var sb strings.Builder
	var warnings []string
	for _, g := range gens {
		if strings.TrimSpace(g.GeneratedText) == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(g.GeneratedText)
	}
	if sb.Len() == 0 {
		warnings = append(warnings, "endpoint returned no text")
	}

	res := extract.TextResult{
		Text:     sb.String(),
		Model:    c.cfg.Model,
		Duration: time.Since(start),
		Warnings: warnings,
	}
	c.logger.Info("inference.ok",
		"req_id", rid,
		"status", status,
		"text_bytes", len(res.Text),
		"fragments", len(gens),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func (c *Client) post(ctx context.Context, url string, body []byte) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	// Content-Type is inferred by the endpoint for direct image uploads.

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("inference http error: %w", err)
	}
	defer func(b io.ReadCloser) {
		if cerr := b.Close(); cerr != nil {
			c.logger.Warn("inference response body close error", "error", cerr)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		excerpt := raw
		if len(excerpt) > 512 {
			excerpt = excerpt[:512]
		}
		return raw, resp.StatusCode, fmt.Errorf("inference status %d: %s", resp.StatusCode, excerpt)
	}
	return raw, resp.StatusCode, nil
}
