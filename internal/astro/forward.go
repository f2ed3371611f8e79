package astro

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Forward POSTs body unchanged to <BaseURL>/<route> with Basic auth.
// Exactly one attempt is made.
func (c *client) Forward(ctx context.Context, route string, body []byte) (*Response, error) {
	start := time.Now()

	if !c.cfg.Credentials.Configured() {
		return nil, ErrCredentialsMissing
	}

	url := c.cfg.BaseURL + "/" + route

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("astroclient: build HTTP request: %w", err)
	}
	httpReq.Header.Set("Authorization", c.cfg.Credentials.AuthorizationHeader())
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug("upstream request starting",
		zap.String("route", route),
		zap.Int("body_bytes", len(body)),
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("upstream request failed",
			zap.String("url", url),
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("upstream body read failed",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
			zap.Error(err),
		)
		return nil, fmt.Errorf("astroclient: read upstream body: %w", err)
	}

	fields := []zap.Field{
		zap.String("route", route),
		zap.Int("status", resp.StatusCode),
		zap.Int("body_bytes", len(raw)),
		zap.Duration("duration", time.Since(start)),
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("upstream returned error status",
			append(fields, zap.String("body", truncate(string(raw), 200)))...,
		)
	} else {
		c.logger.Info("upstream request completed", fields...)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       raw,
	}, nil
}

// truncate limits string length for logging
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
