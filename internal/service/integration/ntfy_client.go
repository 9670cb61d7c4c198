package integration

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// PushClient delivers a text body to a topic on the push relay. The
// relay targets devices by topic name alone; the routing key is the
// per-student topic derived from the enrollment number.
type PushClient interface {
	Publish(ctx context.Context, topic, title, message string, priority int, tags []string) error
}

type ntfyClient struct {
	baseURL    string
	timeout    time.Duration
	retryCount int
	retryDelay time.Duration
	client     *http.Client
	logger     zerolog.Logger
}

func NewNtfyClient(baseURL string, timeout time.Duration, retryCount int, retryDelay time.Duration, logger zerolog.Logger) PushClient {
	return &ntfyClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		retryCount: retryCount,
		retryDelay: retryDelay,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (c *ntfyClient) Publish(ctx context.Context, topic, title, message string, priority int, tags []string) error {
	publishURL := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(topic))

	var lastErr error

	for i := 0; i <= c.retryCount; i++ {
		if i > 0 {
			c.logger.Warn().Int("attempt", i).Str("topic", topic).Msg("Retrying push delivery")
			time.Sleep(c.retryDelay * time.Duration(i))
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, publishURL, strings.NewReader(message))
		if err != nil {
			lastErr = fmt.Errorf("failed to create request: %w", err)
			continue
		}

		// Header values must stay ASCII; the title may carry anything.
		req.Header.Set("Title", url.PathEscape(title))
		req.Header.Set("Priority", strconv.Itoa(priority))
		if len(tags) > 0 {
			req.Header.Set("Tags", strings.Join(tags, ","))
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("failed to publish to %s: %w", topic, err)
			continue
		}

		if resp.StatusCode == http.StatusOK {
			resp.Body.Close()

			c.logger.Debug().
				Str("topic", topic).
				Int("priority", priority).
				Int("body_size", len(message)).
				Msg("Push notification delivered")

			return nil
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		lastErr = fmt.Errorf("push relay returned status %d: %s", resp.StatusCode, string(body))
	}

	return fmt.Errorf("failed to publish to %s after %d attempts: %w", topic, c.retryCount+1, lastErr)
}
