package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hms/config"
	"hms/infras/otel"
	"hms/shared/constant"
	"hms/shared/failure"
)

// Client reads JSON entities from the legacy hotel-management backend.
// Base URLs are tried in order, and callers may supply several candidate
// paths for the same entity (the backend exposes old and new routes for
// most collections). Each attempt carries its own timeout; there are no
// retries, a failed attempt moves straight to the next candidate.
type Client struct {
	http    *http.Client
	bases   []string
	timeout time.Duration
	otel    otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) *Client {
	return &Client{
		http:    &http.Client{},
		bases:   cfg.Upstream.BaseURLs,
		timeout: time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second,
		otel:    ot,
	}
}

// Get returns the body of the first candidate that answers with a 2xx.
// When every candidate answers 404 the result is failure.NotFound for the
// entity; any other exhaustion yields failure.Unavailable.
func (c *Client) Get(ctx context.Context, entity string, paths ...string) (body json.RawMessage, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelUpstreamScopeName, constant.OtelUpstreamScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("upstream.entity", entity)

	attempted := false
	allNotFound := true

	for _, base := range c.bases {
		for _, path := range paths {
			attempted = true

			body, err = c.attempt(ctx, base, path)
			if err == nil {
				return body, nil
			}

			if failure.IsNotFound(err) {
				continue
			}

			allNotFound = false

			log.Warn().Err(err).
				Str("entity", entity).
				Str("url", joinURL(base, path)).
				Msg("upstream candidate failed, trying next")
		}
	}

	if attempted && allNotFound {
		return nil, failure.NotFound(entity + " not found") //nolint:wrapcheck
	}

	return nil, failure.Unavailable(entity) //nolint:wrapcheck
}

// Post sends the payload to the first base URL that accepts it.
func (c *Client) Post(ctx context.Context, entity, path string, payload any) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelUpstreamScopeName, constant.OtelUpstreamScopeName+".Post")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("upstream.entity", entity)

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", entity, err)
	}

	for _, base := range c.bases {
		reqCtx, cancel := context.WithTimeout(ctx, c.timeout)

		req, reqErr := http.NewRequestWithContext(reqCtx, http.MethodPost, joinURL(base, path), bytes.NewReader(raw))
		if reqErr != nil {
			cancel()

			return fmt.Errorf("failed to build %s request: %w", entity, reqErr)
		}

		req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

		resp, respErr := c.http.Do(req)
		if respErr == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}

		cancel()

		if respErr != nil {
			log.Warn().Err(respErr).
				Str("entity", entity).
				Str("url", joinURL(base, path)).
				Msg("upstream write failed, trying next base")

			continue
		}

		if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
			return nil
		}

		log.Warn().Int("status", resp.StatusCode).
			Str("entity", entity).
			Str("url", joinURL(base, path)).
			Msg("upstream rejected write, trying next base")
	}

	return failure.Unavailable(entity) //nolint:wrapcheck
}

func (c *Client) attempt(ctx context.Context, base, path string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, joinURL(base, path), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, failure.NotFound(path) //nolint:wrapcheck
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

func joinURL(base, path string) string {
	return strings.TrimSuffix(base, "/") + path
}
