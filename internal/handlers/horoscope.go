package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"astro-proxy/internal/astro"
	"astro-proxy/internal/cache"
	"astro-proxy/internal/metrics"
	"astro-proxy/pkg/logging"
)

// HoroscopeHandler holds dependencies for the /western_horoscope endpoint.
type HoroscopeHandler struct {
	Cache       cache.ResponseCache
	CacheTTL    time.Duration
	Credentials astro.Credentials
	Upstream    astro.Client
	Route       string
}

func NewHoroscopeHandler(
	c cache.ResponseCache,
	ttl time.Duration,
	creds astro.Credentials,
	upstream astro.Client,
) *HoroscopeHandler {
	if c == nil {
		c = cache.NoopCache{}
	}
	return &HoroscopeHandler{
		Cache:       c,
		CacheTTL:    ttl,
		Credentials: creds,
		Upstream:    upstream,
		Route:       astro.RouteWesternHoroscope,
	}
}

// WesternHoroscope handles POST /western_horoscope.
//
// The body is opaque: it is compacted, used as the cache key and forwarded
// upstream. Upstream JSON is returned in compact form so a cache hit replays
// the same bytes as the miss that stored it. Only 2xx JSON replies are cached.
func (h *HoroscopeHandler) WesternHoroscope(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	logger := logging.L(ctx).With(zap.String("route", h.Route))

	if !h.Credentials.Configured() {
		missing := h.Credentials.Missing()
		logger.Error("credentials not configured", zap.Strings("missing", missing))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   astro.ErrCredentialsMissing.Error(),
			Missing: missing,
			Have:    h.Credentials.Presence(),
		})
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.Warn("request body too large", zap.Int64("limit", tooLarge.Limit))
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return
		}
		logger.Warn("read request body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	body, err := cache.CanonicalJSON(raw)
	if err != nil {
		logger.Warn("invalid request", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	key := cache.BuildResponseKey(h.Route, body)
	cacheKey := key.String()

	// ---- cache lookup ----
	cacheLookupStart := time.Now()
	cached, hit, cacheErr := h.Cache.Get(ctx, cacheKey)
	cacheLookupLatency := time.Since(cacheLookupStart)

	if cacheErr != nil {
		// Cache is best-effort; log and treat as miss.
		logger.Warn("response_cache_get_error", zap.Error(cacheErr))
	}

	if hit {
		logger.Info("cache_decision",
			zap.String("hash_key", key.Hash),
			zap.Bool("cache_hit", true),
			zap.Duration("cache_lookup_latency", cacheLookupLatency),
			zap.Duration("total_latency", time.Since(start)),
		)
		writeRaw(w, http.StatusOK, cached)
		return
	}

	// ---- cache miss: one upstream attempt ----
	upstreamStart := time.Now()
	resp, err := h.Upstream.Forward(ctx, h.Route, body)
	upstreamLatency := time.Since(upstreamStart)

	if err != nil {
		metrics.ObserveUpstream(0)
		logger.Error("PROXY_ERROR",
			zap.Error(err),
			zap.Duration("upstream_latency", upstreamLatency),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "PROXY_ERROR",
			Message: err.Error(),
		})
		return
	}
	metrics.ObserveUpstream(resp.StatusCode)

	decision := []zap.Field{
		zap.String("hash_key", key.Hash),
		zap.Bool("cache_hit", false),
		zap.Int("upstream_status", resp.StatusCode),
		zap.Duration("cache_lookup_latency", cacheLookupLatency),
		zap.Duration("upstream_latency", upstreamLatency),
	}

	var payload bytes.Buffer
	if err := json.Compact(&payload, resp.Body); err != nil {
		// Not JSON (e.g. an HTML error page): relay verbatim, never cache.
		logger.Warn("upstream returned non-JSON body",
			append(decision, zap.Error(err), zap.Duration("total_latency", time.Since(start)))...,
		)
		writeRaw(w, resp.StatusCode, resp.Body)
		return
	}

	if !resp.OK() {
		logger.Info("cache_decision",
			append(decision, zap.Bool("cached", false), zap.Duration("total_latency", time.Since(start)))...,
		)
		writeRaw(w, resp.StatusCode, payload.Bytes())
		return
	}

	if err := h.Cache.Set(ctx, cacheKey, payload.Bytes(), h.CacheTTL); err != nil {
		logger.Warn("response_cache_set_error", zap.Error(err))
	}

	logger.Info("cache_decision",
		append(decision, zap.Bool("cached", true), zap.Duration("total_latency", time.Since(start)))...,
	)

	writeRaw(w, http.StatusOK, payload.Bytes())
}
