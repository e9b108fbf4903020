package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/home-inventory/internal/config"
)

// captureWriter captures response body/status while forwarding to the client.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.limit <= 0 {
		cw.buf.Write(b)
	} else if remain := cw.limit - cw.size; remain > 0 {
		if int64(len(b)) <= remain {
			cw.buf.Write(b)
		} else {
			cw.buf.Write(b[:remain])
		}
	}
	cw.size += int64(len(b))
	return cw.ResponseWriter.Write(b)
}

// truncated reports whether more was written than the buffer kept.
func (cw *captureWriter) truncated() bool {
	return cw.limit > 0 && cw.size > cw.limit
}

// generationKey holds the write generation.  Every successful mutation
// bumps it, which moves all readers onto fresh cache keys; entries from
// older generations simply expire.
func generationKey(cfg config.CacheConfig) string {
	return cfg.Prefix + ":gen"
}

// cacheKeyFrom builds a stable cache key honoring prefix, strategy and the
// current write generation.
func cacheKeyFrom(cfg config.CacheConfig, c echo.Context, gen int64) string {
	r := c.Request()
	method := r.Method
	route := c.Path()
	query := r.URL.RawQuery

	var parts []string
	switch strings.ToLower(cfg.KeyStrategy) {
	case "route":
		parts = []string{"route", route}
	case "method_route":
		parts = []string{"method", method, "route", route}
	case "method_route_query":
		parts = []string{"method", method, "route", route, "q", query}
	default: // "route_query"
		parts = []string{"route", route, "q", query}
	}
	// The route pattern alone does not tell /houses/1 from /houses/2.
	parts = append(parts, "path", r.URL.Path)

	sum := sha1.Sum([]byte(strings.Join(parts, ":")))
	return fmt.Sprintf("%s:g%d:%x", cfg.Prefix, gen, sum[:])
}

// encodePayload packs: [4 bytes status][4 bytes headerLen][headerJSON][body]
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
	hdrJSON, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 8+len(hdrJSON)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
	copy(out[8:8+len(hdrJSON)], hdrJSON)
	copy(out[8+len(hdrJSON):], body)
	return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
	if len(bs) < 8 {
		return 0, nil, nil, false
	}
	status = int(binary.BigEndian.Uint32(bs[0:4]))
	hlen := int(binary.BigEndian.Uint32(bs[4:8]))
	if hlen < 0 || 8+hlen > len(bs) {
		return 0, nil, nil, false
	}
	hdr := make(http.Header)
	if hlen > 0 {
		if err := json.Unmarshal(bs[8:8+hlen], &hdr); err != nil {
			return 0, nil, nil, false
		}
	}
	return status, hdr, bs[8+hlen:], true
}

// volatileHeaders are per-request and never replayed from the cache.
var volatileHeaders = []string{
	"X-Cache",
	echo.HeaderXRequestID,
	"X-RateLimit-Limit",
	"X-RateLimit-Remaining",
	"X-RateLimit-Key",
}

// isMutation reports whether method changes stored state.
func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// NewRedisCache caches successful reads in Redis, storing headers and
// body so clients see the original bytes.  Successful writes advance the
// write generation so no read after a change is served from before it.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passthrough
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	maxBody := int64(cfg.MaxBodyBytes)
	genKey := generationKey(cfg)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			method := strings.ToUpper(c.Request().Method)
			ctx := c.Request().Context()

			if isMutation(method) {
				err := next(c)
				if err == nil && c.Response().Status < http.StatusBadRequest {
					if err := rdb.Incr(context.Background(), genKey).Err(); err != nil {
						slog.Warn("cache: bump generation failed", "error", err)
					}
				}
				return err
			}
			if !cfg.Methods[method] {
				return next(c)
			}

			gen, err := rdb.Get(ctx, genKey).Int64()
			if err != nil && !errors.Is(err, redis.Nil) {
				slog.Warn("cache: read generation failed", "error", err)
				return next(c)
			}
			key := cacheKeyFrom(cfg, c, gen)

			if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
				if status, hdr, body, ok := decodePayload(bs); ok {
					for k, vals := range hdr {
						// Echo sets Content-Length itself.
						if strings.EqualFold(k, echo.HeaderContentLength) {
							continue
						}
						for _, v := range vals {
							c.Response().Header().Add(k, v)
						}
					}
					c.Response().Header().Set("X-Cache", "HIT")
					c.Response().WriteHeader(status)
					if len(body) > 0 {
						_, _ = c.Response().Write(body)
					}
					return nil
				}
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			if cw.status != http.StatusOK || cw.truncated() {
				return nil
			}

			hdr := c.Response().Header().Clone()
			for _, k := range volatileHeaders {
				hdr.Del(k)
			}
			if payload, err := encodePayload(cw.status, hdr, cw.buf.Bytes()); err == nil {
				_ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
			}
			return nil
		}
	}
}

func passthrough(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error { return next(c) }
}
