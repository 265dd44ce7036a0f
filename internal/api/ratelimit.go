package api

import (
	"net"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/listenupapp/tagexport/internal/errors"
)

// rateLimited is a huma operation middleware limiting requests per client IP.
// Returns 429 RATE_LIMITED when the client's bucket is empty.
func (s *Server) rateLimited(ctx huma.Context, next func(huma.Context)) {
	key := clientIP(ctx.RemoteAddr())

	if !s.limiter.Allow(key) {
		s.logger.Warn("Rate limit exceeded",
			"ip", key,
			"path", ctx.URL().Path,
		)
		_ = huma.WriteErr(s.api, ctx, http.StatusTooManyRequests, "too many requests", domainerrors.RateLimited("Too many requests. Please try again later."))
		return
	}

	next(ctx)
}

// clientIP strips the port. RealIP has already applied X-Forwarded-For and
// X-Real-IP by the time huma sees the request.
func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
