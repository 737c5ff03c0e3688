package csrf

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

// MissingTokenTotal counts requests accepted without token, per intention.
var MissingTokenTotal = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "csrf_missing_token_total",
		Help: "Number of requests accepted without CSRF token, differentiated by intention.",
	},
	[]string{"intention"},
)

// AcceptMissing lets a request without token field pass and reports it as deprecated.
// Forms rendered by this application always post the token, so hits point at old clients.
// Disable with Security.CSRF.AllowMissingToken = false.
func AcceptMissing(c *fiber.Ctx, id string) bool {
	MissingTokenTotal.WithLabelValues(id).Inc()

	log.Warn().
		Bool("deprecated", true).
		Str("intention", id).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("request without CSRF token accepted, posting without token will be rejected in a future version")

	return true
}
