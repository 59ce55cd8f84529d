package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"onlinestore/internal/api/response"
	apperror "onlinestore/internal/errors"
	"onlinestore/internal/pkg/cache"
	"onlinestore/internal/pkg/logger"
)

// RateLimiter aplica uma janela fixa por IP do cliente: a primeira requisição da janela
// cria o contador com TTL igual a duration, e as seguintes só incrementam.
// Atrás de um proxy listado em proxies o IP vem dos headers de encaminhamento.
// limit <= 0 desliga o limitador. Falhas do cache deixam a requisição passar.
func RateLimiter(client cache.Client, limit int, duration time.Duration, proxies TrustedProxies, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := "rate-limit:" + proxies.ClientIP(r)

			count, err := client.IncrWindow(ctx, key, duration)
			if err != nil {
				log.Warn("Rate limiter indisponível, requisição liberada.", map[string]interface{}{"error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}

			remaining := int64(limit) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(limit) {
				w.Header().Set("Retry-After", strconv.Itoa(int(duration.Seconds())))
				response.Write(w, r, log, nil,
					apperror.NewRateLimitError(fmt.Sprintf("Muitas requisições. Tente novamente em %s.", duration)), 0)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
