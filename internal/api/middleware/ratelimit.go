package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/m04kA/barbershop-booking/internal/api/handlers"
	"github.com/m04kA/barbershop-booking/internal/ratelimit"
)

const (
	msgTooManyBookings = "Too many booking attempts. Please try again later."
	msgTooManyRequests = "Too many requests"

	scopeBooking = "booking"
	scopeGlobal  = "global"
)

// BookingRateLimit ограничивает попытки записи с одного клиента.
// Если хранилище счётчиков недоступно, запрос пропускается.
// При nil ips клиент определяется только по адресу соединения.
func BookingRateLimit(limiter ratelimit.Limiter, ips *ClientIPResolver, rec RateLimitRecorder, logger Logger) mux.MiddlewareFunc {
	if rec == nil {
		rec = nopRecorder{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ips.ClientIP(r)

			decision, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				logger.Error("BookingRateLimit: limiter failed for %s, letting request through: %v", ip, err)
				next.ServeHTTP(w, r)
				return
			}

			if !decision.Allowed {
				rec.RateLimited(scopeBooking)
				logger.Warn("BookingRateLimit: %s exceeded booking limit, reset at %s",
					ip, decision.ResetAt.UTC().Format(time.RFC3339))
				handlers.RespondTooManyRequests(w, msgTooManyBookings, decision.ResetAt, decision.RetryAfter(time.Now()))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Throttle общий предохранитель на все API маршруты (token bucket)
func Throttle(rps float64, burst int, rec RateLimitRecorder) mux.MiddlewareFunc {
	if rec == nil {
		rec = nopRecorder{}
	}
	if burst <= 0 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}
			rec.RateLimited(scopeGlobal)
			w.Header().Set("Retry-After", "1")
			handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
		})
	}
}
