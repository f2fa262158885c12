package middleware

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/barbershop-booking/internal/api/handlers"
)

// AdminPasswordHeader заголовок с паролем администратора
const AdminPasswordHeader = "X-Admin-Password"

const msgUnauthorized = "Unauthorized"

// AdminGate проверяет пароль администратора по bcrypt хешу.
// С пустым хешем доступ закрыт для всех.
type AdminGate struct {
	hash   []byte
	logger Logger
}

func NewAdminGate(passwordHash string, logger Logger) *AdminGate {
	return &AdminGate{
		hash:   []byte(passwordHash),
		logger: logger,
	}
}

// Enabled true, если хеш пароля задан
func (g *AdminGate) Enabled() bool {
	return len(g.hash) > 0
}

// CheckPassword сравнивает пароль с хешем
func (g *AdminGate) CheckPassword(password string) bool {
	if !g.Enabled() || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(g.hash, []byte(password)) == nil
}

// Middleware пропускает только запросы с верным X-Admin-Password
func (g *AdminGate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.CheckPassword(r.Header.Get(AdminPasswordHeader)) {
			g.logger.Warn("AdminGate: rejected %s %s from %s", r.Method, r.URL.Path, remoteHost(r))
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
