package middleware

import (
	"fmt"
	"net/http"

	"github.com/casbin/casbin"
	"go.uber.org/zap"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/logger"
)

// NewRBAC loads the casbin model and policy and returns a middleware that
// enforces (role, path, method). Place it after JWTAuth.
func NewRBAC(modelPath, policyPath string, log *logger.Logger) (func(http.Handler) http.Handler, error) {
	e, err := casbin.NewEnforcerSafe(modelPath, policyPath)
	if err != nil {
		return nil, fmt.Errorf("load rbac policy: %w", err)
	}
	return RBAC(e, log), nil
}

func RBAC(e *casbin.Enforcer, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := Role(r.Context())
			allowed, err := e.EnforceSafe(role, r.URL.Path, r.Method)
			if err != nil {
				log.Error("RBAC enforce failed", zap.String("role", role), zap.String("path", r.URL.Path), zap.Error(err))
				writeAuthError(w, http.StatusInternalServerError, "authorization failed")
				return
			}
			if !allowed {
				status := http.StatusForbidden
				if role == RoleAnonymous {
					status = http.StatusUnauthorized
				}
				writeAuthError(w, status, http.StatusText(status))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
