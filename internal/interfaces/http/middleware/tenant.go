package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/finops/backend/internal/infrastructure/logger"
	"github.com/finops/backend/internal/interfaces/http/dto"
)

// Tenant context keys
const (
	TenantIDKey     = "tenant_id"
	TenantHeaderKey = "X-Tenant-ID"
)

// TenantMiddlewareConfig holds configuration for tenant middleware
type TenantMiddlewareConfig struct {
	// HeaderEnabled enables X-Tenant-ID header extraction as a fallback
	// when the request carries no JWT claim. Intended for development;
	// production deployments should rely on the JWT claim only.
	HeaderEnabled bool
	// SkipPaths are paths that don't require tenant context
	SkipPaths []string
	// Required rejects requests without a resolvable tenant
	Required bool
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultTenantConfig returns default tenant middleware configuration
func DefaultTenantConfig() TenantMiddlewareConfig {
	return TenantMiddlewareConfig{
		HeaderEnabled: true,
		SkipPaths: []string{
			"/health",
			"/healthz",
			"/api/v1/health",
		},
		Required: true,
	}
}

// Tenant resolves the tenant for the request and stores it in both the gin
// context and the request context. The JWT claim takes precedence over the
// X-Tenant-ID header; the header only applies when no claim is present.
func Tenant(cfg TenantMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		tenantStr := GetJWTTenantID(c)
		if tenantStr == "" && cfg.HeaderEnabled {
			tenantStr = c.GetHeader(TenantHeaderKey)
		}

		if tenantStr == "" {
			if cfg.Required {
				abortTenant(c, "Tenant context is required")
				return
			}
			c.Next()
			return
		}

		tenantID, err := uuid.Parse(tenantStr)
		if err != nil || tenantID == uuid.Nil {
			if cfg.Logger != nil {
				cfg.Logger.Warn("Rejected request with invalid tenant id",
					zap.String("tenant_id", tenantStr),
					zap.String("path", path),
				)
			}
			abortTenant(c, "Invalid tenant ID")
			return
		}

		c.Set(TenantIDKey, tenantID)

		// Propagate tenant and request id into the request context so the
		// persistence and logging layers see them.
		ctx := c.Request.Context()
		base := logger.FromContext(ctx)
		if cfg.Logger != nil {
			base = cfg.Logger
		}
		ctx, enriched := logger.WithTenantID(ctx, base, tenantID.String())
		if requestID := c.GetString(RequestIDContextKey); requestID != "" {
			ctx, _ = logger.WithRequestID(ctx, enriched, requestID)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetTenantID returns the resolved tenant id from the gin context
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	if v, ok := c.Get(TenantIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id, true
		}
	}
	return uuid.Nil, false
}

func abortTenant(c *gin.Context, message string) {
	requestID := c.GetString(RequestIDContextKey)
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(dto.ErrCodeBadRequest, message, requestID))
}
