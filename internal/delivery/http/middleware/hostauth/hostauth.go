package http_hostauth_middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/boardswap/core/internal/delivery/http/common"
	service_host_auth "github.com/boardswap/core/internal/service/hostauth"
)

const HeaderHostToken = "X-host-token"

type Middleware struct {
	auth   *service_host_auth.Service
	logger *slog.Logger
}

func New(
	auth *service_host_auth.Service,
) *Middleware {
	return &Middleware{
		auth:   auth,
		logger: slog.Default(),
	}
}

// HostRequired guards host-only operations on /sessions/:session_code
// routes. The token must be bound to the code in the path.
func (m *Middleware) HostRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		t := ctx.GetHeader(HeaderHostToken)
		if t == "" {
			m.logger.Error(fmt.Sprintf("no %s header", HeaderHostToken))
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: fmt.Sprintf("no %s header", HeaderHostToken),
			})
			ctx.Abort()
			return
		}

		code := ctx.Param("session_code")
		ok, err := m.auth.IsHostOf(t, code)
		if err != nil {
			m.logger.Error("host token check failed", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
			ctx.Abort()
			return
		}
		if !ok {
			m.logger.Error("invalid host token", slog.String("session_code", code))
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "invalid host token",
			})
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
