package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/igini-labs/chulseok/internal/http/middleware"
	"github.com/igini-labs/chulseok/internal/model"
)

type APIError struct {
	Code    int
	Message string
	// Details carries per-item failure messages for bulk operations.
	Details []string
}

type HandlerFuncWithAuth func(ctx *gin.Context, user *model.User) (any, *APIError)
type HandlerFunc func(ctx *gin.Context) (any, *APIError)

func writeError(ctx *gin.Context, apiErr *APIError) {
	body := gin.H{"error": apiErr.Message}
	if len(apiErr.Details) > 0 {
		body["details"] = apiErr.Details
	}
	ctx.JSON(apiErr.Code, body)
}

func ResolveEndpointWithAuth(h HandlerFuncWithAuth) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := middleware.GetCurrentUser(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		result, apiErr := h(ctx, user)
		if apiErr != nil {
			writeError(ctx, apiErr)
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}

func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			writeError(ctx, apiErr)
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}
