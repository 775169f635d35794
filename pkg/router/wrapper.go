package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	befores := append([]MiddlewareFunc{}, router.befores...)

	return func(ginCtx *gin.Context) {
		ctx := router.buildContext(ginCtx)

		var err error
		for _, middleware := range befores {
			ctx, err = middleware(ctx)
			if err != nil {
				ginCtx.JSON(http.StatusOK, newErrorResponse(err))
				ginCtx.Abort()
				return
			}
		}

		// The Should variants leave the response untouched on failure; the
		// Must variants would already have written a 400.
		var req Request
		switch method {
		case http.MethodGet:
			err = ginCtx.ShouldBindQuery(&req)
		case http.MethodPost:
			err = ginCtx.ShouldBindJSON(&req)
		default:
			err = errors.New("unsupported method")
		}
		if err != nil {
			ginCtx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			ginCtx.JSON(http.StatusOK, newErrorResponse(err))
		} else {
			ginCtx.JSON(http.StatusOK, newResponse(resp))
		}
	}
}
