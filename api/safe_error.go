package api

import (
	"log"

	"eyewear/config"
	"eyewear/middleware"

	"github.com/gin-gonic/gin"
)

// SafeErrorMessage 生产环境下不向客户端暴露内部错误详情，避免信息泄露
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}

// HandleError 统一的内部错误出口：带 open_id 上下文记录日志后返回 500
// release 模式下仅向客户端透出兜底文案
func HandleError(c *gin.Context, err error, context string) {
	log.Printf("%s: %v oid=%s", context, err, middleware.RequestOpenID(c))
	InternalError(c, config.SafeErrorMessage(err, "Internal server error"))
}
