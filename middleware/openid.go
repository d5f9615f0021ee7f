package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
)

// 请求级 open_id 捕获：日志统一带上当前请求关联的用户标识

// openIDParamCandidates 可能携带用户标识的参数名，按优先级排列
var openIDParamCandidates = []string{
	"open_id", "customer_open_id", "salesperson_open_id",
	"my_sales_open_id", "referrer_open_id", "openid", "sid",
}

const openIDContextKey = "requestOpenID"

// CaptureOpenID 在请求开始时提取 open_id（或等价参数）存入上下文
// 先查 query/form，再查 JSON body；body 读取后原样放回供后续绑定使用
func CaptureOpenID() gin.HandlerFunc {
	return func(c *gin.Context) {
		oid := ""
		for _, k := range openIDParamCandidates {
			if v := strings.TrimSpace(c.Query(k)); v != "" {
				oid = v
				break
			}
			if v := strings.TrimSpace(c.PostForm(k)); v != "" {
				oid = v
				break
			}
		}
		if oid == "" && strings.Contains(c.ContentType(), "application/json") && c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err == nil {
				c.Request.Body = io.NopCloser(bytes.NewReader(body))
				var data map[string]interface{}
				if json.Unmarshal(body, &data) == nil {
					for _, k := range openIDParamCandidates {
						if v, ok := data[k].(string); ok && strings.TrimSpace(v) != "" {
							oid = strings.TrimSpace(v)
							break
						}
					}
				}
			}
		}
		if oid != "" {
			c.Set(openIDContextKey, oid)
		}
		c.Next()
	}
}

// RequestOpenID 取当前请求关联的 open_id，无则返回 "-"
func RequestOpenID(c *gin.Context) string {
	if v, ok := c.Get(openIDContextKey); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "-"
}
