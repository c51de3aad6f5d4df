package handlers

import (
	"aboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like the remembered poster name
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	// Inject remembered poster name (for the form prefill)
	if v, exists := c.Get(middleware.PosterNameKey); exists {
		obj["PosterName"] = v
	} else if _, ok := obj["PosterName"]; !ok {
		obj["PosterName"] = ""
	}

	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// RenderError 渲染极简错误页：标题 + 说明 + 回首页链接。
// 校验错误和服务端错误都走这里，不裸返回状态码。
func RenderError(c *gin.Context, code int, title, message string) {
	Render(c, code, "error.html", gin.H{
		"Title": title,
		"Error": message,
	})
}
