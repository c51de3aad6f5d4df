package router

import (
	"aboard/internal/handlers"
	"aboard/internal/services"
	"aboard/internal/store"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, postStore *store.PostStore, mediaStore *services.MediaStore) {
	boardHandler := handlers.NewBoardHandler(postStore, mediaStore)

	r.GET("/", boardHandler.Index)           // 信息流首页
	r.POST("/post", boardHandler.CreatePost) // 发帖
}
