// Package api 汇总HTTP服务的接口定义，将各路由组注册到 gin 引擎.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/photovault/pkg/internal/router"
)

// RegisterGroup 注册照片库相关的路由组到传入的 gin 引擎，统一挂在 /api/v1 下.
func RegisterGroup(e *gin.Engine) *gin.Engine {
	v1 := e.Group("/api/v1")

	router.RegisterPhotoRoutes(v1)
	router.RegisterFolderRoutes(v1)
	router.RegisterMetaRoutes(v1)
	router.RegisterSearchRoutes(v1)
	router.RegisterHealthCheckRoute(v1)

	return e
}
