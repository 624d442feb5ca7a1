package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/photovault/pkg/internal/handle"
)

// RegisterHealthCheckRoute 注册健康检查与自检路由.
func RegisterHealthCheckRoute(g *gin.RouterGroup) {
	healthRoutes := g.Group("/health")
	{
		healthRoutes.GET("/kv", handle.HealthKV)
		healthRoutes.GET("/vfs", handle.HealthVFS)
		healthRoutes.GET("/mq", handle.HealthMQ)
	}

	// 存储写读删自检
	g.GET("/selftest", handle.SelfTest)

	// 定时任务状态
	g.GET("/jobs", handle.ListJobs)
}
