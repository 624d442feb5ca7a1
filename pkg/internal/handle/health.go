// Package handle 新增健康检查与自检处理器实现.
package handle

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/yeisme/photovault/pkg/context"
	"github.com/yeisme/photovault/pkg/internal/service"
)

const timeout = 2 * time.Second

// HealthKV 键值存储健康检查.
func HealthKV(c *gin.Context) {
	kvc := ctxPkg.GetKVClient(c.Request.Context())
	if kvc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "kv", "status": "unhealthy", "error": "kv client not initialized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	if _, err := kvc.Exists(ctx, "healthz"); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "kv", "status": "unhealthy", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"component": "kv", "status": "ok"})
}

// HealthVFS 虚拟文件系统健康检查.
func HealthVFS(c *gin.Context) {
	fs := ctxPkg.GetVFSClient(c.Request.Context())
	if fs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "vfs", "status": "unhealthy", "error": "vfs client not initialized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	if _, err := fs.Stat(ctx, "/"); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "vfs", "status": "unhealthy", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"component": "vfs", "status": "ok"})
}

// HealthMQ 消息队列健康检查.
func HealthMQ(c *gin.Context) {
	mqc := ctxPkg.GetMQClient(c.Request.Context())
	if mqc == nil { // publisher 与 subscriber 初始化在 New 中, 判空即可
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "mq", "status": "unhealthy", "error": "mq client not initialized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"component": "mq", "status": "ok"})
}

// SelfTest 对键值存储执行写读删自检.
func SelfTest(c *gin.Context) {
	svc := service.NewPhotoService(c.Request.Context())

	if !svc.SelfTest(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "storage", "status": "failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"component": "storage", "status": "ok"})
}
