package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/photovault/pkg/middleware"
)

// ListJobs 处理定时任务状态查询.
//
//	@Summary		定时任务状态
//	@Description	返回全部定时任务的调度与执行状态
//	@Tags			运维
//	@Produce		json
//	@Success		200	{array}	scheduler.JobInfo	"任务状态列表"
//	@Failure		503	{object}	map[string]string	"调度器未初始化"
//	@Router			/api/v1/jobs [get]
func ListJobs(c *gin.Context) {
	sched := middleware.GetScheduler(c)
	if sched == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scheduler not initialized"})
		return
	}

	c.JSON(http.StatusOK, sched.GetJobInfos())
}
