// Package jobs 负责注册与实现业务定时任务（基于 scheduler）。
package jobs

import (
	"context"
	"fmt"

	ctxPkg "github.com/yeisme/photovault/pkg/context"
	"github.com/yeisme/photovault/pkg/internal/service"
	"github.com/yeisme/photovault/pkg/internal/storage"
	"github.com/yeisme/photovault/pkg/log"
	"github.com/yeisme/photovault/pkg/scheduler"
)

// RegisterCronJobs 配置业务定时任务：
//   - 每天 03:00 对所有文件夹重建顺序计数器，纠正计数器与目录内容的漂移
//   - 每周日 03:30 清扫孤儿元数据（URI 已无对应照片文件的条目）
//   - 每 30 分钟对键值存储做一次写读删自检
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	// 将 storage manager 注入到 context，便于 service 使用
	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)

	// 每天 03:00 重建全部顺序计数器
	_ = sched.AddCron(JobCounterResync, CronCounterResync, func(ctx context.Context) {
		runCounterResync(ctx)
	}, baseCtx)

	// 每周日 03:30 清扫孤儿元数据
	_ = sched.AddCron(JobOrphanMetaSweep, CronOrphanMetaSweep, func(ctx context.Context) {
		runOrphanMetaSweep(ctx)
	}, baseCtx)

	// 每 30 分钟存储自检
	_ = sched.AddCron(JobStorageSelfTest, CronStorageSelfTest, func(ctx context.Context) {
		runStorageSelfTest(ctx)
	}, baseCtx)

	return nil
}

// runCounterResync 对注册表里的每个文件夹，从目录里实际存在的照片文件重建计数器。
func runCounterResync(ctx context.Context) {
	l := log.Logger().With().Str("job", JobCounterResync).Logger()

	svc := service.NewPhotoService(ctx)

	folders := svc.Registry().List(ctx)
	for _, folder := range folders {
		resp := svc.ResyncCounter(ctx, folder)
		l.Debug().Str("folder", folder).Int("counter", resp.Counter).Msg("counter resynced")
	}

	// 计数器可能指向已注销的文件夹，顺带清理
	for _, folder := range svc.Naming().CounterFolders(ctx) {
		if !svc.Registry().Exists(ctx, folder) {
			svc.Naming().Reset(ctx, folder)
			l.Info().Str("folder", folder).Msg("removed counter of unregistered folder")
		}
	}

	l.Info().Int("folders", len(folders)).Msg("counter resync done")
}

// runOrphanMetaSweep 删除 URI 已无对应照片文件的元数据条目。
func runOrphanMetaSweep(ctx context.Context) {
	l := log.Logger().With().Str("job", JobOrphanMetaSweep).Logger()

	svc := service.NewPhotoService(ctx)
	removed := svc.SweepOrphanMetadata(ctx)

	l.Info().Int("removed", removed).Msg("orphan metadata sweep done")
}

// runStorageSelfTest 对键值存储执行写读删自检，失败只告警。
func runStorageSelfTest(ctx context.Context) {
	l := log.Logger().With().Str("job", JobStorageSelfTest).Logger()

	svc := service.NewPhotoService(ctx)
	if !svc.SelfTest(ctx) {
		l.Warn().Msg("storage self test failed")
		return
	}

	l.Debug().Msg("storage self test ok")
}
