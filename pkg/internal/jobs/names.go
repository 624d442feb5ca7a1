package jobs

// 任务名称常量，便于统一管理与引用.
const (
	JobCounterResync   = "counter.resync"
	JobOrphanMetaSweep = "meta.orphan_sweep"
	JobStorageSelfTest = "storage.self_test"
)

// Cron 表达式常量（可选，但推荐一并集中管理）.
const (
	CronCounterResync   = "0 3 * * *"
	CronOrphanMetaSweep = "30 3 * * 0"
	CronStorageSelfTest = "*/30 * * * *"
)
