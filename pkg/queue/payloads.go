package queue

import "time"

// EventHeader 定义所有事件的通用头部元数据.
// 建议在发布消息时填充 TraceID、OccurredAt、Producer 等，便于追踪链路与审计.
type EventHeader struct {
	// Topic 冗余记录消息主题，便于离线处理或转储后定位来源主题.
	Topic string `json:"topic"`
	// TraceID 分布式追踪/关联 ID，可来自中间件或业务生成.
	TraceID string `json:"trace_id,omitempty"`
	// Producer 生产者服务名或节点标识.
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC，RFC3339）.
	OccurredAt time.Time `json:"occurred_at"`
	// Version 事件负载版本，便于向后兼容演进.
	Version string `json:"version,omitempty"`
}

// Message 是统一的消息封装，Header + Payload.
// T 即不同主题对应的负载结构体.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// -------------------------- 照片文件领域 --------------------------

// PhotoRef 标识虚拟文件系统中的一张照片.
type PhotoRef struct {
	Folder   string `json:"folder"`
	FileName string `json:"file_name"`
	Path     string `json:"path"`
	Size     int64  `json:"size,omitempty"`
}

// PhotoStoredPayload 照片已写入虚拟文件系统.
type PhotoStoredPayload struct {
	Photo PhotoRef `json:"photo"`
	// Source 触发来源：capture（拍摄）或 import（导入）.
	Source string `json:"source,omitempty"`
}

// PhotoMovedPayload 照片移动，携带新旧位置.
type PhotoMovedPayload struct {
	From PhotoRef `json:"from"`
	To   PhotoRef `json:"to"`
}

// PhotoCopiedPayload 照片复制.
type PhotoCopiedPayload struct {
	From PhotoRef `json:"from"`
	To   PhotoRef `json:"to"`
}

// PhotoDeletedPayload 照片删除.
type PhotoDeletedPayload struct {
	Photo PhotoRef `json:"photo"`
}

// -------------------------- 元数据与标签领域 --------------------------

// MetaUpdatedPayload 照片注释或标签集更新.
type MetaUpdatedPayload struct {
	URI  string   `json:"uri"`
	Tags []string `json:"tags,omitempty"`
}

// MetaRemovedPayload 照片元数据被删除.
type MetaRemovedPayload struct {
	URI string `json:"uri"`
}

// TagDeletedPayload 标签被全局删除.
type TagDeletedPayload struct {
	Tag string `json:"tag"`
	// PhotosChanged 被摘除该标签的照片数量.
	PhotosChanged int `json:"photos_changed"`
}

// -------------------------- 文件夹领域 --------------------------

// FolderCreatedPayload 文件夹注册.
type FolderCreatedPayload struct {
	Name string `json:"name"`
}

// FolderRenamedPayload 文件夹改名.
type FolderRenamedPayload struct {
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
	// MetaMigrated 随改名迁移的元数据条数.
	MetaMigrated int `json:"meta_migrated,omitempty"`
}

// FolderDeletedPayload 文件夹注销.
type FolderDeletedPayload struct {
	Name string `json:"name"`
}

// -------------------------- 计数器领域 --------------------------

// CounterResyncedPayload 顺序计数器重建.
type CounterResyncedPayload struct {
	Folder string `json:"folder"`
}
