// Package queue 定义消息主题常量与通配模式，供发布/订阅使用.
package queue

// 主题命名规范：pv.<域>.<动作>，尽量稳定且向后兼容.
// 域：photo(照片文件)、meta(元数据)、tag(标签)、folder(文件夹)、counter(顺序计数器)
// 动作：stored/moved/copied/deleted/updated/created/renamed/resynced

const (
	// 照片文件领域.
	TopicPhotoStored  = "pv.photo.stored"  // 照片已写入虚拟文件系统
	TopicPhotoMoved   = "pv.photo.moved"   // 照片在文件夹间移动
	TopicPhotoCopied  = "pv.photo.copied"  // 照片被复制
	TopicPhotoDeleted = "pv.photo.deleted" // 照片被删除

	// 元数据领域.
	TopicMetaUpdated = "pv.meta.updated" // 照片注释或标签集更新
	TopicMetaRemoved = "pv.meta.removed" // 照片元数据被删除

	// 标签领域.
	TopicTagDeleted = "pv.tag.deleted" // 标签被全局删除（含颜色）

	// 文件夹领域.
	TopicFolderCreated = "pv.folder.created" // 文件夹注册
	TopicFolderRenamed = "pv.folder.renamed" // 文件夹改名（含目录移动与元数据迁移）
	TopicFolderDeleted = "pv.folder.deleted" // 文件夹注销（含目录删除）

	// 计数器领域.
	TopicCounterResynced = "pv.counter.resynced" // 顺序计数器从目录内容重建
)

// 主题分组，用于批量订阅.
var (
	// 照片文件相关主题集合.
	PhotoTopics = []string{
		TopicPhotoStored, TopicPhotoMoved, TopicPhotoCopied, TopicPhotoDeleted,
	}

	// 元数据与标签相关主题集合.
	MetaTopics = []string{
		TopicMetaUpdated, TopicMetaRemoved, TopicTagDeleted,
	}

	// 文件夹相关主题集合.
	FolderTopics = []string{
		TopicFolderCreated, TopicFolderRenamed, TopicFolderDeleted,
	}
)
