package types

// ListFoldersResponse 文件夹列表，按注册顺序.
type ListFoldersResponse struct {
	Folders []string `json:"folders"`
}

// CreateFolderRequest 注册文件夹请求.
type CreateFolderRequest struct {
	Name string `binding:"required" json:"name"`
}

// CreateFolderResponse 注册文件夹结果.
type CreateFolderResponse struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// RenameFolderRequest 文件夹改名请求.
type RenameFolderRequest struct {
	NewName string `binding:"required" json:"new_name"`
}

// RenameFolderResponse 文件夹改名结果.
type RenameFolderResponse struct {
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
	// MetaMigrated 随改名迁移的元数据条数.
	MetaMigrated int `json:"meta_migrated"`
}

// ResyncCounterResponse 顺序计数器重建结果.
type ResyncCounterResponse struct {
	Folder  string `json:"folder"`
	Counter int    `json:"counter"`
}
