// Package types 定义应用程序中使用的各种数据类型和结构体. 主要为 Request 和 Response 结构体.
package types

import "github.com/yeisme/photovault/pkg/internal/meta"

// SavePhotoRequest 保存照片请求.
// FileName 为空时由顺序命名服务生成 photo_NNN.jpg.
type SavePhotoRequest struct {
	Folder   string `binding:"required" json:"folder"`
	FileName string `json:"file_name,omitempty"`
	Content  string `binding:"required" json:"content"`
	Encoding string `binding:"omitempty,oneof=utf8 base64" json:"encoding,omitempty"`  // 可选：内容编码，默认 base64
	Source   string `binding:"omitempty,oneof=capture import" json:"source,omitempty"` // 可选：capture（拍摄）或 import（导入）
}

// SavePhotoResponse 保存照片结果.
type SavePhotoResponse struct {
	Folder   string `json:"folder"`
	FileName string `json:"file_name"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
}

// GetPhotoResponse 读取照片结果，含内容与元数据.
type GetPhotoResponse struct {
	Folder   string      `json:"folder"`
	FileName string      `json:"file_name"`
	Path     string      `json:"path"`
	Content  string      `json:"content"`
	Encoding string      `json:"encoding"`
	Metadata meta.Record `json:"metadata"`
}

// GalleryEntry 相册中的一张照片.
type GalleryEntry struct {
	FileName string `json:"file_name"`
	Path     string `json:"path"`
	Number   int    `json:"number"` // 顺序编号，无编号文件为 0
	Size     int64  `json:"size"`
}

// GalleryResponse 文件夹相册列表，按顺序编号升序.
type GalleryResponse struct {
	Folder string         `json:"folder"`
	Photos []GalleryEntry `json:"photos"`
}

// MovePhotoRequest 移动照片请求. ToFileName 为空时沿用原文件名.
type MovePhotoRequest struct {
	FromFolder string `binding:"required" json:"from_folder"`
	FileName   string `binding:"required" json:"file_name"`
	ToFolder   string `binding:"required" json:"to_folder"`
	ToFileName string `json:"to_file_name,omitempty"`
}

// MovePhotoResponse 移动照片结果，携带新旧路径.
type MovePhotoResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// CopyPhotoRequest 复制照片请求. ToFileName 为空时按目标文件夹顺序命名.
type CopyPhotoRequest struct {
	FromFolder string `binding:"required" json:"from_folder"`
	FileName   string `binding:"required" json:"file_name"`
	ToFolder   string `binding:"required" json:"to_folder"`
	ToFileName string `json:"to_file_name,omitempty"`
}

// CopyPhotoResponse 复制照片结果.
type CopyPhotoResponse struct {
	From     string `json:"from"`
	To       string `json:"to"`
	FileName string `json:"file_name"`
}

// DeletePhotoRequest 删除照片请求. Idempotent 为 true 时照片不存在不报错.
type DeletePhotoRequest struct {
	Folder     string `binding:"required" json:"folder"`
	FileName   string `binding:"required" json:"file_name"`
	Idempotent bool   `json:"idempotent,omitempty"`
}
