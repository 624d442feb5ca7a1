// Package vfs 提供路径寻址的层次化文件系统抽象.
//
// 三种后端行为上保持一致：
//   - kv: 基于 KV 存储的模拟文件系统，整棵目录树序列化为单个 JSON blob
//   - os: 真实文件系统直通，所有 VFS 路径映射到配置的根目录之下
//   - s3: MinIO/S3 对象存储，目录用零字节标记对象模拟
//
// 父子关系不以指针存储，而是从路径字符串派生：列目录、删子树、移动子树
// 都是对扁平键空间的全量扫描加前缀过滤. 在个人照片库的规模（数百到几千条）
// 这是可接受的，换来的是与持久化 JSON 形状的一一对应.
package vfs

import (
	"context"
	"fmt"
	"time"

	"github.com/yeisme/photovault/pkg/configs"
	"github.com/yeisme/photovault/pkg/internal/storage/kv"
)

// Encoding 文件内容编码.
type Encoding string

const (
	EncodingUTF8   Encoding = "utf8"
	EncodingBase64 Encoding = "base64"
)

// Info 描述路径的状态，未知路径返回 Exists=false 而不是错误.
type Info struct {
	Exists           bool      `json:"exists"`
	IsDirectory      bool      `json:"is_directory"`
	Size             int64     `json:"size"`
	ModificationTime time.Time `json:"modification_time"`
}

// FileSystem 定义虚拟文件系统接口.
type FileSystem interface {
	// Stat 查询路径状态，路径不存在不是错误.
	Stat(ctx context.Context, path string) (Info, error)
	// Mkdir 创建目录；intermediates 为 true 时逐级创建所有缺失的祖先目录.
	// 对已存在的目录幂等.
	Mkdir(ctx context.Context, path string, intermediates bool) error
	// List 返回 path 直接子项的名称（非完整路径），按字典序排序.
	List(ctx context.Context, path string) ([]string, error)
	// WriteString 创建或覆盖文件.
	WriteString(ctx context.Context, path, content string, enc Encoding) error
	// ReadString 读取文件内容，文件不存在返回 ErrNotFound.
	ReadString(ctx context.Context, path string, enc Encoding) (string, error)
	// Copy 复制单个文件（不递归目录），源不存在返回 ErrNotFound.
	Copy(ctx context.Context, from, to string) error
	// Move 移动文件或目录；目录移动会重写所有后代键. 源不存在返回 ErrNotFound.
	Move(ctx context.Context, from, to string) error
	// Delete 删除路径；目录时递归删除所有后代.
	// idempotent 为 false 且路径不存在时返回 ErrNotFound.
	Delete(ctx context.Context, path string, idempotent bool) error
	// Close 释放后端资源.
	Close() error
}

// Client 包装具体的 FileSystem 后端.
type Client struct {
	FileSystem
}

// NewClient 根据配置创建 VFS 客户端. kv 后端依赖已初始化的软失败存储适配器.
func NewClient(ctx context.Context, store *kv.Store) (*Client, error) {
	cfg := configs.GetConfig().VFS

	var (
		fs  FileSystem
		err error
	)

	switch configs.VFSType(cfg.Type) {
	case configs.VFSTypeKV:
		fs = NewKVFileSystem(store)
	case configs.VFSTypeOS:
		fs, err = NewOSFileSystem(cfg.Root)
	case configs.VFSTypeS3:
		fs, err = NewS3FileSystem(ctx)
	default:
		err = fmt.Errorf("unsupported VFS type: %s", cfg.Type)
	}

	if err != nil {
		return nil, err
	}

	return &Client{FileSystem: fs}, nil
}
