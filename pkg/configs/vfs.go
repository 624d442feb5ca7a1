package configs

import (
	"github.com/spf13/viper"
)

// VFSType 虚拟文件系统后端类型.
type VFSType string

const (
	VFSTypeKV VFSType = "kv" // 基于 KV 存储的模拟文件系统（单个 JSON blob）
	VFSTypeOS VFSType = "os" // 真实文件系统直通
	VFSTypeS3 VFSType = "s3" // MinIO/S3 对象存储后端
)

const (
	DefaultVFSType      = string(VFSTypeKV)
	DefaultVFSRoot      = "data/photovault" // os 后端的根目录
	DefaultVFSPhotosDir = "/photos"         // 照片顶层目录（VFS 内路径）
)

// VFSConfig 虚拟文件系统配置.
type VFSConfig struct {
	Type string `mapstructure:"type" rule:"oneof=kv os s3"`
	// Root os 后端在宿主机上的根目录，所有 VFS 路径都映射到该目录之下.
	Root string `mapstructure:"root"`
	// PhotosDir 照片库在 VFS 中的顶层目录.
	PhotosDir string `mapstructure:"photos_dir"`
}

// setDefaults 设置 VFS 配置的默认值.
func (c *VFSConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("vfs.type", DefaultVFSType)
	v.SetDefault("vfs.root", DefaultVFSRoot)
	v.SetDefault("vfs.photos_dir", DefaultVFSPhotosDir)
}
