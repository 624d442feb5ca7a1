// Package storage 聚合所有存储资源的初始化与访问：KV 存储、虚拟文件系统与消息队列.
//
// Example:
//
// 初始化
//
//	 ctx := context.Background()
//	 mgr, err := storage.Init(ctx)
//
//		if err != nil {
//		    // 处理错误
//		}
//
// 获取存储客户端
//
//	store := mgr.GetStore()
//	vfsClient := mgr.GetVFSClient()
package storage

import (
	"context"
	"sync"

	kvc "github.com/yeisme/photovault/pkg/internal/storage/kv"
	mqc "github.com/yeisme/photovault/pkg/internal/storage/mq"
	vfsc "github.com/yeisme/photovault/pkg/internal/storage/vfs"
	plog "github.com/yeisme/photovault/pkg/log"
)

// Manager 聚合所有存储资源.
type Manager struct {
	KV    *kvc.Client
	Store *kvc.Store
	VFS   *vfsc.Client
	MQ    *mqc.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置. 重复调用只返回已初始化实例.
// KV 必须先于 VFS 初始化：kv 后端的文件系统建立在软失败存储适配器之上.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		m := &Manager{}

		kvi, e := kvc.NewKVClient(ctx)
		if e != nil {
			err = e
			return
		}
		m.KV = kvi
		m.Store = kvc.NewStore(kvi)

		vfsi, e := vfsc.NewClient(ctx, m.Store)
		if e != nil {
			err = e
			return
		}
		m.VFS = vfsi

		mqi, e := mqc.New(ctx)
		if e != nil {
			err = e
			return
		}
		m.MQ = mqi

		mgr = m

		plog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// GetKVClient 获取底层 KV 客户端.
func (m *Manager) GetKVClient() *kvc.Client {
	return m.KV
}

// GetStore 获取软失败语义的存储适配器.
func (m *Manager) GetStore() *kvc.Store {
	return m.Store
}

// GetVFSClient 获取虚拟文件系统客户端.
func (m *Manager) GetVFSClient() *vfsc.Client {
	return m.VFS
}

// GetMQClient 获取消息队列客户端.
func (m *Manager) GetMQClient() *mqc.Client {
	return m.MQ
}

// Close 依次释放所有存储资源.
func (m *Manager) Close() error {
	var err error

	if m.MQ != nil {
		if e := m.MQ.Close(); e != nil {
			err = e
		}
	}

	if m.VFS != nil {
		if e := m.VFS.Close(); e != nil {
			err = e
		}
	}

	if m.KV != nil {
		if e := m.KV.Close(); e != nil {
			err = e
		}
	}

	return err
}
