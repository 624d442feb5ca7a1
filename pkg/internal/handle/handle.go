// Package handle 提供HTTP请求处理器的实现.
package handle

import (
	"errors"
	"net/http"

	"github.com/yeisme/photovault/pkg/internal/registry"
	"github.com/yeisme/photovault/pkg/internal/storage/vfs"
)

// statusOf 把领域错误映射到 HTTP 状态码.
func statusOf(err error) int {
	switch {
	case vfs.IsNotFound(err), errors.Is(err, registry.ErrNotRegistered):
		return http.StatusNotFound
	case errors.Is(err, registry.ErrDuplicate), errors.Is(err, registry.ErrEmptyName),
		errors.Is(err, vfs.ErrNotDirectory):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
