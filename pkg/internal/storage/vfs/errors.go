package vfs

import (
	"errors"
	"fmt"
)

// ErrNotFound 表示路径不存在. 通过 errors.Is 判断.
var ErrNotFound = errors.New("vfs: path not found")

// ErrNotDirectory 表示对文件执行了目录操作.
var ErrNotDirectory = errors.New("vfs: not a directory")

// NotFoundError 构造带路径信息的不存在错误，包裹 ErrNotFound.
func NotFoundError(path string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, path)
}

// IsNotFound 判断错误是否为路径不存在.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
