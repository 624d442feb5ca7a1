package vfs

import "strings"

// Normalize 规范化 VFS 路径：补齐前导斜杠、折叠重复斜杠、去掉尾部斜杠.
// 根目录规范化为空字符串，这样任何子路径都严格以 "/" 开头，
// 前缀匹配 parent+"/" 不会误伤同名前缀的兄弟目录.
func Normalize(path string) string {
	if path == "" || path == "/" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	path = strings.TrimSuffix(path, "/")
	if path == "/" {
		return ""
	}
	return path
}

// Parent 返回父目录路径，顶层路径的父目录是根（空字符串）.
func Parent(path string) string {
	path = Normalize(path)
	idx := strings.LastIndex(path, "/")
	if idx <= 0 {
		return ""
	}
	return path[:idx]
}

// Base 返回路径的最后一段.
func Base(path string) string {
	path = Normalize(path)
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}

// isChildOf 判断 path 是否是 dir 的直接子项.
func isChildOf(path, dir string) bool {
	if !strings.HasPrefix(path, dir+"/") {
		return false
	}
	rest := path[len(dir)+1:]
	return rest != "" && !strings.Contains(rest, "/")
}

// isDescendantOf 判断 path 是否位于 dir 子树内（不含 dir 本身）.
func isDescendantOf(path, dir string) bool {
	return strings.HasPrefix(path, dir+"/")
}

// rebase 将 path 从 from 子树换到 to 子树，只替换第一次出现的前缀.
func rebase(path, from, to string) string {
	return strings.Replace(path, from, to, 1)
}
