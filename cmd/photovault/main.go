// Package main 启动应用程序
package main

import "github.com/yeisme/photovault/pkg/cmd"

//	@title			PhotoVault API
//	@version		1.0
//	@description	PhotoVault 是一个照片整理服务，提供照片存储、文件夹管理、标签元数据与搜索等功能。

//	@license.name	MIT
//	@license.url	https://opensource.org/license/mit/

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}
