//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// data/ 是根目录 data/ 的副本（//go:embed 不能引用上级目录）。
//
// 手动构建：
//
//	cp ../data/view.yaml ../data/tour.tengo data/
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed data/view.yaml data/tour.tengo
var dataFS embed.FS
