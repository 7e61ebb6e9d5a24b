// Package render 提供Markdown渲染和目录提取功能
// Markdown到HTML的转换交给blackfriday完成，输出经bluemonday消毒后对外
package render

import (
	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

var policy = newPolicy()

// newPolicy 构建HTML消毒策略
// 在UGC基础策略上放行标题锚点id和代码高亮class，目录提取依赖标题id
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("class").OnElements("code", "pre")
	return p
}

// Markdown 将Markdown文本渲染为安全的HTML
// 启用常用扩展和自动标题ID，渲染结果即对外暴露的content_html字段
func Markdown(content string) string {
	if content == "" {
		return ""
	}
	unsafe := blackfriday.Run(
		[]byte(content),
		blackfriday.WithExtensions(blackfriday.CommonExtensions|blackfriday.AutoHeadingIDs),
	)
	return string(policy.SanitizeBytes(unsafe))
}
