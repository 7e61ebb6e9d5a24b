package render

import (
	"regexp"
	"strconv"
	"strings"
)

// Heading 目录条目
// 由渲染后的HTML标题标签提取，用于生成页面目录
type Heading struct {
	Level    int    `json:"level"`     // 标题级别 1-6
	Text     string `json:"text"`      // 标题纯文本
	AnchorID string `json:"anchor_id"` // 锚点ID
}

var (
	// 匹配渲染器输出的标题标签；依赖上游渲染结果的标签形态稳定，并非完整HTML解析
	headingPattern = regexp.MustCompile(`(?s)<h([1-6])([^>]*)>(.*?)</h[1-6]>`)
	idPattern      = regexp.MustCompile(`id="([^"]*)"`)
	tagPattern     = regexp.MustCompile(`<[^>]+>`)
)

// ExtractHeadings 从渲染后的HTML中提取标题序列
// 标题缺少锚点id时根据文本合成（小写、空格转连字符）
func ExtractHeadings(html string) []Heading {
	matches := headingPattern.FindAllStringSubmatch(html, -1)
	headings := make([]Heading, 0, len(matches))

	for _, m := range matches {
		level, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		text := strings.TrimSpace(tagPattern.ReplaceAllString(m[3], ""))
		if text == "" {
			continue
		}

		anchor := ""
		if idMatch := idPattern.FindStringSubmatch(m[2]); idMatch != nil {
			anchor = idMatch[1]
		}
		if anchor == "" {
			anchor = synthesizeAnchor(text)
		}

		headings = append(headings, Heading{
			Level:    level,
			Text:     text,
			AnchorID: anchor,
		})
	}
	return headings
}

// synthesizeAnchor 根据标题文本合成锚点ID
func synthesizeAnchor(text string) string {
	return strings.ReplaceAll(strings.ToLower(text), " ", "-")
}
