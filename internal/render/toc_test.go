// 渲染与目录提取的单元测试
package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtractHeadings 测试标题提取
func TestExtractHeadings(t *testing.T) {
	t.Run("带显式id的标题", func(t *testing.T) {
		html := `<h1 id="intro">Introduction</h1><p>text</p><h2 id="setup">Setup Guide</h2>`
		headings := ExtractHeadings(html)

		require.Len(t, headings, 2)
		assert.Equal(t, Heading{Level: 1, Text: "Introduction", AnchorID: "intro"}, headings[0])
		assert.Equal(t, Heading{Level: 2, Text: "Setup Guide", AnchorID: "setup"}, headings[1])
	})

	t.Run("缺少id时按文本合成锚点", func(t *testing.T) {
		html := `<h3>Advanced Usage</h3>`
		headings := ExtractHeadings(html)

		require.Len(t, headings, 1)
		assert.Equal(t, "advanced-usage", headings[0].AnchorID)
	})

	t.Run("标题内的行内标签被剥除", func(t *testing.T) {
		html := `<h2 id="code"><code>context.Context</code> patterns</h2>`
		headings := ExtractHeadings(html)

		require.Len(t, headings, 1)
		assert.Equal(t, "context.Context patterns", headings[0].Text)
	})

	t.Run("空文本标题被跳过", func(t *testing.T) {
		html := `<h1></h1><h2 id="real">Real</h2>`
		headings := ExtractHeadings(html)

		require.Len(t, headings, 1)
		assert.Equal(t, "Real", headings[0].Text)
	})

	t.Run("无标题时返回空切片", func(t *testing.T) {
		assert.Empty(t, ExtractHeadings("<p>no headings here</p>"))
	})
}

// TestMarkdown 测试Markdown渲染与消毒
func TestMarkdown(t *testing.T) {
	t.Run("标题获得锚点id", func(t *testing.T) {
		html := Markdown("# My Title\n\nbody text")
		assert.Contains(t, html, "<h1")
		assert.Contains(t, html, `id=`)

		headings := ExtractHeadings(html)
		require.Len(t, headings, 1)
		assert.Equal(t, "My Title", headings[0].Text)
	})

	t.Run("脚本标签被消毒", func(t *testing.T) {
		html := Markdown("hello <script>alert(1)</script> world")
		assert.False(t, strings.Contains(html, "<script>"))
	})

	t.Run("渲染结果与目录提取衔接", func(t *testing.T) {
		content := "# First\n\ntext\n\n## Second\n\nmore"
		headings := ExtractHeadings(Markdown(content))

		require.Len(t, headings, 2)
		assert.Equal(t, 1, headings[0].Level)
		assert.Equal(t, "Second", headings[1].Text)
	})
}
