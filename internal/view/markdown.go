package view

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	g "maragu.dev/gomponents"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
		goldmark.WithRendererOptions(html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// renderInlineMarkdown 将内容描述中的 markdown 渲染为安全的行内 HTML。
// 单段落的外层 <p> 会被去掉，便于放进已有的段落元素。
func renderInlineMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(strings.TrimSpace(src)), &buf); err != nil {
		return "", err
	}
	out := strings.TrimSpace(string(sanitizer.SanitizeBytes(buf.Bytes())))
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return out, nil
}

// Markdown renders src inline, falling back to escaped text on error.
func Markdown(src string) g.Node {
	out, err := renderInlineMarkdown(src)
	if err != nil {
		return g.Text(src)
	}
	return g.Raw(out)
}
