package blocks

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer projects blocks into their read-only preview form. The projection
// is pure: rendering never mutates the block, and unknown variants produce a
// visible placeholder instead of failing.
//
// Paragraph and quote bodies are treated as Markdown. The renderer is
// stateless after construction so a single instance can be shared.
type Renderer struct {
	markdown goldmark.Markdown
}

// NewRenderer constructs a preview renderer with GFM extensions enabled.
func NewRenderer() *Renderer {
	return &Renderer{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps()),
		),
	}
}

// RenderPreview returns the HTML projection for a single block.
func (r *Renderer) RenderPreview(b Block) string {
	switch b.Type {
	case TypeHeading:
		level := intValue(b.Content, "level", 2)
		if level < 1 {
			level = 1
		}
		if level > 4 {
			level = 4
		}
		return fmt.Sprintf("<h%d>%s</h%d>", level, html.EscapeString(stringValue(b.Content, "text")), level)
	case TypeParagraph:
		return r.renderMarkdown(stringValue(b.Content, "text"))
	case TypeImage:
		var sb strings.Builder
		sb.WriteString("<figure>")
		sb.WriteString(fmt.Sprintf("<img src=%q alt=%q>", stringValue(b.Content, "src"), stringValue(b.Content, "alt")))
		if caption := stringValue(b.Content, "caption"); caption != "" {
			sb.WriteString("<figcaption>" + html.EscapeString(caption) + "</figcaption>")
		}
		sb.WriteString("</figure>")
		return sb.String()
	case TypeVideo:
		return fmt.Sprintf("<video src=%q controls></video>", stringValue(b.Content, "src"))
	case TypeCode:
		lang := stringValue(b.Content, "language")
		if lang == "" {
			lang = "plaintext"
		}
		return fmt.Sprintf("<pre><code class=%q>%s</code></pre>",
			"language-"+lang, html.EscapeString(stringValue(b.Content, "code")))
	case TypeList:
		tag := "ul"
		if boolValue(b.Content, "ordered") {
			tag = "ol"
		}
		var sb strings.Builder
		sb.WriteString("<" + tag + ">")
		for _, item := range sliceValue(b.Content, "items") {
			if text, ok := item.(string); ok {
				sb.WriteString("<li>" + html.EscapeString(text) + "</li>")
			}
		}
		sb.WriteString("</" + tag + ">")
		return sb.String()
	case TypeQuote:
		var sb strings.Builder
		sb.WriteString("<blockquote>")
		sb.WriteString(r.renderMarkdown(stringValue(b.Content, "text")))
		if author := stringValue(b.Content, "author"); author != "" {
			sb.WriteString("<cite>" + html.EscapeString(author) + "</cite>")
		}
		sb.WriteString("</blockquote>")
		return sb.String()
	case TypeTable:
		return r.renderTable(b)
	case TypeButton:
		style := stringValue(b.Content, "style")
		if style == "" {
			style = "primary"
		}
		return fmt.Sprintf("<a class=%q href=%q>%s</a>",
			"btn btn-"+style, stringValue(b.Content, "url"), html.EscapeString(stringValue(b.Content, "text")))
	case TypeSpacer:
		return fmt.Sprintf(`<div style="height:%dpx"></div>`, intValue(b.Content, "height", 0))
	case TypeDivider:
		return "<hr>"
	}
	return fmt.Sprintf(`<div class="block-placeholder">Unsupported block type: %s</div>`, html.EscapeString(string(b.Type)))
}

// RenderBlocks projects an ordered block sequence into joined preview HTML.
func (r *Renderer) RenderBlocks(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, r.RenderPreview(b))
	}
	return strings.Join(parts, "\n")
}

func (r *Renderer) renderMarkdown(source string) string {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(source), &buf); err != nil {
		return "<p>" + html.EscapeString(source) + "</p>"
	}
	return strings.TrimSpace(buf.String())
}

func (r *Renderer) renderTable(b Block) string {
	var sb strings.Builder
	sb.WriteString("<table><thead><tr>")
	for _, header := range sliceValue(b.Content, "headers") {
		if text, ok := header.(string); ok {
			sb.WriteString("<th>" + html.EscapeString(text) + "</th>")
		}
	}
	sb.WriteString("</tr></thead><tbody>")
	for _, row := range sliceValue(b.Content, "rows") {
		cells, ok := row.([]any)
		if !ok {
			continue
		}
		sb.WriteString("<tr>")
		for _, cell := range cells {
			if text, ok := cell.(string); ok {
				sb.WriteString("<td>" + html.EscapeString(text) + "</td>")
			}
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</tbody></table>")
	return sb.String()
}

func stringValue(content map[string]any, key string) string {
	if v, ok := content[key].(string); ok {
		return v
	}
	return ""
}

func intValue(content map[string]any, key string, fallback int) int {
	switch v := content[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return fallback
}

func boolValue(content map[string]any, key string) bool {
	v, _ := content[key].(bool)
	return v
}

func sliceValue(content map[string]any, key string) []any {
	if v, ok := content[key].([]any); ok {
		return v
	}
	return nil
}
