package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/agencykit/cms/blocks"
)

// Meta is the frontmatter envelope recognized on imported documents. Unknown
// keys are collected into Custom and preserved for callers that want them.
type Meta struct {
	Title    string         `yaml:"title"`
	Slug     string         `yaml:"slug"`
	Status   string         `yaml:"status"`
	Author   string         `yaml:"author"`
	Excerpt  string         `yaml:"excerpt"`
	Category string         `yaml:"category"`
	Tags     []string       `yaml:"tags"`
	Custom   map[string]any `yaml:",inline"`
}

// Document pairs a source path with its parsed frontmatter and body.
type Document struct {
	Path string
	Meta Meta
	Body []byte
}

// ParseDocument splits frontmatter from the Markdown body.
func ParseDocument(path string, source []byte) (*Document, error) {
	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("markdown: parse frontmatter in %s: %w", path, err)
	}
	return &Document{Path: path, Meta: meta, Body: body}, nil
}

// Parser converts Markdown bodies into editor blocks. It is stateless; a
// single instance can be shared across imports.
type Parser struct {
	engine goldmark.Markdown
}

// NewParser constructs a parser with GFM extensions enabled.
func NewParser() *Parser {
	return &Parser{
		engine: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Blocks maps the Markdown body onto the block model: headings, fenced code,
// images, lists, blockquotes, and thematic breaks become their matching block
// variants; everything else becomes a paragraph. Inline formatting is
// flattened to plain text.
func (p *Parser) Blocks(source []byte, id func() uuid.UUID) []blocks.Block {
	if id == nil {
		id = uuid.New
	}

	root := p.engine.Parser().Parse(text.NewReader(source))
	var out []blocks.Block
	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		block, ok := p.convert(node, source, id)
		if !ok {
			continue
		}
		block.Order = len(out)
		out = append(out, block)
	}
	return out
}

func (p *Parser) convert(node ast.Node, source []byte, id func() uuid.UUID) (blocks.Block, bool) {
	switch typed := node.(type) {
	case *ast.Heading:
		level := typed.Level
		if level > 4 {
			level = 4
		}
		return blocks.Block{
			ID:   id(),
			Type: blocks.TypeHeading,
			Content: map[string]any{
				"text":  string(typed.Text(source)),
				"level": level,
			},
			Styles: blocks.DefaultStyles(blocks.TypeHeading),
		}, true
	case *ast.FencedCodeBlock:
		language := ""
		if typed.Info != nil {
			language = string(typed.Language(source))
		}
		return blocks.Block{
			ID:   id(),
			Type: blocks.TypeCode,
			Content: map[string]any{
				"code":     collectLines(typed, source),
				"language": language,
			},
			Styles: blocks.DefaultStyles(blocks.TypeCode),
		}, true
	case *ast.List:
		items := make([]any, 0, typed.ChildCount())
		for item := typed.FirstChild(); item != nil; item = item.NextSibling() {
			items = append(items, string(item.Text(source)))
		}
		return blocks.Block{
			ID:   id(),
			Type: blocks.TypeList,
			Content: map[string]any{
				"items":   items,
				"ordered": typed.IsOrdered(),
			},
			Styles: blocks.DefaultStyles(blocks.TypeList),
		}, true
	case *ast.Blockquote:
		return blocks.Block{
			ID:   id(),
			Type: blocks.TypeQuote,
			Content: map[string]any{
				"text":   string(typed.Text(source)),
				"author": "",
			},
			Styles: blocks.DefaultStyles(blocks.TypeQuote),
		}, true
	case *ast.ThematicBreak:
		return blocks.Block{
			ID:      id(),
			Type:    blocks.TypeDivider,
			Content: map[string]any{},
			Styles:  blocks.DefaultStyles(blocks.TypeDivider),
		}, true
	case *ast.Paragraph:
		if image, ok := soleImage(typed); ok {
			return blocks.Block{
				ID:   id(),
				Type: blocks.TypeImage,
				Content: map[string]any{
					"src":     string(image.Destination),
					"alt":     string(image.Text(source)),
					"caption": string(image.Title),
				},
				Styles: blocks.DefaultStyles(blocks.TypeImage),
			}, true
		}
		body := strings.TrimSpace(string(typed.Text(source)))
		if body == "" {
			return blocks.Block{}, false
		}
		return blocks.Block{
			ID:   id(),
			Type: blocks.TypeParagraph,
			Content: map[string]any{
				"text": body,
			},
			Styles: blocks.DefaultStyles(blocks.TypeParagraph),
		}, true
	}
	return blocks.Block{}, false
}

// soleImage reports whether the paragraph wraps exactly one image and nothing
// else, the way standalone Markdown images parse.
func soleImage(paragraph *ast.Paragraph) (*ast.Image, bool) {
	if paragraph.ChildCount() != 1 {
		return nil, false
	}
	image, ok := paragraph.FirstChild().(*ast.Image)
	return image, ok
}

func collectLines(node *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(source))
	}
	return strings.TrimRight(buf.String(), "\n")
}
