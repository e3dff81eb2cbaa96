package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/pagenorm/layout"
)

func element(tag atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: tag,
		Data:     tag.String(),
		Attr:     attrs,
	}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// exportHTML renders the pages as one HTML document
func (e *Exporter) exportHTML(results []*layout.Result, w io.Writer) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	title := element(atom.Title)
	title.AppendChild(textNode(e.config.Title))
	head.AppendChild(title)
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)
	for _, r := range results {
		body.AppendChild(e.pageNode(r))
	}

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}
	return nil
}

// pageNode builds the section of one page. Consecutive list items share a
// list; deeper levels nest inside the last item of the enclosing list.
func (e *Exporter) pageNode(r *layout.Result) *html.Node {
	section := element(atom.Section,
		attr("class", "page"),
		attr("data-page", strconv.Itoa(r.Page)),
		attr("data-width", e.number(r.Width)),
		attr("data-height", e.number(r.Height)),
		attr("data-leading", e.number(r.Stats.Leading)),
		attr("data-anchor-count", strconv.Itoa(r.Stats.AnchorCount)),
	)

	var lists []*html.Node
	for _, b := range r.Blocks {
		if !b.IsListItem() {
			lists = nil
			var n *html.Node
			if b.Type == layout.BlockMetadata {
				n = element(atom.Div, attr("class", "metadata"))
			} else {
				n = element(atom.P)
			}
			n.Attr = append(n.Attr, e.blockAttrs(b)...)
			e.appendLines(n, b)
			section.AppendChild(n)
			continue
		}

		if len(lists) == 0 {
			ul := element(atom.Ul)
			section.AppendChild(ul)
			lists = append(lists, ul)
		}
		for len(lists) > b.Level+1 {
			lists = lists[:len(lists)-1]
		}
		for len(lists) < b.Level+1 {
			parent := lists[len(lists)-1]
			ul := element(atom.Ul)
			if parent.LastChild != nil {
				parent.LastChild.AppendChild(ul)
			} else {
				parent.AppendChild(ul)
			}
			lists = append(lists, ul)
		}

		li := element(atom.Li)
		li.Attr = append(li.Attr, e.blockAttrs(b)...)
		e.appendLines(li, b)
		lists[len(lists)-1].AppendChild(li)
	}

	return section
}

func (e *Exporter) blockAttrs(b *layout.Block) []html.Attribute {
	attrs := []html.Attribute{
		attr("id", b.ID),
		attr("data-type", b.Type.String()),
		attr("data-indent-x", e.number(b.IndentX)),
		attr("data-text-x", e.number(b.TextX)),
		attr("data-bbox", strings.Join([]string{
			e.number(b.BBox.X0), e.number(b.BBox.Y0),
			e.number(b.BBox.X1), e.number(b.BBox.Y1),
		}, " ")),
		attr("data-font", b.Style.Font),
		attr("data-size", e.number(b.Style.Size)),
		attr("data-color", b.Style.Color.Hex()),
	}
	if b.IsListItem() {
		attrs = append(attrs,
			attr("data-level", strconv.Itoa(b.Level)),
			attr("data-marker", b.Marker),
		)
	}
	return attrs
}

// appendLines adds one span per line. The marker of a list item is kept in
// data-marker rather than the text; lines sharing a baseline are not
// separated.
func (e *Exporter) appendLines(n *html.Node, b *layout.Block) {
	var prev *layout.Line
	for i, l := range b.Lines {
		content := l.Content
		if i == 0 && b.IsListItem() {
			content = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(content), b.Marker))
			if content == "" {
				prev = l
				continue
			}
		}

		if i > 0 && l.Baseline != prev.Baseline {
			n.AppendChild(textNode("\n"))
		}
		prev = l

		span := element(atom.Span,
			attr("class", "line"),
			attr("data-x", e.number(l.X0)),
			attr("data-baseline", e.number(l.Baseline)),
		)
		if l.Link != "" {
			a := element(atom.A, attr("href", l.Link))
			a.AppendChild(textNode(content))
			span.AppendChild(a)
		} else {
			span.AppendChild(textNode(content))
		}
		n.AppendChild(span)
	}
}
