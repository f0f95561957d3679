// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package sitemark

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// defaultTarget is the href or src used for a link or image
// that has no destination.
const defaultTarget = "#"

// RenderString converts a Markdown document into an HTML fragment
// wrapped in a single <div> element.
func RenderString(markdown string) (string, error) {
	doc, err := Document(markdown)
	if err != nil {
		return "", err
	}
	return doc.HTML()
}

// RenderHTML writes the HTML fragment for a Markdown document to w.
// Nothing is written if the document fails to compile.
func RenderHTML(w io.Writer, markdown string) error {
	doc, err := Document(markdown)
	if err != nil {
		return err
	}
	buf, err := AppendHTML(nil, doc.AsNode())
	if err != nil {
		return err
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("render markdown to html: %w", err)
	}
	return nil
}

// Document compiles a Markdown document into a <div> element
// with one child per block.
// It returns the first error encountered, if any.
func Document(markdown string) (*Parent, error) {
	blocks := Parse(markdown)
	children := make([]Node, 0, len(blocks))
	for _, b := range blocks {
		n, err := BlockNode(b)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", b.StartLine, err)
		}
		children = append(children, n.AsNode())
	}
	return NewParent(atom.Div.String(), children), nil
}

// BlockNode compiles a single classified block.
func BlockNode(block *Block) (*Parent, error) {
	switch block.Kind {
	case ParagraphKind:
		return inlineParent(atom.P, block.Source)
	case HeadingKind:
		level := block.HeadingLevel()
		return inlineParent(headingAtom(level), block.Source[level+1:])
	case CodeBlockKind:
		code := block.Source[len(codeFence) : len(block.Source)-len(codeFence)]
		code = strings.TrimSpace(code)
		return NewParent(atom.Pre.String(), []Node{
			NewLeaf(atom.Code.String(), code).AsNode(),
		}), nil
	case QuoteKind:
		lines := strings.Split(block.Source, "\n")
		for i, line := range lines {
			lines[i] = strings.TrimLeft(strings.TrimPrefix(line, ">"), " ")
		}
		return inlineParent(atom.Blockquote, strings.Join(lines, "\n"))
	case OrderedListKind:
		return listParent(atom.Ol, block.Source, func(line string) string {
			return line[orderedListMarkerEnd(line):]
		})
	case UnorderedListKind:
		return listParent(atom.Ul, block.Source, func(line string) string {
			return strings.TrimPrefix(line, unorderedListMarker)
		})
	default:
		return nil, fmt.Errorf("compile block: unknown kind %v", block.Kind)
	}
}

func headingAtom(level int) atom.Atom {
	switch level {
	case 1:
		return atom.H1
	case 2:
		return atom.H2
	case 3:
		return atom.H3
	case 4:
		return atom.H4
	case 5:
		return atom.H5
	default:
		return atom.H6
	}
}

// inlineParent returns an element whose children are the spans of text.
func inlineParent(tag atom.Atom, text string) (*Parent, error) {
	children, err := inlineNodes(text)
	if err != nil {
		return nil, err
	}
	return NewParent(tag.String(), children), nil
}

func listParent(tag atom.Atom, source string, stripMarker func(line string) string) (*Parent, error) {
	lines := strings.Split(source, "\n")
	items := make([]Node, 0, len(lines))
	for _, line := range lines {
		item, err := inlineParent(atom.Li, stripMarker(line))
		if err != nil {
			return nil, err
		}
		items = append(items, item.AsNode())
	}
	return NewParent(tag.String(), items), nil
}

// inlineNodes tokenizes text and converts each span to a leaf.
// The result is never nil.
func inlineNodes(text string) ([]Node, error) {
	spans, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, 0, len(spans))
	for _, span := range spans {
		leaf, err := SpanNode(span)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, leaf.AsNode())
	}
	return nodes, nil
}

// SpanNode converts a span into a leaf node.
// Links and images without a target point to "#".
func SpanNode(span Span) (*Leaf, error) {
	switch span.Kind {
	case PlainKind:
		return NewText(span.Text), nil
	case BoldKind:
		return NewLeaf(atom.B.String(), span.Text), nil
	case ItalicKind:
		return NewLeaf(atom.I.String(), span.Text), nil
	case CodeKind:
		return NewLeaf(atom.Code.String(), span.Text), nil
	case LinkKind:
		return NewLeaf(atom.A.String(), span.Text,
			html.Attribute{Key: atom.Href.String(), Val: spanTarget(span)},
		), nil
	case ImageKind:
		return NewLeaf(atom.Img.String(), "",
			html.Attribute{Key: atom.Src.String(), Val: spanTarget(span)},
			html.Attribute{Key: atom.Alt.String(), Val: span.Text},
		), nil
	default:
		return nil, fmt.Errorf("convert %v: %w", span.Kind, ErrInvalidSpanKind)
	}
}

func spanTarget(span Span) string {
	if !span.TargetPresent {
		return defaultTarget
	}
	return span.Target
}
