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
	"unsafe"

	"golang.org/x/net/html"
)

const (
	nodeTypeLeaf = 1 + iota
	nodeTypeParent
)

// Node is a pointer to a [Leaf] or a [Parent].
// Nodes can be compared for equality using the == operator.
type Node struct {
	ptr unsafe.Pointer
	typ uint8
}

// Leaf returns the referenced leaf
// or nil if the pointer does not reference a leaf.
func (n Node) Leaf() *Leaf {
	if n.typ != nodeTypeLeaf {
		return nil
	}
	return (*Leaf)(n.ptr)
}

// Parent returns the referenced parent
// or nil if the pointer does not reference a parent.
func (n Node) Parent() *Parent {
	if n.typ != nodeTypeParent {
		return nil
	}
	return (*Parent)(n.ptr)
}

// ChildCount returns the number of children the node has.
// Calling ChildCount on the zero value or on a leaf returns 0.
func (n Node) ChildCount() int {
	return n.Parent().ChildCount()
}

// Child returns the i'th child of the node.
func (n Node) Child(i int) Node {
	if p := n.Parent(); p != nil {
		return p.Child(i)
	}
	panic("Child on non-parent Node")
}

// HTML serializes the node and its descendants.
func (n Node) HTML() (string, error) {
	b, err := AppendHTML(nil, n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// A Leaf is a terminal HTML node: an element with text content,
// or raw text if it has no tag.
type Leaf struct {
	tag      string
	value    string
	hasValue bool
	attrs    []html.Attribute
}

// NewLeaf returns a new leaf element.
// An empty tag produces a leaf that renders its value verbatim.
func NewLeaf(tag, value string, attrs ...html.Attribute) *Leaf {
	return &Leaf{
		tag:      tag,
		value:    value,
		hasValue: true,
		attrs:    attrs,
	}
}

// NewText returns a new tagless leaf.
func NewText(value string) *Leaf {
	return NewLeaf("", value)
}

// Tag returns the leaf's element name
// or the empty string for raw text.
func (leaf *Leaf) Tag() string {
	if leaf == nil {
		return ""
	}
	return leaf.tag
}

// Value returns the leaf's text content.
func (leaf *Leaf) Value() string {
	if leaf == nil {
		return ""
	}
	return leaf.value
}

// HasValue reports whether the leaf's content is set.
// The zero Leaf has no value and cannot be rendered.
func (leaf *Leaf) HasValue() bool {
	return leaf != nil && leaf.hasValue
}

// Attributes returns the leaf's attributes in insertion order.
func (leaf *Leaf) Attributes() []html.Attribute {
	if leaf == nil {
		return nil
	}
	return leaf.attrs
}

// HTML serializes the leaf.
func (leaf *Leaf) HTML() (string, error) {
	return leaf.AsNode().HTML()
}

func (leaf *Leaf) appendHTML(dst []byte) ([]byte, error) {
	if !leaf.HasValue() {
		if leaf.Tag() == "" {
			return dst, fmt.Errorf("render text: %w", ErrMissingValue)
		}
		return dst, fmt.Errorf("render <%s>: %w", leaf.tag, ErrMissingValue)
	}
	if leaf.tag == "" {
		return append(dst, leaf.value...), nil
	}
	dst = appendOpenTag(dst, leaf.tag, leaf.attrs)
	dst = append(dst, leaf.value...)
	dst = appendCloseTag(dst, leaf.tag)
	return dst, nil
}

// AsNode converts the leaf to a [Node] pointer.
func (leaf *Leaf) AsNode() Node {
	if leaf == nil {
		return Node{}
	}
	return Node{
		typ: nodeTypeLeaf,
		ptr: unsafe.Pointer(leaf),
	}
}

// A Parent is an HTML element that contains other nodes.
type Parent struct {
	tag      string
	children []Node
	attrs    []html.Attribute
}

// NewParent returns a new element with the given children.
// A nil children slice means the children are absent,
// which fails to render.
// Pass an empty, non-nil slice for an element with no content.
func NewParent(tag string, children []Node, attrs ...html.Attribute) *Parent {
	return &Parent{
		tag:      tag,
		children: children,
		attrs:    attrs,
	}
}

// Tag returns the element name.
func (p *Parent) Tag() string {
	if p == nil {
		return ""
	}
	return p.tag
}

// Attributes returns the element's attributes in insertion order.
func (p *Parent) Attributes() []html.Attribute {
	if p == nil {
		return nil
	}
	return p.attrs
}

// ChildCount returns the number of children the node has.
// Calling ChildCount on nil returns 0.
func (p *Parent) ChildCount() int {
	if p == nil {
		return 0
	}
	return len(p.children)
}

// Child returns the i'th child of the node.
func (p *Parent) Child(i int) Node {
	return p.children[i]
}

// HTML serializes the element and its descendants.
func (p *Parent) HTML() (string, error) {
	return p.AsNode().HTML()
}

func (p *Parent) validate() error {
	if p.tag == "" {
		return fmt.Errorf("render parent: %w", ErrMissingTag)
	}
	if p.children == nil {
		return fmt.Errorf("render <%s>: %w", p.tag, ErrMissingChildren)
	}
	return nil
}

// AsNode converts the parent to a [Node] pointer.
func (p *Parent) AsNode() Node {
	if p == nil {
		return Node{}
	}
	return Node{
		typ: nodeTypeParent,
		ptr: unsafe.Pointer(p),
	}
}

// AppendHTML appends the serialized form of n to dst
// and returns the resulting byte slice.
// It returns the first error encountered, if any,
// in which case the returned slice holds partial output.
func AppendHTML(dst []byte, n Node) ([]byte, error) {
	var err error
	Walk(n, &WalkOptions{
		Pre: func(c *Cursor) bool {
			if err != nil {
				return false
			}
			if leaf := c.Node().Leaf(); leaf != nil {
				dst, err = leaf.appendHTML(dst)
				return false
			}
			p := c.Node().Parent()
			if p == nil {
				err = fmt.Errorf("render html: nil node")
				return false
			}
			if err = p.validate(); err != nil {
				return false
			}
			dst = appendOpenTag(dst, p.tag, p.attrs)
			return true
		},
		Post: func(c *Cursor) bool {
			if err != nil {
				return false
			}
			dst = appendCloseTag(dst, c.Node().Parent().tag)
			return true
		},
	})
	return dst, err
}

func appendOpenTag(dst []byte, tag string, attrs []html.Attribute) []byte {
	dst = append(dst, '<')
	dst = append(dst, tag...)
	dst = appendAttributes(dst, attrs)
	dst = append(dst, '>')
	return dst
}

func appendCloseTag(dst []byte, tag string) []byte {
	dst = append(dst, "</"...)
	dst = append(dst, tag...)
	dst = append(dst, '>')
	return dst
}

// appendAttributes writes each attribute as ` key="val"`.
// Values are written verbatim.
func appendAttributes(dst []byte, attrs []html.Attribute) []byte {
	for _, attr := range attrs {
		dst = append(dst, ' ')
		dst = append(dst, attr.Key...)
		dst = append(dst, `="`...)
		dst = append(dst, attr.Val...)
		dst = append(dst, '"')
	}
	return dst
}
