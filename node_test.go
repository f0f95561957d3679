// Copyright 2024 Ross Light
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
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func TestLeafHTML(t *testing.T) {
	tests := []struct {
		name string
		leaf *Leaf
		want string
	}{
		{
			name: "Text",
			leaf: NewText("Hello, World!"),
			want: "Hello, World!",
		},
		{
			name: "Element",
			leaf: NewLeaf("p", "This is a paragraph of text."),
			want: "<p>This is a paragraph of text.</p>",
		},
		{
			name: "Attributes",
			leaf: NewLeaf("a", "Click me!", html.Attribute{Key: "href", Val: "https://www.google.com"}),
			want: `<a href="https://www.google.com">Click me!</a>`,
		},
		{
			name: "EmptyValue",
			leaf: NewLeaf("img", "", html.Attribute{Key: "src", Val: "cat.png"}),
			want: `<img src="cat.png"></img>`,
		},
		{
			name: "EmptyText",
			leaf: NewText(""),
			want: "",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.leaf.HTML()
			if err != nil {
				t.Fatal("HTML:", err)
			}
			if got != test.want {
				t.Errorf("HTML() = %q; want %q", got, test.want)
			}
		})
	}
}

func TestParentHTML(t *testing.T) {
	tests := []struct {
		name   string
		parent *Parent
		want   string
	}{
		{
			name: "Flat",
			parent: NewParent("p", []Node{
				NewLeaf("b", "Bold text").AsNode(),
				NewText("Normal text").AsNode(),
				NewLeaf("i", "italic text").AsNode(),
				NewText("Normal text").AsNode(),
			}),
			want: "<p><b>Bold text</b>Normal text<i>italic text</i>Normal text</p>",
		},
		{
			name: "Nested",
			parent: NewParent("div", []Node{
				NewParent("span", []Node{
					NewLeaf("b", "grandchild").AsNode(),
				}).AsNode(),
			}),
			want: "<div><span><b>grandchild</b></span></div>",
		},
		{
			name:   "Empty",
			parent: NewParent("ul", []Node{}),
			want:   "<ul></ul>",
		},
		{
			name: "Attributes",
			parent: NewParent("div", []Node{NewText("x").AsNode()},
				html.Attribute{Key: "class", Val: "main"},
				html.Attribute{Key: "id", Val: "top"},
			),
			want: `<div class="main" id="top">x</div>`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.parent.HTML()
			if err != nil {
				t.Fatal("HTML:", err)
			}
			if got != test.want {
				t.Errorf("HTML() = %q; want %q", got, test.want)
			}
		})
	}
}

func TestAttributeOrder(t *testing.T) {
	keys := []string{"src", "alt", "width", "height", "class", "data-x", "title"}
	var attrs []html.Attribute
	var want strings.Builder
	want.WriteString("<img")
	for _, k := range keys {
		attrs = append(attrs, html.Attribute{Key: k, Val: k + "-value"})
		want.WriteString(" " + k + `="` + k + `-value"`)
	}
	want.WriteString("></img>")

	leaf := NewLeaf("img", "", attrs...)
	for i := 0; i < 10; i++ {
		got, err := leaf.HTML()
		if err != nil {
			t.Fatal("HTML:", err)
		}
		if got != want.String() {
			t.Fatalf("render #%d: HTML() = %q; want %q", i+1, got, want.String())
		}
	}
}

func TestNodeErrors(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want error
	}{
		{
			name: "ZeroLeaf",
			node: new(Leaf).AsNode(),
			want: ErrMissingValue,
		},
		{
			name: "LeafValueCleared",
			node: func() Node {
				leaf := NewLeaf("b", "bold")
				leaf.hasValue = false
				return leaf.AsNode()
			}(),
			want: ErrMissingValue,
		},
		{
			name: "ParentNoTag",
			node: NewParent("", []Node{NewText("x").AsNode()}).AsNode(),
			want: ErrMissingTag,
		},
		{
			name: "ParentNilChildren",
			node: NewParent("p", nil).AsNode(),
			want: ErrMissingChildren,
		},
		{
			name: "NestedNilChildren",
			node: NewParent("div", []Node{
				NewText("before").AsNode(),
				NewParent("ul", nil).AsNode(),
				NewText("after").AsNode(),
			}).AsNode(),
			want: ErrMissingChildren,
		},
		{
			name: "NestedMissingValue",
			node: NewParent("div", []Node{
				NewParent("p", []Node{new(Leaf).AsNode()}).AsNode(),
			}).AsNode(),
			want: ErrMissingValue,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.node.HTML()
			if !errors.Is(err, test.want) {
				t.Errorf("HTML() = %q, %v; want error %v", got, err, test.want)
			}
		})
	}
}

func TestNilNode(t *testing.T) {
	if _, err := (Node{}).HTML(); err == nil {
		t.Error("Node{}.HTML() did not return an error")
	}
}

func TestDeepTree(t *testing.T) {
	const depth = 100000
	node := NewText("x").AsNode()
	for i := 0; i < depth; i++ {
		node = NewParent("b", []Node{node}).AsNode()
	}
	got, err := node.HTML()
	if err != nil {
		t.Fatal("HTML:", err)
	}
	want := strings.Repeat("<b>", depth) + "x" + strings.Repeat("</b>", depth)
	if got != want {
		t.Errorf("HTML() has length %d; want %d", len(got), len(want))
	}
}

func TestWalk(t *testing.T) {
	root := NewParent("div", []Node{
		NewParent("p", []Node{
			NewText("a").AsNode(),
			NewLeaf("b", "b").AsNode(),
		}).AsNode(),
		NewParent("ul", []Node{}).AsNode(),
	})
	var events []string
	Walk(root.AsNode(), &WalkOptions{
		Pre: func(c *Cursor) bool {
			if leaf := c.Node().Leaf(); leaf != nil {
				events = append(events, "leaf:"+leaf.Value())
				if c.Parent().Parent().Tag() != "p" {
					t.Errorf("parent of leaf %q = %q; want p", leaf.Value(), c.Parent().Parent().Tag())
				}
				return true
			}
			events = append(events, "pre:"+c.Node().Parent().Tag())
			return true
		},
		Post: func(c *Cursor) bool {
			if p := c.Node().Parent(); p != nil {
				events = append(events, "post:"+p.Tag())
			}
			return true
		},
	})
	want := "pre:div pre:p leaf:a leaf:b post:p pre:ul post:ul post:div"
	if got := strings.Join(events, " "); got != want {
		t.Errorf("events = %q; want %q", got, want)
	}
}
