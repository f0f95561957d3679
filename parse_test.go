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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     []string
	}{
		{
			name:     "Single",
			markdown: "hello world",
			want:     []string{"hello world"},
		},
		{
			name:     "Multiple",
			markdown: "block one\n\nblock two\n\nblock three",
			want:     []string{"block one", "block two", "block three"},
		},
		{
			name:     "StripsWhitespace",
			markdown: "  hello  \n\n  world  ",
			want:     []string{"hello", "world"},
		},
		{
			name:     "FiltersEmpty",
			markdown: "hello\n\n\n\nworld",
			want:     []string{"hello", "world"},
		},
		{
			name:     "MultilineBlock",
			markdown: "line one\nline two\n\nblock two",
			want:     []string{"line one\nline two", "block two"},
		},
		{
			name:     "Empty",
			markdown: "",
			want:     nil,
		},
		{
			name:     "OnlyWhitespace",
			markdown: "   \n\n   \n\n   ",
			want:     nil,
		},
		{
			name: "Document",
			markdown: "This is **bolded** paragraph\n\n" +
				"This is another paragraph with _italic_ text and `code` here\n" +
				"This is the same paragraph on a new line\n\n" +
				"- This is a list\n- with items\n",
			want: []string{
				"This is **bolded** paragraph",
				"This is another paragraph with _italic_ text and `code` here\nThis is the same paragraph on a new line",
				"- This is a list\n- with items",
			},
		},
		{
			name:     "WhitespaceOnlyLine",
			markdown: "a\n   \nb",
			want:     []string{"a\n   \nb"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Segment(test.markdown)
			if diff := cmp.Diff(test.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Segment(%q) (-want +got):\n%s", test.markdown, diff)
			}
		})
	}
}

func TestSegmentBlankRuns(t *testing.T) {
	want := Segment("first\n\nsecond")
	for n := 3; n <= 8; n++ {
		markdown := "first" + strings.Repeat("\n", n) + "second"
		if diff := cmp.Diff(want, Segment(markdown)); diff != "" {
			t.Errorf("Segment with %d newlines (-want +got):\n%s", n, diff)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		block string
		want  BlockKind
	}{
		{"# Heading", HeadingKind},
		{"### Heading", HeadingKind},
		{"###### Heading", HeadingKind},
		{"####### Too deep", ParagraphKind},
		{"#NoSpace", ParagraphKind},
		{"Text\n# Not first line", ParagraphKind},
		{"```\ncode\n```", CodeBlockKind},
		{"```code```", CodeBlockKind},
		{"```", ParagraphKind},
		{"````", ParagraphKind},
		{"```\n> quoted\n```", CodeBlockKind},
		{"> quote", QuoteKind},
		{"> line one\n>line two", QuoteKind},
		{"> line one\nline two", ParagraphKind},
		{"1. one\n2. two\n3. three", OrderedListKind},
		{"5. x\n5. y", OrderedListKind},
		{"10. ten", OrderedListKind},
		{"1. one\n- two", ParagraphKind},
		{"1.no space", ParagraphKind},
		{". no digits", ParagraphKind},
		{"- one\n- two", UnorderedListKind},
		{"- one\n-two", ParagraphKind},
		{"* star", ParagraphKind},
		{"Just a paragraph.", ParagraphKind},
	}
	for _, test := range tests {
		if got := Classify(test.block); got != test.want {
			t.Errorf("Classify(%q) = %v; want %v", test.block, got, test.want)
		}
	}
}

func TestParse(t *testing.T) {
	const markdown = "\n\n# Title\n\nFirst paragraph\ncontinues\n\n\n\n  - one\n- two\n"
	want := []*Block{
		{Kind: HeadingKind, Source: "# Title", StartLine: 3},
		{Kind: ParagraphKind, Source: "First paragraph\ncontinues", StartLine: 5},
		{Kind: UnorderedListKind, Source: "- one\n- two", StartLine: 10},
	}
	got := Parse(markdown)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(%q) (-want +got):\n%s", markdown, diff)
	}
}

func TestHeadingLevel(t *testing.T) {
	for level := 1; level <= 6; level++ {
		b := &Block{Kind: HeadingKind, Source: strings.Repeat("#", level) + " Heading"}
		if got := b.HeadingLevel(); got != level {
			t.Errorf("(&Block{Source: %q}).HeadingLevel() = %d; want %d", b.Source, got, level)
		}
	}
	if got := (&Block{Kind: ParagraphKind, Source: "# x"}).HeadingLevel(); got != 0 {
		t.Errorf("HeadingLevel() on paragraph = %d; want 0", got)
	}
}

func FuzzSegment(f *testing.F) {
	f.Add("")
	f.Add("a\n\nb")
	f.Add("  \n\n\n# Title\n\n- one\n- two\n\n\n")
	f.Add("\t\r\n\r\n x \n\n\n\ny\n")

	f.Fuzz(func(t *testing.T, markdown string) {
		got := Segment(markdown)
		if diff := cmp.Diff(Segment(strings.TrimSpace(markdown)), got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("Segment(TrimSpace(%q)) != Segment(%q) (-trimmed +untrimmed):\n%s", markdown, markdown, diff)
		}
		for i, block := range got {
			if block == "" || strings.TrimSpace(block) != block {
				t.Errorf("Segment(%q)[%d] = %q; want trimmed and non-empty", markdown, i, block)
			}
		}
	})
}
