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
	"strings"
)

// BlockKind is an enumeration of block types.
type BlockKind uint16

const (
	ParagraphKind BlockKind = 1 + iota
	HeadingKind
	CodeBlockKind
	QuoteKind
	OrderedListKind
	UnorderedListKind
)

func (k BlockKind) String() string {
	switch k {
	case ParagraphKind:
		return "ParagraphKind"
	case HeadingKind:
		return "HeadingKind"
	case CodeBlockKind:
		return "CodeBlockKind"
	case QuoteKind:
		return "QuoteKind"
	case OrderedListKind:
		return "OrderedListKind"
	case UnorderedListKind:
		return "UnorderedListKind"
	default:
		return fmt.Sprintf("BlockKind(%d)", uint16(k))
	}
}

// A Block is a structural element in a Markdown document:
// a run of text between blank lines.
type Block struct {
	Kind BlockKind
	// Source is the block's text with surrounding whitespace removed.
	// It is never empty.
	Source string
	// StartLine is the 1-based line number of the block's first character
	// in the document.
	StartLine int
}

// HeadingLevel returns the number of leading '#' characters
// for a heading block or 0 for other blocks.
func (b *Block) HeadingLevel() int {
	if b == nil || b.Kind != HeadingKind {
		return 0
	}
	return headingLevel(b.Source)
}

const (
	codeFence     = "```"
	maxHeadingLen = 6
)

// Classify reports the kind of a trimmed, non-empty block.
// Rules are tried in order and the first match wins:
// heading, code, quote, ordered list, unordered list.
// Anything else is a paragraph.
func Classify(block string) BlockKind {
	switch {
	case headingLevel(block) > 0:
		return HeadingKind
	case isCodeFence(block):
		return CodeBlockKind
	case allLines(block, isQuoteLine):
		return QuoteKind
	case allLines(block, isOrderedListLine):
		return OrderedListKind
	case allLines(block, isUnorderedListLine):
		return UnorderedListKind
	default:
		return ParagraphKind
	}
}

// headingLevel returns n if s starts with n '#' characters (1 ≤ n ≤ 6)
// followed by a space, or 0 otherwise.
func headingLevel(s string) int {
	n := 0
	for n < len(s) && s[n] == '#' {
		n++
	}
	if n == 0 || n > maxHeadingLen || n >= len(s) || s[n] != ' ' {
		return 0
	}
	return n
}

// isCodeFence reports whether s is wrapped in distinct opening
// and closing fences.
// A block must be at least two fences long,
// so "```" alone is not a code block.
func isCodeFence(s string) bool {
	return len(s) >= 2*len(codeFence) &&
		strings.HasPrefix(s, codeFence) &&
		strings.HasSuffix(s, codeFence)
}

func allLines(s string, f func(line string) bool) bool {
	for _, line := range strings.Split(s, "\n") {
		if !f(line) {
			return false
		}
	}
	return true
}

func isQuoteLine(line string) bool {
	return strings.HasPrefix(line, ">")
}

func isOrderedListLine(line string) bool {
	return orderedListMarkerEnd(line) >= 0
}

// orderedListMarkerEnd returns the length of the `digits. ` marker
// at the start of line, or -1 if there is none.
// The numbers are not checked for sequence.
func orderedListMarkerEnd(line string) int {
	n := 0
	for n < len(line) && isASCIIDigit(line[n]) {
		n++
	}
	if n == 0 || !strings.HasPrefix(line[n:], ". ") {
		return -1
	}
	return n + len(". ")
}

const unorderedListMarker = "- "

func isUnorderedListLine(line string) bool {
	return strings.HasPrefix(line, unorderedListMarker)
}

func isASCIIDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
