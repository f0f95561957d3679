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

// Package sitemark converts a small dialect of Markdown into HTML.
//
// The dialect has paragraphs, headings, fenced code blocks,
// block quotes, and ordered and unordered lists,
// with bold, italic, code, link, and image inline spans.
// Blocks are separated by blank lines.
// Emphasis does not nest
// and there is no way to escape Markdown punctuation.
package sitemark

import (
	"strings"
	"unicode"
)

const blockSeparator = "\n\n"

// Segment splits a document into blocks on blank lines.
// Each block is trimmed of surrounding whitespace
// and empty blocks are removed.
func Segment(markdown string) []string {
	var blocks []string
	splitBlocks(markdown, func(block string, _ int) {
		blocks = append(blocks, block)
	})
	return blocks
}

// Parse splits a document into classified blocks.
func Parse(markdown string) []*Block {
	var blocks []*Block
	splitBlocks(markdown, func(block string, line int) {
		blocks = append(blocks, &Block{
			Kind:      Classify(block),
			Source:    block,
			StartLine: line,
		})
	})
	return blocks
}

// splitBlocks calls f for every non-empty block in source order,
// along with the block's 1-based starting line number.
func splitBlocks(markdown string, f func(block string, line int)) {
	lineno := 1
	for rest := markdown; ; {
		part := rest
		i := strings.Index(rest, blockSeparator)
		if i >= 0 {
			part = rest[:i]
		}
		trimmed := strings.TrimLeftFunc(part, unicode.IsSpace)
		if block := strings.TrimRightFunc(trimmed, unicode.IsSpace); block != "" {
			f(block, lineno+strings.Count(part[:len(part)-len(trimmed)], "\n"))
		}
		if i < 0 {
			return
		}
		lineno += strings.Count(part, "\n") + strings.Count(blockSeparator, "\n")
		rest = rest[i+len(blockSeparator):]
	}
}
