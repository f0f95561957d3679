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

// Package normhtml provides a function for normalizing HTML
// so that pretty-printed expected output
// can be compared against compact rendered output.
package normhtml

import (
	"bytes"

	"go4.org/bytereplacer"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var htmlEscaper = bytereplacer.New(
	"&", "&amp;",
	`'`, "&apos;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
)

// NormalizeHTML strips insignificant whitespace from HTML.
// Whitespace-only text that follows a block-level tag
// (or starts the input) is removed unless it is inside <pre>.
// Tag and attribute names are lowercased,
// character references are re-escaped consistently,
// and attribute order is preserved.
func NormalizeHTML(b []byte) []byte {
	tok := html.NewTokenizerFragment(bytes.NewReader(b), "div")
	var output []byte
	afterBlock := true
	inPre := false
	for {
		tt := tok.Next()
		switch tt {
		case html.ErrorToken:
			return output
		case html.TextToken:
			data := tok.Text()
			if !inPre && afterBlock && len(bytes.TrimSpace(data)) == 0 {
				continue
			}
			output = append(output, htmlEscaper.Replace(bytes.Clone(data))...)
			afterBlock = false
		case html.EndTagToken:
			tagBytes, _ := tok.TagName()
			tag := string(tagBytes)
			if tag == "pre" {
				inPre = false
			}
			output = append(output, "</"...)
			output = append(output, tag...)
			output = append(output, ">"...)
			afterBlock = isBlockTag(tag)
		case html.StartTagToken, html.SelfClosingTagToken:
			tagBytes, hasAttr := tok.TagName()
			tag := string(tagBytes)
			if tag == "pre" {
				inPre = true
			}
			output = append(output, "<"...)
			output = append(output, tag...)
			for hasAttr {
				var k, v []byte
				k, v, hasAttr = tok.TagAttr()
				output = append(output, " "...)
				output = append(output, k...)
				output = append(output, `="`...)
				output = append(output, htmlEscaper.Replace(bytes.Clone(v))...)
				output = append(output, `"`...)
			}
			output = append(output, ">"...)
			afterBlock = isBlockTag(tag)
		}
	}
}

var blockTags = map[string]struct{}{
	atom.Blockquote.String(): {},
	atom.Div.String():        {},
	atom.H1.String():         {},
	atom.H2.String():         {},
	atom.H3.String():         {},
	atom.H4.String():         {},
	atom.H5.String():         {},
	atom.H6.String():         {},
	atom.Li.String():         {},
	atom.Ol.String():         {},
	atom.P.String():          {},
	atom.Pre.String():        {},
	atom.Ul.String():         {},
}

func isBlockTag(tag string) bool {
	_, ok := blockTags[tag]
	return ok
}
