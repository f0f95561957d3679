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

// SpanKind is an enumeration of inline styles.
type SpanKind uint16

const (
	PlainKind SpanKind = 1 + iota
	BoldKind
	ItalicKind
	CodeKind
	LinkKind
	ImageKind
)

func (k SpanKind) String() string {
	switch k {
	case PlainKind:
		return "PlainKind"
	case BoldKind:
		return "BoldKind"
	case ItalicKind:
		return "ItalicKind"
	case CodeKind:
		return "CodeKind"
	case LinkKind:
		return "LinkKind"
	case ImageKind:
		return "ImageKind"
	default:
		return fmt.Sprintf("SpanKind(%d)", uint16(k))
	}
}

// A Span is a contiguous run of inline text with a single style.
// Spans are compared by value.
type Span struct {
	Kind SpanKind
	// Text is the span's literal content.
	// For images, it is the alt text.
	Text string
	// Target is the link or image destination.
	// TargetPresent is true if and only if Kind is LinkKind or ImageKind.
	Target        string
	TargetPresent bool
}

// PlainSpan returns an unstyled span.
func PlainSpan(text string) Span {
	return Span{Kind: PlainKind, Text: text}
}

// StyledSpan returns a span of the given kind with no target.
func StyledSpan(kind SpanKind, text string) Span {
	return Span{Kind: kind, Text: text}
}

// LinkSpan returns a link span.
func LinkSpan(text, target string) Span {
	return Span{Kind: LinkKind, Text: text, Target: target, TargetPresent: true}
}

// ImageSpan returns an image span.
func ImageSpan(alt, target string) Span {
	return Span{Kind: ImageKind, Text: alt, Target: target, TargetPresent: true}
}

func (s Span) String() string {
	if s.TargetPresent {
		return fmt.Sprintf("%v(%q, %q)", s.Kind, s.Text, s.Target)
	}
	return fmt.Sprintf("%v(%q)", s.Kind, s.Text)
}

// Tokenize splits a run of inline Markdown into spans.
// Styles are recognized in a fixed order:
// bold (**), italic (_), code (`), images, then links.
// Text already assigned a style is not scanned again,
// so the content of a code span is never styled.
// Tokenize returns a [*DelimiterError] if a style delimiter is not closed.
func Tokenize(text string) ([]Span, error) {
	spans := []Span{PlainSpan(text)}
	for _, d := range styleDelimiters {
		var err error
		spans, err = SplitDelimiter(spans, d.delim, d.kind)
		if err != nil {
			return nil, err
		}
	}
	spans = SplitImages(spans)
	spans = SplitLinks(spans)
	return spans, nil
}

var styleDelimiters = []struct {
	delim string
	kind  SpanKind
}{
	{"**", BoldKind},
	{"_", ItalicKind},
	{"`", CodeKind},
}

// SplitDelimiter splits every plain span on delim.
// Text between pairs of delimiters becomes a span of the given kind.
// Empty parts are dropped.
// Spans that are not plain are passed through unchanged.
func SplitDelimiter(spans []Span, delim string, kind SpanKind) ([]Span, error) {
	result := make([]Span, 0, len(spans))
	for _, span := range spans {
		if span.Kind != PlainKind {
			result = append(result, span)
			continue
		}
		parts := strings.Split(span.Text, delim)
		if len(parts)%2 == 0 {
			return nil, &DelimiterError{Delimiter: delim}
		}
		for i, part := range parts {
			switch {
			case part == "":
			case i%2 == 0:
				result = append(result, PlainSpan(part))
			default:
				result = append(result, StyledSpan(kind, part))
			}
		}
	}
	return result, nil
}

// Link is an occurrence of inline link or image syntax.
type Link struct {
	// Text is the link text or the image alt text.
	Text        string
	Destination string
}

// ExtractImages returns the images of the form ![alt](url) in text,
// in order of appearance.
func ExtractImages(text string) []Link {
	return linksOf(text, scanImages(text))
}

// ExtractLinks returns the links of the form [text](url) in text,
// in order of appearance.
// Image syntax is never reported as a link.
func ExtractLinks(text string) []Link {
	return linksOf(text, scanLinks(text))
}

func linksOf(text string, matches []linkMatch) []Link {
	var links []Link
	for _, m := range matches {
		links = append(links, Link{
			Text:        text[m.text.Start:m.text.End],
			Destination: text[m.dest.Start:m.dest.End],
		})
	}
	return links
}

// SplitImages replaces image syntax in plain spans with image spans.
func SplitImages(spans []Span) []Span {
	return splitMatches(spans, scanImages, ImageSpan)
}

// SplitLinks replaces link syntax in plain spans with link spans.
func SplitLinks(spans []Span) []Span {
	return splitMatches(spans, scanLinks, LinkSpan)
}

func splitMatches(spans []Span, scan func(string) []linkMatch, newSpan func(text, target string) Span) []Span {
	result := make([]Span, 0, len(spans))
	for _, span := range spans {
		if span.Kind != PlainKind {
			result = append(result, span)
			continue
		}
		matches := scan(span.Text)
		if len(matches) == 0 {
			result = append(result, span)
			continue
		}
		pos := 0
		for _, m := range matches {
			if m.start > pos {
				result = append(result, PlainSpan(span.Text[pos:m.start]))
			}
			result = append(result, newSpan(
				span.Text[m.text.Start:m.text.End],
				span.Text[m.dest.Start:m.dest.End],
			))
			pos = m.end
		}
		if pos < len(span.Text) {
			result = append(result, PlainSpan(span.Text[pos:]))
		}
	}
	return result
}

// textRange is a half-open byte range.
type textRange struct {
	Start int
	End   int
}

// linkMatch is the position of link syntax within a string.
type linkMatch struct {
	start int
	end   int
	text  textRange
	dest  textRange
}

func scanImages(s string) []linkMatch {
	var matches []linkMatch
	for i := 0; i+1 < len(s); {
		if s[i] == '!' && s[i+1] == '[' {
			if m, ok := matchLinkAt(s, i+1); ok {
				m.start = i
				matches = append(matches, m)
				i = m.end
				continue
			}
		}
		i++
	}
	return matches
}

func scanLinks(s string) []linkMatch {
	var matches []linkMatch
	for i := 0; i < len(s); {
		if s[i] == '[' && (i == 0 || s[i-1] != '!') {
			if m, ok := matchLinkAt(s, i); ok {
				matches = append(matches, m)
				i = m.end
				continue
			}
		}
		i++
	}
	return matches
}

// matchLinkAt matches `[text](dest)` starting at s[i] == '['.
// The text may not contain brackets
// and the destination may not contain parentheses.
func matchLinkAt(s string, i int) (linkMatch, bool) {
	m := linkMatch{start: i}
	m.text.Start = i + 1
	j := strings.IndexAny(s[m.text.Start:], "[]")
	if j < 0 || s[m.text.Start+j] != ']' {
		return linkMatch{}, false
	}
	m.text.End = m.text.Start + j
	if m.text.End+1 >= len(s) || s[m.text.End+1] != '(' {
		return linkMatch{}, false
	}
	m.dest.Start = m.text.End + 2
	j = strings.IndexAny(s[m.dest.Start:], "()")
	if j < 0 || s[m.dest.Start+j] != ')' {
		return linkMatch{}, false
	}
	m.dest.End = m.dest.Start + j
	m.end = m.dest.End + 1
	return m, true
}
