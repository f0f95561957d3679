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
	"strconv"
)

// Errors returned while compiling or rendering a document.
// Every failure aborts the whole document.
var (
	// ErrMissingValue is returned when rendering a [Leaf] without content.
	ErrMissingValue = errors.New("leaf node has no value")
	// ErrMissingTag is returned when rendering a [Parent] without a tag.
	ErrMissingTag = errors.New("parent node has no tag")
	// ErrMissingChildren is returned when rendering a [Parent]
	// whose children are absent (nil, as opposed to empty).
	ErrMissingChildren = errors.New("parent node has no children")
	// ErrInvalidSpanKind is returned when converting a [Span]
	// whose kind is not one of the known [SpanKind] values.
	ErrInvalidSpanKind = errors.New("invalid span kind")
	// ErrUnmatchedDelimiter is the error wrapped by [*DelimiterError].
	ErrUnmatchedDelimiter = errors.New("unmatched delimiter")
)

// DelimiterError reports a style delimiter without a closing partner.
type DelimiterError struct {
	Delimiter string
}

func (e *DelimiterError) Error() string {
	return "invalid markdown: " + strconv.Quote(e.Delimiter) + " must have a closing " + strconv.Quote(e.Delimiter)
}

// Unwrap returns [ErrUnmatchedDelimiter].
func (e *DelimiterError) Unwrap() error {
	return ErrUnmatchedDelimiter
}
