// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Determine the value of a quoted string literal by removing its quotes and
// interpreting any escape sequences.  Invalid escapes are taken literally.
func unquote(raw string) string {
	var builder strings.Builder
	//
	if len(raw) < 2 {
		return raw
	}
	//
	body := raw[1 : len(raw)-1]
	//
	for i := 0; i < len(body); i++ {
		if body[i] != '\\' || i+1 == len(body) {
			builder.WriteByte(body[i])
			continue
		}
		//
		i++
		//
		switch c := body[i]; c {
		case 'n':
			builder.WriteByte('\n')
		case 't':
			builder.WriteByte('\t')
		case 'r':
			builder.WriteByte('\r')
		case 'b':
			builder.WriteByte('\b')
		case 'f':
			builder.WriteByte('\f')
		case 'v':
			builder.WriteByte('\v')
		case '0':
			builder.WriteByte(0)
		case '\n':
			// Line continuation
		case '\r':
			if i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
		case 'x':
			if r, ok := hexRune(body, i+1, 2); ok {
				builder.WriteRune(r)
				i += 2
			} else {
				builder.WriteByte(c)
			}
		case 'u':
			if i+1 < len(body) && body[i+1] == '{' {
				if end := strings.IndexByte(body[i:], '}'); end > 0 {
					if r, ok := hexRune(body, i+2, end-2); ok {
						builder.WriteRune(r)
						i += end
						//
						continue
					}
				}
			} else if r, ok := hexRune(body, i+1, 4); ok {
				builder.WriteRune(r)
				i += 4
				//
				continue
			}
			//
			builder.WriteByte(c)
		default:
			builder.WriteByte(c)
		}
	}
	//
	return builder.String()
}

// Parse n hex digits starting at a given offset into a rune.
func hexRune(text string, offset int, n int) (rune, bool) {
	if n <= 0 || offset+n > len(text) {
		return 0, false
	}
	//
	val, err := strconv.ParseUint(text[offset:offset+n], 16, 32)
	//
	if err != nil || !utf8.ValidRune(rune(val)) {
		return 0, false
	}
	//
	return rune(val), true
}
