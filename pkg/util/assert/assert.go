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
package assert

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

// Equal errors if actual is not equal to expected.  Multi-line strings are
// reported line by line, which makes differences in printed output easier to
// spot.
func Equal(t *testing.T, expected, actual any, msg ...any) {
	t.Helper()
	//
	if reflect.DeepEqual(expected, actual) || intEqual(expected, actual) {
		return
	}
	//
	if e, ok := expected.(string); ok {
		if a, ok := actual.(string); ok && strings.Contains(e+a, "\n") {
			t.Errorf("strings differ:\n%s", lineDiff(e, a))
			report(t, msg)
			t.FailNow()
		}
	}

	t.Errorf("expected: %v, actual: %v", expected, actual)
	report(t, msg)
	t.FailNow()
}

// True errors if condition is false.
func True(t *testing.T, condition bool, msg ...any) {
	t.Helper()
	//
	if condition {
		return
	}

	t.Errorf("condition is false")
	report(t, msg)
	t.FailNow()
}

// False errors if condition is true.
func False(t *testing.T, condition bool, msg ...any) {
	t.Helper()
	//
	if !condition {
		return
	}

	t.Errorf("condition is true")
	report(t, msg)
	t.FailNow()
}

// NoError errors if err is not nil.
func NoError(t *testing.T, err error, msg ...any) {
	t.Helper()
	//
	if err == nil {
		return
	}

	t.Errorf("unexpected error: %v", err)
	report(t, msg)
	t.FailNow()
}

// ErrorContains errors if err is nil, or its message does not contain the
// given fragment.
func ErrorContains(t *testing.T, err error, fragment string, msg ...any) {
	t.Helper()
	//
	if err != nil && strings.Contains(err.Error(), fragment) {
		return
	}
	//
	if err == nil {
		t.Errorf("expected error containing %q, got none", fragment)
	} else {
		t.Errorf("expected error containing %q, got %q", fragment, err.Error())
	}

	report(t, msg)
	t.FailNow()
}

func report(t *testing.T, msg []any) {
	if len(msg) != 0 {
		t.Errorf(msg[0].(string), msg[1:]...)
	}
}

// lineDiff renders two multi-line strings side by side, marking each line
// which differs.
func lineDiff(expected, actual string) string {
	var (
		builder strings.Builder
		lhs     = strings.Split(expected, "\n")
		rhs     = strings.Split(actual, "\n")
	)
	//
	for i := range max(len(lhs), len(rhs)) {
		var l, r string
		//
		if i < len(lhs) {
			l = lhs[i]
		}
		//
		if i < len(rhs) {
			r = rhs[i]
		}
		//
		if l == r {
			builder.WriteString(fmt.Sprintf("  %s\n", l))
		} else {
			builder.WriteString(fmt.Sprintf("- %s\n+ %s\n", l, r))
		}
	}
	//
	return builder.String()
}

// intEqual determines whether expected and actual are both integers (of any
// width or signedness) holding the same numeric value.
func intEqual(expected, actual any) bool {
	var (
		x, xSigned, xOk = integer(expected)
		y, ySigned, yOk = integer(actual)
	)
	//
	switch {
	case !xOk || !yOk:
		return false
	case xSigned == ySigned:
		return x == y
	case xSigned:
		return int64(x) >= 0 && x == y
	default:
		return int64(y) >= 0 && x == y
	}
}

// integer extracts the raw bits of an integer value, along with whether it is
// signed.  The final result indicates whether value was an integer at all.
func integer(value any) (uint64, bool, bool) {
	v := reflect.ValueOf(value)
	//
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return uint64(v.Int()), true, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint(), false, true
	default:
		return 0, false, false
	}
}
