// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package nodeview

import "testing"

func TestBasicOutputQueryValuesOmitsUnset(t *testing.T) {
	q := BasicOutputQuery{}
	v := q.Values()
	if len(v) != 0 {
		t.Errorf("expected no query params for a zero-value query, got %v", v)
	}
}

func TestBasicOutputQueryValuesIncludesSet(t *testing.T) {
	hasTimelock := true
	q := BasicOutputQuery{HasTimelock: &hasTimelock, PageSize: 50, Cursor: "abc"}
	v := q.Values()
	if v.Get("hasTimelock") != "true" {
		t.Errorf("got %q, want true", v.Get("hasTimelock"))
	}
	if v.Get("pageSize") != "50" {
		t.Errorf("got %q, want 50", v.Get("pageSize"))
	}
	if v.Get("cursor") != "abc" {
		t.Errorf("got %q, want abc", v.Get("cursor"))
	}
}
