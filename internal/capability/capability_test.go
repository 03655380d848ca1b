// SPDX-License-Identifier: MPL-2.0

package capability

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry("parallel_tests", " ", "")
	if !r.Loaded("parallel_tests") {
		t.Error("Loaded(parallel_tests) = false, want true")
	}
	if r.Loaded("") {
		t.Error("Loaded(\"\") = true, blanks must be ignored")
	}

	r.Load(" spring ")
	if diff := cmp.Diff([]string{"parallel_tests", "spring"}, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"parallel_tests", []string{"parallel_tests"}},
		{"a,b", []string{"a", "b"}},
		{" a , b\tc\n", []string{"a", "b", "c"}},
		{",,", []string{}},
	}
	for _, tt := range tests {
		got := ParseList(tt.in)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseList(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Load("parallel_tests")
		}()
		go func() {
			defer wg.Done()
			_ = r.Loaded("parallel_tests")
		}()
	}
	wg.Wait()

	if !r.Loaded("parallel_tests") {
		t.Error("Loaded(parallel_tests) = false after concurrent loads")
	}
}
