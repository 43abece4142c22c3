// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package inlet_test

import (
	"errors"
	"strings"
	"testing"

	"code.hybscloud.com/inlet"
)

func TestNameEmpty(t *testing.T) {
	n := inlet.EmptyName()
	if !n.IsEmpty() {
		t.Fatalf("EmptyName: IsEmpty() = false, want true")
	}
	if n.String() != "" {
		t.Fatalf("EmptyName: String() = %q, want \"\"", n.String())
	}
}

func TestNameRoundTrip(t *testing.T) {
	cases := []string{"", "a", "topic-1", strings.Repeat("x", 128)}
	for _, s := range cases {
		n, err := inlet.NewName(s)
		if err != nil {
			t.Fatalf("NewName(%q): %v", s, err)
		}
		if got := n.String(); got != s {
			t.Fatalf("NewName(%q).String() = %q, want %q", s, got, s)
		}
	}
}

func TestNameTooLong(t *testing.T) {
	s := strings.Repeat("x", 129)
	_, err := inlet.NewName(s)
	if !errors.Is(err, inlet.ErrNameTooLong) {
		t.Fatalf("NewName(129 bytes): got %v, want ErrNameTooLong", err)
	}
}

func TestNameEquality(t *testing.T) {
	a, _ := inlet.NewName("worker-1")
	b, _ := inlet.NewName("worker-1")
	c, _ := inlet.NewName("worker-2")

	if a != b {
		t.Fatalf("same text: a != b")
	}
	if a == c {
		t.Fatalf("different text: a == c")
	}
	// Equal to an all-zero name only when both are actually empty —
	// byte-padding must not make "worker-1" collide with "".
	if a == inlet.EmptyName() {
		t.Fatalf("non-empty name compared equal to EmptyName()")
	}
}

func TestNameNonEmptyIsNotEmpty(t *testing.T) {
	n := inlet.MustName("c1")
	if n.IsEmpty() {
		t.Fatalf("MustName(\"c1\"): IsEmpty() = true, want false")
	}
}
