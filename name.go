// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package inlet

import (
	"errors"
	"fmt"
)

// nameSize is the fixed width, in bytes, of a [Name].
const nameSize = 128

// ErrNameTooLong is returned by [NewName] when the input is longer than
// the fixed identifier width.
var ErrNameTooLong = errors.New("inlet: name exceeds 128 bytes")

// Name is a 128-byte, NUL-padded fixed-capacity identifier used for topic
// and consumer names.
//
// Name is a plain byte array, so it is directly comparable with == and
// equality is byte-wise over the whole array: a shorter string only
// compares equal to the same bytes followed by zeros, which construction
// guarantees.
type Name [nameSize]byte

// EmptyName returns the all-zero [Name].
func EmptyName() Name {
	return Name{}
}

// NewName builds a [Name] from a string, zero-filling the remainder.
//
// Returns [ErrNameTooLong] if s is longer than 128 bytes.
func NewName(s string) (Name, error) {
	var n Name
	if len(s) > nameSize {
		return n, fmt.Errorf("name %q (%d bytes): %w", s, len(s), ErrNameTooLong)
	}
	copy(n[:], s)
	return n, nil
}

// MustName is like [NewName] but panics on error. Intended for
// programmer-supplied constants, not untrusted input.
func MustName(s string) Name {
	n, err := NewName(s)
	if err != nil {
		panic(err)
	}
	return n
}

// IsEmpty reports whether the identifier's first byte is zero.
func (n Name) IsEmpty() bool {
	return n[0] == 0
}

// String returns the bytes up to (but not including) the first zero byte.
func (n Name) String() string {
	for i, b := range n {
		if b == 0 {
			return string(n[:i])
		}
	}
	return string(n[:])
}
