// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package inlet

import (
	"errors"

	"code.hybscloud.com/iox"
)

// Error kinds per spec.md §7. All of these are fatal: there is no
// retry and no partial recovery path. A correctly attached Producer or
// Consumer never returns one of these from Publish or ProcessNext.
var (
	// ErrFileIO wraps an underlying OS error from creating, opening,
	// mapping, or syncing a region's backing file.
	ErrFileIO = errors.New("inlet: file I/O error")

	// ErrIncompatibleLayout is returned by attach when an existing
	// region's type_size, entry_count, or max_consumers disagree with
	// the caller's parameters.
	ErrIncompatibleLayout = errors.New("inlet: incompatible region layout")

	// ErrNoFreeConsumerSlot is returned by NewConsumer when all
	// max_consumers slots are already claimed by other ids.
	ErrNoFreeConsumerSlot = errors.New("inlet: no free consumer slot")
)

// ErrWouldBlock is reused from [code.hybscloud.com/iox] for the two
// non-blocking variants this package adds beyond spec.md's blocking
// Publish/ProcessNext: [Producer.TryPublish] and
// [Consumer.TryProcessNext]. It is the teacher library's own sentinel,
// kept for ecosystem consistency with every other queue in
// code.hybscloud.com.
//
// spec.md's blocking operations never return this error: they spin
// instead, by design (§4.4, §4.5).
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates a non-blocking operation
// would have had to wait. Delegates to [iox.IsWouldBlock] for wrapped
// error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}
