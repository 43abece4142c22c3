// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package inlet

import (
	"unsafe"

	"code.hybscloud.com/atomix"
)

// pad is cache-line padding that prevents false sharing between
// independently written coordination fields. Generalized from the
// teacher's fixed struct-field padding (options.go's `pad [64]byte`
// interleaved between SPMC's head/tail/threshold) to a value that also
// precedes each entry of a runtime-length consumer table.
type pad [64]byte

// meta is the fixed header at offset 0 of a region (spec.md §3/§6).
//
// typeSize, entryCount, and maxConsumers are written once by the
// creator before Initialised is flipped true, and are immutable for the
// lifetime of the region (invariant 1); attachers only ever read them
// after observing Initialised, so a happens-before edge from the
// release/acquire pair on Initialised is sufficient — they don't need
// to be atomic themselves.
type meta struct {
	topic        Name
	typeSize     uint64
	entryCount   uint64
	maxConsumers uint64
	initialised  atomix.Uint64 // 0 = not ready, 1 = ready
}

// clientMeta is the per-party coordination record: the producer has
// exactly one, each consumer slot has one. timestamp is reserved for a
// liveness extension (spec.md §9) and is never written by this package.
type clientMeta struct {
	id        Name
	sequence  atomix.Uint64
	timestamp atomix.Uint64
}

// paddedClient is a clientMeta preceded by its own cache line, so that
// no two coordination records (producer vs. any consumer, or consumer
// vs. consumer) ever share a line (spec.md §3 invariant, §9 "Cache-line
// padding").
type paddedClient struct {
	_ pad
	clientMeta
}

// layout describes the byte geometry of a region for a given payload
// size, entry count N, and consumer capacity M. All offsets are
// relative to the start of the mapping.
type layout struct {
	entrySize    uint64
	entryCount   uint64
	maxConsumers uint64

	dataOffset      uintptr
	entryStride     uintptr
	producerOffset  uintptr
	consumersOffset uintptr
	clientStride    uintptr
	totalSize       uintptr
}

// computeLayout returns the geometry for a region holding n entries of
// size entrySize and m consumer slots. It mirrors
// original_source/src/inlet.rs's field order exactly: meta, pad1, data,
// producer, consumers, trailing pad.
func computeLayout(entrySize, n, m uint64) layout {
	var zeroMeta meta
	headerSize := unsafe.Sizeof(zeroMeta)
	var zeroPad pad
	padSize := unsafe.Sizeof(zeroPad)

	dataOffset := headerSize + padSize
	entryStride := uintptr(entrySize)
	dataSize := entryStride * uintptr(n)

	var zeroClient paddedClient
	clientStride := unsafe.Sizeof(zeroClient)

	producerOffset := dataOffset + dataSize + padSize
	consumersOffset := producerOffset + clientStride
	consumersSize := clientStride * uintptr(m)
	trailingPad := padSize

	total := consumersOffset + consumersSize + trailingPad

	return layout{
		entrySize:       entrySize,
		entryCount:      n,
		maxConsumers:    m,
		dataOffset:      dataOffset,
		entryStride:     entryStride,
		producerOffset:  producerOffset,
		consumersOffset: consumersOffset,
		clientStride:    clientStride,
		totalSize:       total,
	}
}

// RegionSize reports the number of bytes a region for payload type T
// with n entries and m consumer slots occupies, without attaching to
// any topic. Useful for pre-sizing quotas or inspecting disk usage.
func RegionSize[T any](n, m int) int {
	var zero T
	l := computeLayout(uint64(unsafe.Sizeof(zero)), uint64(n), uint64(m))
	return int(l.totalSize)
}

// metaPtr returns the meta header at the start of buf.
func metaPtr(buf []byte) *meta {
	return (*meta)(unsafe.Pointer(&buf[0]))
}

// producerPtr returns the producer's coordination record.
func (l layout) producerPtr(buf []byte) *clientMeta {
	return (*clientMeta)(unsafe.Pointer(&buf[l.producerOffset]))
}

// consumerPtr returns the coordination record for consumer slot i.
func (l layout) consumerPtr(buf []byte, i uint64) *clientMeta {
	off := l.consumersOffset + l.clientStride*uintptr(i)
	return (*clientMeta)(unsafe.Pointer(&buf[off]))
}

// slotPtr returns a pointer to data slot (seq mod entryCount).
func (l layout) slotPtr(buf []byte, seq uint64) unsafe.Pointer {
	idx := seq % l.entryCount
	off := l.dataOffset + l.entryStride*uintptr(idx)
	return unsafe.Pointer(&buf[off])
}
