// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package inlet

import (
	"fmt"
	"unsafe"

	"code.hybscloud.com/inlet/internal/shm"
	"code.hybscloud.com/spin"
)

// backingFilePrefix names the shared file for a topic (spec.md §6).
const backingFilePrefix = "inlet-"

// handle is the process-local attachment to a topic's shared region,
// shared by [Producer] and [Consumer]. It implements the create-or-open
// race of spec.md §4.3.
type handle[T any] struct {
	mapping *shm.Mapping
	layout  layout
	path    string
	topic   Name
}

// attach creates the region for topic if this is the first process to
// reach it, or opens and validates an existing one otherwise.
func attach[T any](topic string, n, m int) (*handle[T], error) {
	name, err := NewName(topic)
	if err != nil {
		return nil, err
	}

	var zero T
	l := computeLayout(uint64(unsafe.Sizeof(zero)), uint64(n), uint64(m))
	path := backingFilePrefix + topic

	mapping, err := shm.CreateOrOpen(path, int64(l.totalSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileIO, err)
	}

	meta := metaPtr(mapping.Bytes)

	if mapping.Created {
		meta.topic = name
		meta.typeSize = l.entrySize
		meta.entryCount = l.entryCount
		meta.maxConsumers = l.maxConsumers
		meta.initialised.StoreRelease(1)
		if err := mapping.Sync(); err != nil {
			_ = mapping.Close()
			return nil, fmt.Errorf("%w: %w", ErrFileIO, err)
		}
	} else {
		sw := spin.Wait{}
		for meta.initialised.LoadAcquire() == 0 {
			sw.Once()
		}
		if meta.typeSize != l.entrySize || meta.entryCount != l.entryCount || meta.maxConsumers != l.maxConsumers {
			_ = mapping.Close()
			return nil, fmt.Errorf("topic %q: want type_size=%d entry_count=%d max_consumers=%d, got %d/%d/%d: %w",
				topic, l.entrySize, l.entryCount, l.maxConsumers,
				meta.typeSize, meta.entryCount, meta.maxConsumers,
				ErrIncompatibleLayout)
		}
	}

	return &handle[T]{mapping: mapping, layout: l, path: path, topic: name}, nil
}

// Close unmaps the region. The backing file is never removed (spec.md
// §6): it persists until an operator deletes it externally.
func (h *handle[T]) Close() error {
	return h.mapping.Close()
}

func (h *handle[T]) producer() *clientMeta {
	return h.layout.producerPtr(h.mapping.Bytes)
}

func (h *handle[T]) consumer(i uint64) *clientMeta {
	return h.layout.consumerPtr(h.mapping.Bytes, i)
}

func (h *handle[T]) slot(seq uint64) *T {
	return (*T)(h.layout.slotPtr(h.mapping.Bytes, seq))
}
