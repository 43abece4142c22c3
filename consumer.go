// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package inlet

import (
	"code.hybscloud.com/inlet/internal/shm"
	"code.hybscloud.com/spin"
)

// Consumer reads records from a topic's ring at its own pace (spec.md
// §4.5). Multiple Consumer processes may attach to the same topic.
type Consumer[T any] struct {
	h     *handle[T]
	index uint64
}

// NewConsumer attaches to (creating if absent) the region for topic,
// sized for n entries and m consumer slots, and claims a consumer slot
// for id.
//
// If id already occupies a slot in the table, that slot is adopted and
// consumption resumes from its stored sequence (spec.md's "Resume by
// id" — a later process using the same id picks up where a prior one
// left off). Otherwise the first empty slot is claimed. Returns
// [ErrNoFreeConsumerSlot] if every slot is already claimed by a
// different id.
//
// The scan-and-claim is serialized with an interprocess advisory lock
// (spec.md §9: "the source repository ... MAY strengthen this with a
// compare-and-swap on the id field" — a 128-byte id has no atomic CAS,
// so inlet strengthens with flock instead).
func NewConsumer[T any](topic string, id string, n, m int) (*Consumer[T], error) {
	h, err := attach[T](topic, n, m)
	if err != nil {
		return nil, err
	}

	name, err := NewName(id)
	if err != nil {
		_ = h.Close()
		return nil, err
	}

	index, err := claimConsumerSlot(h, name)
	if err != nil {
		_ = h.Close()
		return nil, err
	}

	return &Consumer[T]{h: h, index: index}, nil
}

func claimConsumerSlot[T any](h *handle[T], id Name) (uint64, error) {
	lock, err := shm.AcquireLock(h.path)
	if err != nil {
		return 0, err
	}
	defer lock.Release()

	n := h.layout.maxConsumers
	firstEmpty, haveEmpty := uint64(0), false
	for i := uint64(0); i < n; i++ {
		c := h.consumer(i)
		if c.id == id {
			return i, nil
		}
		if !haveEmpty && c.id.IsEmpty() {
			firstEmpty, haveEmpty = i, true
		}
	}
	if !haveEmpty {
		return 0, ErrNoFreeConsumerSlot
	}
	h.consumer(firstEmpty).id = id
	return firstEmpty, nil
}

// Close unmaps the consumer's attachment. The claimed slot remains
// bound to this consumer's id across restarts (spec.md §3
// "Lifecycles"); there is no explicit release.
func (c *Consumer[T]) Close() error {
	return c.h.Close()
}

func (c *Consumer[T]) self() *clientMeta {
	return c.h.consumer(c.index)
}

// HasData reports whether the producer has published at least one
// record past this consumer's current position.
func (c *Consumer[T]) HasData() bool {
	prod := c.h.producer()
	return prod.sequence.LoadAcquire() > c.self().sequence.LoadRelaxed()
}

// ProcessNext blocks (busy-spins) until HasData is true, invokes
// handler with the next unread record, then advances this consumer's
// sequence by one.
func (c *Consumer[T]) ProcessNext(handler func(*T)) {
	self := c.self()
	prod := c.h.producer()

	sw := spin.Wait{}
	for {
		seq := self.sequence.LoadRelaxed()
		if prod.sequence.LoadAcquire() > seq {
			handler(c.h.slot(seq))
			self.sequence.StoreRelease(seq + 1)
			return
		}
		sw.Once()
	}
}

// ProcessForever calls ProcessNext in a loop indefinitely.
func (c *Consumer[T]) ProcessForever(handler func(*T)) {
	for {
		c.ProcessNext(handler)
	}
}

// TryProcessNext behaves like ProcessNext but performs at most one
// check: if no record is available yet, it returns [ErrWouldBlock]
// instead of spinning. Not part of spec.md's blocking surface; added
// for callers driving their own backoff loop.
func (c *Consumer[T]) TryProcessNext(handler func(*T)) error {
	self := c.self()
	prod := c.h.producer()

	seq := self.sequence.LoadRelaxed()
	if prod.sequence.LoadAcquire() <= seq {
		return ErrWouldBlock
	}
	handler(c.h.slot(seq))
	self.sequence.StoreRelease(seq + 1)
	return nil
}
