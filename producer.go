// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package inlet

import (
	"code.hybscloud.com/spin"
)

// Producer publishes records into a topic's ring (spec.md §4.4).
//
// There must be at most one Producer per topic across every attached
// process; this package does not detect or prevent a second producer.
type Producer[T any] struct {
	h *handle[T]
}

// NewProducer attaches to (creating if absent) the region for topic,
// sized for n entries and m consumer slots.
func NewProducer[T any](topic string, n, m int) (*Producer[T], error) {
	h, err := attach[T](topic, n, m)
	if err != nil {
		return nil, err
	}
	return &Producer[T]{h: h}, nil
}

// Close unmaps the producer's attachment. The backing file persists.
func (p *Producer[T]) Close() error {
	return p.h.Close()
}

// Cap returns the ring's entry count (N).
func (p *Producer[T]) Cap() int {
	return int(p.h.layout.entryCount)
}

// minConsumerSequence returns the minimum sequence across every
// currently registered (non-empty id) consumer, or 0 if none are
// registered (spec.md §4.4 step 1).
func (p *Producer[T]) minConsumerSequence() uint64 {
	n := p.h.layout.maxConsumers
	min, any := uint64(0), false
	for i := uint64(0); i < n; i++ {
		c := p.h.consumer(i)
		if c.id.IsEmpty() {
			continue
		}
		seq := c.sequence.LoadAcquire()
		if !any || seq < min {
			min, any = seq, true
		}
	}
	if !any {
		return 0
	}
	return min
}

// Publish reserves the next slot, invokes fill with a pointer to it,
// then publishes the slot by advancing the producer sequence.
//
// Publish busy-spins while the slowest registered consumer is N records
// behind (spec.md §4.4, §5) — it blocks rather than overwrite unread
// data. fill must not observe or modify any coordination state.
func (p *Producer[T]) Publish(fill func(*T)) {
	prod := p.h.producer()
	n := p.h.layout.entryCount

	sw := spin.Wait{}
	for {
		seq := prod.sequence.LoadRelaxed()
		if seq-p.minConsumerSequence() < n {
			fill(p.h.slot(seq))
			prod.sequence.StoreRelease(seq + 1)
			return
		}
		sw.Once()
	}
}

// TryPublish behaves like Publish but performs at most one attempt: if
// the ring is currently full against the slowest consumer, it returns
// [ErrWouldBlock] instead of spinning. Not part of spec.md's blocking
// surface; added for callers that want to drive their own backoff loop
// (see [iox.Backoff]).
func (p *Producer[T]) TryPublish(fill func(*T)) error {
	prod := p.h.producer()
	n := p.h.layout.entryCount

	seq := prod.sequence.LoadRelaxed()
	if seq-p.minConsumerSequence() >= n {
		return ErrWouldBlock
	}
	fill(p.h.slot(seq))
	prod.sequence.StoreRelease(seq + 1)
	return nil
}
