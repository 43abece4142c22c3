// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package inlet provides a single-producer / multi-consumer lock-free
// ring buffer for inter-process message passing through a memory-mapped
// file.
//
// A producer publishes fixed-size typed records into a bounded circular
// slot array. Independent consumer processes attached to the same named
// topic observe every published record in order, at their own pace,
// with backpressure on the producer when any registered consumer falls
// behind by a full ring's worth of records.
//
// # Quick Start
//
// A producer and a consumer each name the same topic; the first one to
// touch the backing file creates and initializes it, the rest attach to
// it:
//
//	type Tick struct {
//	    Value uint64
//	}
//
//	prod, err := inlet.NewProducer[Tick]("ticks", 8, 4)
//	// ...
//	prod.Publish(func(t *Tick) { t.Value = 42 })
//
//	cons, err := inlet.NewConsumer[Tick]("ticks", "worker-1", 8, 4)
//	// ...
//	cons.ProcessNext(func(t *Tick) {
//	    fmt.Println(t.Value)
//	})
//
// T, the entry count (N), and the max consumer count (M) are effectively
// part of the wire format: changing any of them for an existing topic
// requires removing the backing file first (attach rejects mismatches
// with [ErrIncompatibleLayout]).
//
// # Backpressure
//
// Publish blocks (busy-spins) while the slowest registered consumer is
// N records behind the producer — overwriting unread data is never an
// option, only waiting for readers to catch up. A silent consumer
// (attached but never advancing) therefore halts the producer
// indefinitely; this package does not detect or evict stuck consumers.
//
// # Consumer resumption
//
// A consumer id claims a slot in the region's fixed consumer table on
// first attach. A later process reattaching with the same id resumes
// from the sequence the prior process left off — consumer state is
// bound to the id, not the process.
//
// # Non-blocking variants
//
// [Producer.TryPublish] and [Consumer.TryProcessNext] perform a single
// attempt and return [ErrWouldBlock] instead of spinning, for callers
// that want to drive their own backoff loop:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := prod.TryPublish(func(t *Tick) { t.Value = next() })
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if !inlet.IsWouldBlock(err) {
//	        return err
//	    }
//	    backoff.Wait()
//	}
//
// # Non-goals
//
// No persistence semantics beyond the mapping file, no cross-platform
// wire portability (native endianness and alignment are assumed), no
// multiple producers, no consumer liveness detection, no encryption,
// authentication, or access control beyond filesystem permissions on
// the mapping file, no schema negotiation beyond a size check.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for the coordination
// fields' explicit acquire/release/relaxed atomics,
// [code.hybscloud.com/spin] for busy-wait pause instructions, and
// [code.hybscloud.com/iox] for [ErrWouldBlock] and its companion
// [iox.Backoff] helper. golang.org/x/sys/unix backs the mmap/msync/flock
// transport in the unexported internal/shm package.
package inlet
