// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package inlet_test

import (
	"fmt"
	"sync"
	"testing"

	"code.hybscloud.com/inlet"
)

// TestOrderedDeliveryAcrossConsumers exercises spec.md §8 properties
// 2 ("ordered delivery") and 3 ("no reordering across consumers"): every
// independently attached consumer observes the full sequence of
// published values, in order, with no gaps — this is a broadcast ring,
// not a work-sharing queue, so each consumer sees every record rather
// than one disjoint subset.
func TestOrderedDeliveryAcrossConsumers(t *testing.T) {
	if inlet.RaceEnabled {
		t.Skip("skip: mmap'd coordination fields use cross-variable memory ordering the race detector can't see")
	}

	cleanupTopic(t, "t-concurrency-1")

	const n, m, total = 16, 3, 500

	prod, err := inlet.NewProducer[valueEntry]("t-concurrency-1", n, m)
	if err != nil {
		t.Fatalf("NewProducer: %v", err)
	}
	defer prod.Close()

	var wg sync.WaitGroup
	errs := make(chan error, m)

	for c := 0; c < m; c++ {
		cons, err := inlet.NewConsumer[valueEntry]("t-concurrency-1", fmt.Sprintf("consumer-%d", c), n, m)
		if err != nil {
			t.Fatalf("NewConsumer %d: %v", c, err)
		}
		wg.Add(1)
		go func(cons *inlet.Consumer[valueEntry]) {
			defer wg.Done()
			defer cons.Close()
			for want := uint64(0); want < total; want++ {
				var got uint64
				cons.ProcessNext(func(e *valueEntry) { got = e.Value })
				if got != want {
					errs <- fmt.Errorf("out-of-order or duplicate delivery: want %d, got %d", want, got)
					return
				}
			}
		}(cons)
	}

	go func() {
		for v := uint64(0); v < total; v++ {
			prod.Publish(func(e *valueEntry) { e.Value = v })
		}
	}()

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}
