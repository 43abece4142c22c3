// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command inlet-producer publishes an incrementing counter to a topic
// once per tick. Grounded on original_source/example-producer.
package main

import (
	"flag"
	"log"
	"time"

	"code.hybscloud.com/inlet"
	"code.hybscloud.com/iox"
)

type tick struct {
	Value uint64
}

func main() {
	topic := flag.String("topic", "example", "topic name")
	n := flag.Int("n", 8, "ring entry count")
	m := flag.Int("m", 2, "max consumer count")
	interval := flag.Duration("interval", time.Second, "publish interval")
	flag.Parse()

	prod, err := inlet.NewProducer[tick](*topic, *n, *m)
	if err != nil {
		log.Fatalf("inlet-producer: attach %q: %v", *topic, err)
	}
	defer prod.Close()

	var counter uint64
	backoff := iox.Backoff{}
	for {
		err := prod.TryPublish(func(t *tick) { t.Value = counter })
		if err != nil {
			if !inlet.IsWouldBlock(err) {
				log.Fatalf("inlet-producer: publish: %v", err)
			}
			backoff.Wait()
			continue
		}
		backoff.Reset()
		counter++
		time.Sleep(*interval)
	}
}
