// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command inlet-consumer attaches to a topic under a named consumer id
// and prints every record it observes. Grounded on
// original_source/example-consumer.
package main

import (
	"flag"
	"fmt"
	"log"

	"code.hybscloud.com/inlet"
)

type tick struct {
	Value uint64
}

func main() {
	topic := flag.String("topic", "example", "topic name")
	id := flag.String("id", "consumer1", "consumer id")
	n := flag.Int("n", 8, "ring entry count")
	m := flag.Int("m", 2, "max consumer count")
	flag.Parse()

	cons, err := inlet.NewConsumer[tick](*topic, *id, *n, *m)
	if err != nil {
		log.Fatalf("inlet-consumer: attach %q as %q: %v", *topic, *id, err)
	}
	defer cons.Close()

	cons.ProcessForever(func(t *tick) {
		fmt.Printf("Value: %d\n", t.Value)
	})
}
