// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package inlet_test

import (
	"testing"

	"code.hybscloud.com/inlet"
)

type regionTestEntry struct {
	Value  uint64
	Value2 uint64
}

func TestRegionSizeGrowsWithEntryCount(t *testing.T) {
	small := inlet.RegionSize[regionTestEntry](8, 2)
	large := inlet.RegionSize[regionTestEntry](16, 2)
	if large <= small {
		t.Fatalf("RegionSize(16, 2) = %d, want > RegionSize(8, 2) = %d", large, small)
	}
}

func TestRegionSizeGrowsWithConsumerCount(t *testing.T) {
	small := inlet.RegionSize[regionTestEntry](8, 2)
	large := inlet.RegionSize[regionTestEntry](8, 4)
	if large <= small {
		t.Fatalf("RegionSize(8, 4) = %d, want > RegionSize(8, 2) = %d", large, small)
	}
}

func TestRegionSizeDeterministic(t *testing.T) {
	a := inlet.RegionSize[regionTestEntry](8, 2)
	b := inlet.RegionSize[regionTestEntry](8, 2)
	if a != b {
		t.Fatalf("RegionSize(8, 2) not deterministic: %d != %d", a, b)
	}
}
