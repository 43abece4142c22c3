// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package shm implements the create-or-open race and the mmap/flock
// primitives that back a shared region (spec.md §4.3).
//
// It is grounded on AlephTX-aleph-tx/feeder/shm (O_CREATE + mmap for the
// create path) and calvinalkan-agent-task/pkg/slotcache (open-validate
// with a typed error, advisory .lock file for interprocess
// serialization), adapted from those repos' domains onto the layout
// computed by the parent package.
package shm

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Mapping is a memory-mapped, file-backed byte region shared across
// processes attached to the same path.
type Mapping struct {
	Bytes []byte

	// Created reports whether this process was the one that created
	// the backing file (the "create branch" of spec.md §4.3).
	Created bool

	file *os.File
}

// CreateOrOpen implements the create-or-open race of spec.md §4.3:
// the first process to reach path creates and zero-extends it to size;
// every other process opens the existing file and maps it as-is.
//
// The caller is responsible for filling the header and flipping the
// readiness flag on the create branch, and for waiting on it on the
// open branch — CreateOrOpen only establishes the mapping.
func CreateOrOpen(path string, size int64) (*Mapping, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	switch {
	case err == nil:
		if truncErr := f.Truncate(size); truncErr != nil {
			f.Close()
			return nil, fmt.Errorf("inlet: truncate %s: %w", path, truncErr)
		}
		buf, mmapErr := mmapFile(f, size)
		if mmapErr != nil {
			f.Close()
			return nil, mmapErr
		}
		return &Mapping{Bytes: buf, Created: true, file: f}, nil

	case errors.Is(err, os.ErrExist):
		f, err = os.OpenFile(path, os.O_RDWR, 0644)
		if err != nil {
			return nil, fmt.Errorf("inlet: open %s: %w", path, err)
		}
		buf, mmapErr := mmapFile(f, size)
		if mmapErr != nil {
			f.Close()
			return nil, mmapErr
		}
		return &Mapping{Bytes: buf, Created: false, file: f}, nil

	default:
		return nil, fmt.Errorf("inlet: create %s: %w", path, err)
	}
}

func mmapFile(f *os.File, size int64) ([]byte, error) {
	buf, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("inlet: mmap %s: %w", f.Name(), err)
	}
	return buf, nil
}

// Sync flushes the mapping's metadata to stable storage, so that a
// later opener on another process cannot observe a partially-written
// header (spec.md §4.3 step 2).
func (m *Mapping) Sync() error {
	if err := unix.Msync(m.Bytes, unix.MS_SYNC); err != nil {
		return fmt.Errorf("inlet: msync: %w", err)
	}
	return nil
}

// Close unmaps the region and closes the backing file descriptor. The
// file itself is never removed — spec.md §6 requires it to persist
// until removed externally.
func (m *Mapping) Close() error {
	err := unix.Munmap(m.Bytes)
	if cerr := m.file.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// Lock is an advisory interprocess lock taken while claiming a consumer
// slot (spec.md §9's "MAY strengthen this with a compare-and-swap on
// the id field" — the id is a 128-byte array with no atomic CAS, so
// inlet strengthens the scan-and-claim with flock serialization
// instead). Grounded on calvinalkan-agent-task/pkg/slotcache's
// Path+".lock" technique.
type Lock struct {
	file *os.File
}

// AcquireLock blocks until it holds an exclusive lock on path+".lock".
func AcquireLock(path string) (*Lock, error) {
	f, err := os.OpenFile(path+".lock", os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("inlet: open lock file %s: %w", path, err)
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		f.Close()
		return nil, fmt.Errorf("inlet: flock %s: %w", path, err)
	}
	return &Lock{file: f}, nil
}

// Release unlocks and closes the lock file. The lock file itself is
// left in place, as the backing region file is.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	_ = unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	return l.file.Close()
}
