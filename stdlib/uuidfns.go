// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/utlxlang/utlx/interp"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

func registerUUID(r map[string]interp.StdlibFunc) {
	r["generateUuidV4"] = fnGenerateUUIDv4
	r["generateUuidV7"] = fnGenerateUUIDv7
}

func fnGenerateUUIDv4(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("generateUuidV4", args, 0, 0); err != nil {
		return nil, err
	}
	id, gerr := uuid.NewRandom()
	if gerr != nil {
		return nil, argError("generateUuidV4", "cannot generate: %v", gerr)
	}
	return udm.String(id.String()), nil
}

// v7State serializes UUIDv7 generation so batch calls within the same
// millisecond stay monotonic, per spec §4.9: the 12 bits immediately after
// the version nibble (rand_a) are used as a per-millisecond counter rather
// than pure randomness, following the same "sequence counter alongside a
// millisecond timestamp" layout the ULID byte format (see rotationalio-ulid)
// uses to guarantee lexicographic ordering.
var v7State struct {
	mu      sync.Mutex
	lastMs  int64
	counter uint16
}

func fnGenerateUUIDv7(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("generateUuidV7", args, 0, 0); err != nil {
		return nil, err
	}
	ms := time.Now().UnixMilli()

	v7State.mu.Lock()
	if ms <= v7State.lastMs {
		ms = v7State.lastMs
		v7State.counter++
		if v7State.counter > 0x0FFF {
			// exhausted the 12-bit counter within one millisecond; advance
			// the clock by one tick so ordering is preserved.
			ms++
			v7State.counter = 0
		}
	} else {
		v7State.counter = 0
	}
	v7State.lastMs = ms
	counter := v7State.counter
	v7State.mu.Unlock()

	var b [16]byte
	b[0] = byte(ms >> 40)
	b[1] = byte(ms >> 32)
	b[2] = byte(ms >> 24)
	b[3] = byte(ms >> 16)
	b[4] = byte(ms >> 8)
	b[5] = byte(ms)

	b[6] = 0x70 | byte(counter>>8&0x0F) // version nibble 7 + top 4 bits of rand_a
	b[7] = byte(counter)

	rnd := make([]byte, 8)
	if _, rerr := rand.Read(rnd); rerr != nil {
		return nil, argError("generateUuidV7", "cannot read randomness: %v", rerr)
	}
	copy(b[8:], rnd)
	b[8] = (b[8] & 0x3F) | 0x80 // variant bits 10

	s := fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
	return udm.String(s), nil
}
