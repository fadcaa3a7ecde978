// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package st3

// position is a monotonic index into a logical infinite stream of slots.
// Its low log2(N) bits select a slot in the ring; the bits above that form
// a generation counter that defeats ABA: a position cached by a stealer
// and compared against after a full generation turnover looks unchanged
// only once every 2^(32-log2(N)) push/pop cycles, which exceeds any
// realistic preemption window by a wide margin.
//
// This target carries 64-bit atomics, so the packed head uses a 32-bit
// position on each side (positionWidth). A target without 64-bit atomics
// would need a 16-bit position packed into a 32-bit head word instead,
// per the platform contract; this module does not implement that fallback
// (see DESIGN.md).
type position = uint32

const positionWidth = 32

// MaxCapacity is the largest capacity a queue can be constructed with:
// half the position domain, so the generation bits strictly dominate the
// index bits.
const MaxCapacity = 1 << (positionWidth - 1)

// packHead combines real and stealer positions into a single 64-bit word:
// real in the low half, stealer in the high half. The two halves move
// together under one CAS, which is what makes the reservation protocol a
// single atomic RMW instead of a pair.
func packHead(real, stealer position) uint64 {
	return uint64(real) | uint64(stealer)<<positionWidth
}

// unpackHead splits a packed head word back into its real and stealer
// positions.
func unpackHead(h uint64) (real, stealer position) {
	return position(h), position(h >> positionWidth)
}

// distance returns how many slots lie between a and b going forward,
// i.e. (b - a) mod 2^32. Callers must only rely on the result when the
// design guarantees distance <= capacity; an out-of-range distance means
// the positions being compared were never related by a valid sequence of
// pushes and pops.
func distance(a, b position) uint32 {
	return b - a
}
