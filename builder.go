// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package st3

// Builder creates a queue with fluent configuration, selecting between
// the FIFO and LIFO pop order.
//
// Example:
//
//	owner, err := st3.Build[Task](st3.New(1024).LIFO())
type Builder struct {
	capacity int
	lifo     bool
}

// New creates a queue builder with the given capacity. Capacity must be
// a power of two in [1, MaxCapacity]; an invalid value surfaces as a
// *ConstructionError from Build, not from New.
func New(capacity int) *Builder {
	return &Builder{capacity: capacity}
}

// FIFO selects oldest-first owner pops. This is the default.
func (b *Builder) FIFO() *Builder {
	b.lifo = false
	return b
}

// LIFO selects newest-first owner pops.
func (b *Builder) LIFO() *Builder {
	b.lifo = true
	return b
}

// Build creates the Owner described by b.
func Build[T any](b *Builder) (*Owner[T], error) {
	if b.lifo {
		return NewLIFO[T](b.capacity)
	}
	return NewFIFO[T](b.capacity)
}
