package fault

import (
	"errors"
	"sync/atomic"
)

// DefaultCapacity bounds the number of faults that may be in flight (sent
// but not yet drained) at the same time across all goroutines.
const DefaultCapacity = 256

// ErrChannelFull is returned by Send when every slot holds an undrained
// record.
var ErrChannelFull = errors.New("fault channel full")

// Record is one captured engine fault.
type Record struct {
	Message string
	Func    string
	Seq     uint64
}

// Ticket identifies one sent record. The zero Ticket matches nothing.
type Ticket struct {
	Seq  uint64
	Slot int
}

// Channel carries fault records from the interceptor to the guard on the
// same goroutine. A sender claims a sequence number with one atomic add and
// publishes into the first free slot at or after its home slot with CAS; the
// receiver drains exactly the ticket it was handed. No locks are taken on
// either side.
type Channel struct {
	slots   []atomic.Pointer[Record]
	mask    uint64
	seq     atomic.Uint64
	pending atomic.Int64
}

// NewChannel creates a channel with capacity rounded up to a power of two.
func NewChannel(capacity int) *Channel {
	size := 1
	for size < capacity {
		size <<= 1
	}
	return &Channel{
		slots: make([]atomic.Pointer[Record], size),
		mask:  uint64(size - 1),
	}
}

// Send publishes rec and returns the ticket under which it can be received.
// rec.Seq is set before publication.
func (c *Channel) Send(rec *Record) (Ticket, error) {
	seq := c.seq.Add(1)
	rec.Seq = seq
	for i := uint64(0); i <= c.mask; i++ {
		idx := (seq + i) & c.mask
		if c.slots[idx].CompareAndSwap(nil, rec) {
			c.pending.Add(1)
			return Ticket{Seq: seq, Slot: int(idx)}, nil
		}
	}
	return Ticket{}, ErrChannelFull
}

// Receive drains the record published under t. It returns false if no such
// record is waiting.
func (c *Channel) Receive(t Ticket) (*Record, bool) {
	if t.Seq == 0 || t.Slot < 0 || t.Slot >= len(c.slots) {
		return nil, false
	}
	slot := &c.slots[t.Slot]
	rec := slot.Load()
	if rec == nil || rec.Seq != t.Seq {
		return nil, false
	}
	if !slot.CompareAndSwap(rec, nil) {
		return nil, false
	}
	c.pending.Add(-1)
	return rec, true
}

// Pending returns the number of records sent and not yet received.
func (c *Channel) Pending() int {
	return int(c.pending.Load())
}

// Cap returns the number of slots.
func (c *Channel) Cap() int {
	return len(c.slots)
}
