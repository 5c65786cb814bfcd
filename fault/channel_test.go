package fault

import (
	"fmt"
	"sync"
	"testing"
)

func TestChannel_SendReceive(t *testing.T) {
	c := NewChannel(4)

	ticket, err := c.Send(&Record{Message: "boom", Func: "hadamard"})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if ticket.Seq == 0 {
		t.Fatal("expected non-zero sequence")
	}
	if c.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", c.Pending())
	}

	rec, ok := c.Receive(ticket)
	if !ok {
		t.Fatal("Receive failed")
	}
	if rec.Message != "boom" || rec.Func != "hadamard" || rec.Seq != ticket.Seq {
		t.Fatalf("unexpected record %+v", rec)
	}
	if c.Pending() != 0 {
		t.Fatalf("Pending = %d, want 0", c.Pending())
	}

	if _, ok := c.Receive(ticket); ok {
		t.Fatal("record received twice")
	}
}

func TestChannel_ReceiveUnknownTicket(t *testing.T) {
	c := NewChannel(4)

	if _, ok := c.Receive(Ticket{}); ok {
		t.Fatal("zero ticket must never match")
	}
	ticket, _ := c.Send(&Record{Message: "a"})
	if _, ok := c.Receive(Ticket{Seq: ticket.Seq + 1, Slot: ticket.Slot}); ok {
		t.Fatal("stale sequence must not drain another record")
	}
	if _, ok := c.Receive(Ticket{Seq: ticket.Seq, Slot: c.Cap()}); ok {
		t.Fatal("out of range slot must not match")
	}
	if _, ok := c.Receive(ticket); !ok {
		t.Fatal("original ticket should still be receivable")
	}
}

func TestChannel_SkipsOccupiedSlots(t *testing.T) {
	c := NewChannel(4)

	held, _ := c.Send(&Record{Message: "held"})
	var tickets []Ticket
	for i := 0; i < 2; i++ {
		tk, err := c.Send(&Record{})
		if err != nil {
			t.Fatalf("Send: %v", err)
		}
		tickets = append(tickets, tk)
	}
	for _, tk := range tickets {
		if _, ok := c.Receive(tk); !ok {
			t.Fatalf("Receive(%+v) failed", tk)
		}
	}

	// Sequences keep advancing while "held" stays in its slot; later sends
	// whose home slot is taken must find another one.
	for i := 0; i < 8; i++ {
		tk, err := c.Send(&Record{})
		if err != nil {
			t.Fatalf("Send %d with one slot held: %v", i, err)
		}
		if tk.Slot == held.Slot {
			t.Fatalf("Send reused occupied slot %d", tk.Slot)
		}
		if _, ok := c.Receive(tk); !ok {
			t.Fatalf("Receive %d failed", i)
		}
	}

	rec, ok := c.Receive(held)
	if !ok || rec.Message != "held" {
		t.Fatalf("held record lost: %+v %v", rec, ok)
	}
}

func TestChannel_CapacityRoundsUp(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 1},
		{1, 1},
		{3, 4},
		{4, 4},
		{200, 256},
	}
	for _, tt := range tests {
		if got := NewChannel(tt.in).Cap(); got != tt.want {
			t.Errorf("NewChannel(%d).Cap() = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestChannel_Full(t *testing.T) {
	c := NewChannel(2)

	for i := 0; i < 2; i++ {
		if _, err := c.Send(&Record{}); err != nil {
			t.Fatalf("Send %d failed: %v", i, err)
		}
	}
	if _, err := c.Send(&Record{}); err != ErrChannelFull {
		t.Fatalf("expected ErrChannelFull, got %v", err)
	}
}

func TestChannel_Concurrent(t *testing.T) {
	c := NewChannel(64)
	var wg sync.WaitGroup

	for g := 0; g < 32; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				msg := fmt.Sprintf("g%d-%d", id, i)
				ticket, err := c.Send(&Record{Message: msg})
				if err != nil {
					t.Errorf("Send: %v", err)
					return
				}
				rec, ok := c.Receive(ticket)
				if !ok {
					t.Errorf("Receive(%+v) failed", ticket)
					return
				}
				if rec.Message != msg {
					t.Errorf("got %q, want %q", rec.Message, msg)
					return
				}
			}
		}(g)
	}

	wg.Wait()
	if c.Pending() != 0 {
		t.Fatalf("Pending = %d after drain", c.Pending())
	}
}
