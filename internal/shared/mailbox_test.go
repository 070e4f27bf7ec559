package shared

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

func TestMailbox_LastWriteWins(t *testing.T) {
	m := NewMailbox[string]()
	m.Put("first")
	m.Put("second")
	m.Put("third")

	got, err := m.Wait(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "value", got, "third")

	_, pending := m.Peek()
	testutil.AssertEqual(t, "pending after take", pending, false)
}

func TestMailbox_WaitBlocksUntilPut(t *testing.T) {
	m := NewMailbox[int]()

	got := make(chan int, 1)
	go func() {
		v, err := m.Wait(context.Background())
		if err == nil {
			got <- v
		}
	}()

	select {
	case <-got:
		t.Fatal("wait returned before put")
	case <-time.After(20 * time.Millisecond):
	}

	m.Put(7)

	select {
	case v := <-got:
		testutil.AssertEqual(t, "value", v, 7)
	case <-time.After(time.Second):
		t.Fatal("wait did not return after put")
	}
}

func TestMailbox_WaitCancelled(t *testing.T) {
	m := NewMailbox[int]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Wait(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestValue_Clone(t *testing.T) {
	v := NewClonedValue([]int{1, 2}, func(s []int) []int {
		return append([]int(nil), s...)
	})

	got := v.Load()
	got[0] = 50

	testutil.AssertEqual(t, "stored first", v.Load()[0], 1)

	old := v.Swap([]int{3})
	testutil.AssertEqual(t, "swapped length", len(old), 2)
	testutil.AssertEqual(t, "stored length", len(v.Load()), 1)
}
