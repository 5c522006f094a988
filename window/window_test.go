package window

import (
	"errors"
	"math"
	"testing"
)

func mustNew(t *testing.T, capacity int) *RollingWindow {
	t.Helper()
	w, err := New(capacity)
	if err != nil {
		t.Fatalf("New(%d) failed: %v", capacity, err)
	}
	return w
}

func TestNewRejectsNonPositiveCapacity(t *testing.T) {
	for _, c := range []int{0, -1, -20} {
		w, err := New(c)
		if !errors.Is(err, ErrInvalidCapacity) {
			t.Fatalf("capacity %d: expected ErrInvalidCapacity, got %v", c, err)
		}
		if w != nil {
			t.Fatalf("capacity %d: expected nil window", c)
		}
	}
}

func TestAddEvictsOldest(t *testing.T) {
	w := mustNew(t, 3)
	w.Add(1.0)
	w.Add(2.0)
	w.Add(3.0)
	if w.Len() != 3 {
		t.Fatalf("expected 3 samples, got %d", w.Len())
	}

	w.Add(4.0)
	if w.Len() != 3 {
		t.Fatalf("length should stay at capacity, got %d", w.Len())
	}
	front, ok := w.Front()
	if !ok || front != 2.0 {
		t.Fatalf("expected oldest sample 2.0, got %v (ok=%v)", front, ok)
	}
	avg, ok := w.Average()
	if !ok || avg != 3.0 {
		t.Fatalf("expected average 3.0, got %v (ok=%v)", avg, ok)
	}
	got := w.Values()
	want := []float64{2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("values = %v, want %v", got, want)
		}
	}
}

func TestAverage(t *testing.T) {
	w := mustNew(t, 3)
	w.Add(1.0)
	w.Add(2.0)
	w.Add(3.0)
	avg, ok := w.Average()
	if !ok || avg != 2.0 {
		t.Fatalf("expected 2.0, got %v (ok=%v)", avg, ok)
	}
}

func TestAverageEmptyWindow(t *testing.T) {
	w := mustNew(t, 3)
	avg, ok := w.Average()
	if ok {
		t.Fatalf("empty window must report no value, got %v", avg)
	}
	if _, ok := w.Front(); ok {
		t.Fatal("empty window must have no front sample")
	}
}

func TestAddAcceptsZero(t *testing.T) {
	w := mustNew(t, 2)
	w.Add(0)
	avg, ok := w.Average()
	if !ok || avg != 0 {
		t.Fatalf("expected present 0.0 average, got %v (ok=%v)", avg, ok)
	}
}

func TestLengthIsMinOfInsertsAndCapacity(t *testing.T) {
	for _, c := range []int{1, 2, 5, 20} {
		w := mustNew(t, c)
		for n := 1; n <= 3*c; n++ {
			w.Add(float64(n))
			want := n
			if want > c {
				want = c
			}
			if w.Len() != want {
				t.Fatalf("cap %d after %d inserts: len %d, want %d", c, n, w.Len(), want)
			}
			if w.Full() != (n >= c) {
				t.Fatalf("cap %d after %d inserts: Full() = %v", c, n, w.Full())
			}
		}
	}
}

func TestHoldsLastCapacityValuesInOrder(t *testing.T) {
	const c = 4
	w := mustNew(t, c)
	var inserted []float64
	for i := 0; i < 11; i++ {
		v := float64(i*i) - 7.5
		w.Add(v)
		inserted = append(inserted, v)
		if len(inserted) < c {
			continue
		}
		tail := inserted[len(inserted)-c:]
		got := w.Values()
		for j := range tail {
			if got[j] != tail[j] {
				t.Fatalf("after %d inserts: values %v, want %v", len(inserted), got, tail)
			}
		}
	}
}

func TestFirstInsertedIsFirstEvicted(t *testing.T) {
	w := mustNew(t, 3)
	w.Add(10)
	w.Add(20)
	w.Add(30)
	before := w.Values()
	w.Add(40)
	after := w.Values()
	for _, v := range after {
		if v == before[0] {
			t.Fatalf("value %v should have been evicted, window is %v", before[0], after)
		}
	}
}

func TestAverageMatchesArithmeticMean(t *testing.T) {
	const c = 7
	w := mustNew(t, c)
	for i := 0; i < 500; i++ {
		w.Add(60000 + 1000*math.Sin(float64(i)) + 0.01*float64(i))
		vals := w.Values()
		sum := 0.0
		for _, v := range vals {
			sum += v
		}
		want := sum / float64(len(vals))
		got, ok := w.Average()
		if !ok {
			t.Fatal("average missing on non-empty window")
		}
		if math.Abs(got-want) > 1e-6 {
			t.Fatalf("insert %d: average %v, want %v", i, got, want)
		}
	}
}

func TestCapacityOne(t *testing.T) {
	w := mustNew(t, 1)
	for _, v := range []float64{3, -1.5, 42} {
		w.Add(v)
		avg, ok := w.Average()
		if !ok || avg != v {
			t.Fatalf("capacity 1 should track last value %v, got %v", v, avg)
		}
	}
	if w.Cap() != 1 {
		t.Fatalf("Cap() = %d", w.Cap())
	}
}

func TestValuesReturnsCopy(t *testing.T) {
	w := mustNew(t, 2)
	w.Add(1)
	w.Add(2)
	vals := w.Values()
	vals[0] = 99
	if front, _ := w.Front(); front != 1 {
		t.Fatalf("mutating Values() result leaked into the window: front=%v", front)
	}
}
