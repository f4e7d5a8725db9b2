package logic

import "testing"

func reading(i int) Reading {
	return Reading{Temperature: float64(i), Humidity: float64(i) / 2, Light: i}
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory(10)
	if h.Len() != 0 {
		t.Errorf("expected empty history, got %d", h.Len())
	}
	if got := h.Snapshot(); len(got) != 0 {
		t.Errorf("expected empty snapshot, got %d items", len(got))
	}
}

func TestHistoryDefaultCapacity(t *testing.T) {
	h := NewHistory(0)
	if h.Cap() != DefaultHistorySize {
		t.Errorf("expected capacity %d, got %d", DefaultHistorySize, h.Cap())
	}
}

func TestHistoryAppendBelowCapacity(t *testing.T) {
	h := NewHistory(10)
	for i := 0; i < 5; i++ {
		h.Append(reading(i))
	}

	got := h.Snapshot()
	if len(got) != 5 {
		t.Fatalf("expected 5 items, got %d", len(got))
	}
	for i := 0; i < 5; i++ {
		if got[i] != reading(i) {
			t.Errorf("item %d: expected %+v, got %+v", i, reading(i), got[i])
		}
	}
}

func TestHistoryOverflowKeepsMostRecent(t *testing.T) {
	const capacity = 5
	for k := 0; k <= 12; k++ {
		h := NewHistory(capacity)
		total := capacity + k
		for i := 0; i < total; i++ {
			h.Append(reading(i))

			want := i + 1
			if want > capacity {
				want = capacity
			}
			if h.Len() != want {
				t.Fatalf("k=%d after %d appends: expected len %d, got %d", k, i+1, want, h.Len())
			}
		}

		got := h.Snapshot()
		for i := range got {
			want := reading(total - capacity + i)
			if got[i] != want {
				t.Errorf("k=%d item %d: expected %+v, got %+v", k, i, want, got[i])
			}
		}
	}
}

func TestHistorySnapshotIsCopy(t *testing.T) {
	h := NewHistory(3)
	h.Append(reading(1))

	snap := h.Snapshot()
	snap[0].Temperature = 99

	if h.Snapshot()[0].Temperature != 1 {
		t.Error("mutating a snapshot must not change the history")
	}
}

func TestHistoryCapacityOne(t *testing.T) {
	h := NewHistory(1)
	h.Append(reading(1))
	h.Append(reading(2))

	got := h.Snapshot()
	if len(got) != 1 || got[0] != reading(2) {
		t.Errorf("expected only the newest reading, got %+v", got)
	}
}
