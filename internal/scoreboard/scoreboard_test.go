package scoreboard

import (
	"fmt"
	"sync"
	"testing"
)

func TestRecordOrdersAndTrims(t *testing.T) {
	b := New(3)

	steps := []struct {
		name  string
		score int
		rank  int
	}{
		{"ann", 300, 1},
		{"bob", 100, 2},
		{"cat", 200, 2},
		{"dan", 200, 3}, // tie goes behind cat
		{"eve", 50, 0},
		{"fay", 400, 1},
	}
	for _, s := range steps {
		if got := b.Record(s.name, s.score); got != s.rank {
			t.Fatalf("Record(%s, %d) rank = %d, want %d", s.name, s.score, got, s.rank)
		}
	}

	top := b.Top(0)
	want := []string{"fay", "ann", "cat"}
	if len(top) != len(want) {
		t.Fatalf("table size = %d, want %d", len(top), len(want))
	}
	for i, name := range want {
		if top[i].Name != name {
			t.Fatalf("rank %d = %s, want %s", i+1, top[i].Name, name)
		}
	}
	if b.Best() != 400 {
		t.Fatalf("Best = %d, want 400", b.Best())
	}
}

func TestTopReturnsCopy(t *testing.T) {
	b := New(5)
	b.Record("ann", 100)
	top := b.Top(1)
	top[0].Score = 9999
	if b.Best() != 100 {
		t.Fatal("Top exposed internal storage")
	}
	if len(b.Top(10)) != 1 {
		t.Fatal("Top(n) larger than the table should return the table")
	}
}

func TestEmptyBoard(t *testing.T) {
	b := New(0)
	if b.Best() != 0 || len(b.Top(3)) != 0 {
		t.Fatal("empty board not empty")
	}
}

func TestConcurrentRecord(t *testing.T) {
	b := New(5)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b.Record(fmt.Sprintf("p%d", i), i*10)
			b.Top(5)
		}(i)
	}
	wg.Wait()

	top := b.Top(0)
	if len(top) != 5 || top[0].Score != 490 || top[4].Score != 450 {
		t.Fatalf("unexpected table %+v", top)
	}
}
