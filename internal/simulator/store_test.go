package simulator_test

import (
	"testing"

	"github.com/rgt24/orderboard/internal/domain"
	"github.com/rgt24/orderboard/internal/simulator"
)

func TestStore_CreateAssignsSequentialIDs(t *testing.T) {
	s := simulator.NewStore()

	a := s.Create("pizza", 1)
	b := s.Create("pasta", 2)

	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("want sequential ids, got %d %d", a.ID, b.ID)
	}
	if a.Status != domain.StatusAccepted {
		t.Fatalf("want accepted status, got %s", a.Status)
	}
}

func TestStore_UpdateStatus(t *testing.T) {
	s := simulator.NewStore()
	created := s.Create("pizza", 1)

	updated, err := s.UpdateStatus(created.ID, domain.StatusDone)
	if err != nil || updated.Status != domain.StatusDone {
		t.Fatalf("unexpected result: %+v err=%v", updated, err)
	}

	if _, err := s.UpdateStatus(99, domain.StatusDone); err != simulator.ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestStore_PageBounds(t *testing.T) {
	s := simulator.NewStore()
	for i := 0; i < 7; i++ {
		s.Create("pizza", 1)
	}

	if got := s.Page(0, 5); len(got) != 5 || got[0].ID != 7 {
		t.Fatalf("want first page 7..3, got %+v", got)
	}
	if got := s.Page(1, 5); len(got) != 2 || got[0].ID != 2 {
		t.Fatalf("want short second page 2,1, got %+v", got)
	}
	if got := s.Page(2, 5); len(got) != 0 {
		t.Fatalf("want empty page past the end, got %+v", got)
	}
}

func TestStore_SinceAscending(t *testing.T) {
	s := simulator.NewStore()
	for i := 0; i < 4; i++ {
		s.Create("pizza", 1)
	}

	got := s.Since(2)
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 4 {
		t.Fatalf("want ids 3,4 ascending, got %+v", got)
	}

	if got := s.Since(0); len(got) != 4 {
		t.Fatalf("since 0 must return everything, got %d", len(got))
	}
}
