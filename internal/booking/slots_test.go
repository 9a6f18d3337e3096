package booking

import (
	"reflect"
	"testing"
)

func TestReserveRejectsTakenSlot(t *testing.T) {
	slots := SlotMap{"15/03/2025": {"10:00", "10:30"}}

	if err := slots.Reserve("15/03/2025", "10:00"); err != ErrSlotTaken {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
	// rejected booking must not mutate state
	want := []string{"10:00", "10:30"}
	if !reflect.DeepEqual(slots["15/03/2025"], want) {
		t.Fatalf("slot list mutated on rejected booking: %v", slots["15/03/2025"])
	}
}

func TestReserveAppendsFreeSlot(t *testing.T) {
	slots := SlotMap{"15/03/2025": {"10:00", "10:30"}}

	if err := slots.Reserve("15/03/2025", "11:00"); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	want := []string{"10:00", "10:30", "11:00"}
	if !reflect.DeepEqual(slots["15/03/2025"], want) {
		t.Fatalf("got %v, want %v", slots["15/03/2025"], want)
	}
}

func TestReserveNewDateKey(t *testing.T) {
	slots := SlotMap{}
	if err := slots.Reserve("16/03/2025", "09:00"); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if !slots.Has("16/03/2025", "09:00") {
		t.Fatal("slot not recorded under new date key")
	}
}

func TestReleaseRestoresList(t *testing.T) {
	slots := SlotMap{"15/03/2025": {"10:00", "10:30", "11:00"}}

	slots.Release("15/03/2025", "11:00")

	want := []string{"10:00", "10:30"}
	if !reflect.DeepEqual(slots["15/03/2025"], want) {
		t.Fatalf("got %v, want %v", slots["15/03/2025"], want)
	}
}

func TestReleaseUnknownTimeIsNoop(t *testing.T) {
	slots := SlotMap{"15/03/2025": {"10:00"}}
	slots.Release("15/03/2025", "12:00")
	slots.Release("20/03/2025", "10:00")

	if !reflect.DeepEqual(slots["15/03/2025"], []string{"10:00"}) {
		t.Fatalf("unexpected mutation: %v", slots)
	}
}

func TestReleaseDropsEmptyDate(t *testing.T) {
	slots := SlotMap{"15/03/2025": {"10:00"}}
	slots.Release("15/03/2025", "10:00")

	if _, ok := slots["15/03/2025"]; ok {
		t.Fatal("empty date key should be dropped")
	}
}

func TestCloneIsDeep(t *testing.T) {
	slots := SlotMap{"15/03/2025": {"10:00"}}
	cp := slots.Clone()
	if err := cp.Reserve("15/03/2025", "10:30"); err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	if slots.Has("15/03/2025", "10:30") {
		t.Fatal("clone shares backing storage with original")
	}
}
