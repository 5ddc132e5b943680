package state

import (
	"strings"
	"testing"

	"github.com/san-kum/equilibria/internal/chem"
)

func TestLog_RecordAndEvict(t *testing.T) {
	log := NewLog(DefaultLogCapacity)
	st := SystemState{Temperature: 25, Pressure: 1, ReactantConc: 50, ProductConc: 50}

	for i := 0; i < 13; i++ {
		st.Temperature = float64(i)
		log.Record(chem.Exothermic, st)
	}

	if log.Len() != 10 {
		t.Fatalf("expected 10 entries, got %d", log.Len())
	}

	entries := log.Entries()
	if entries[0].ID != 4 {
		t.Errorf("expected oldest id 4, got %d", entries[0].ID)
	}
	if entries[9].ID != 13 {
		t.Errorf("expected newest id 13, got %d", entries[9].ID)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].ID != entries[i-1].ID+1 {
			t.Errorf("entries out of order at %d: %d then %d", i, entries[i-1].ID, entries[i].ID)
		}
	}
	if entries[0].Temperature != 3 {
		t.Errorf("expected oldest temperature 3, got %.0f", entries[0].Temperature)
	}
}

func TestLog_Clear(t *testing.T) {
	log := NewLog(3)
	st := SystemState{Temperature: 25, Pressure: 1}
	log.Record(chem.GasPhase, st)
	log.Record(chem.GasPhase, st)

	log.Clear()
	if log.Len() != 0 {
		t.Errorf("expected empty log, got %d", log.Len())
	}

	obs := log.Record(chem.GasPhase, st)
	if obs.ID != 1 {
		t.Errorf("expected id counter reset, got %d", obs.ID)
	}
}

func TestLog_EntriesIsCopy(t *testing.T) {
	log := NewLog(2)
	log.Record(chem.Exothermic, SystemState{Temperature: 30})

	entries := log.Entries()
	entries[0].Temperature = 99
	if log.Entries()[0].Temperature != 30 {
		t.Error("Entries leaked internal storage")
	}
}

func TestObservation_Summary(t *testing.T) {
	log := NewLog(0)
	if log.Capacity() != DefaultLogCapacity {
		t.Errorf("expected default capacity, got %d", log.Capacity())
	}

	st := SystemState{Temperature: 75, Pressure: 1, ReactantConc: 50, ProductConc: 50, Shift: -25, Status: chem.ShiftingLeft}
	obs := log.Record(chem.Exothermic, st)

	if obs.Status != "Shifting to the Left" {
		t.Errorf("unexpected status text %q", obs.Status)
	}
	summary := obs.Summary()
	for _, want := range []string{"Shifting to the Left", "75 degrees Celsius", "1 atmospheres", "50 percent"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary %q missing %q", summary, want)
		}
	}
}
