package soul

import (
  "strings"
  "testing"
)

func TestDeltaForIsTotal(t *testing.T) {
  table := DefaultTable()
  for _, e := range Events {
    d := table.DeltaFor(e)
    if e == EventNeutral && !d.IsZero() {
      t.Fatalf("neutral must map to zero delta, got %+v", d)
    }
    if e != EventNeutral && d.IsZero() {
      t.Fatalf("event %q has no delta entry", e)
    }
  }
  if d := table.DeltaFor(Event("nonsense")); !d.IsZero() {
    t.Fatalf("unknown event must resolve to zero delta, got %+v", d)
  }
  if d := table.DeltaFor(Event("")); !d.IsZero() {
    t.Fatalf("absent event must resolve to zero delta, got %+v", d)
  }
}

func TestDefaultTableReferenceValues(t *testing.T) {
  table := DefaultTable()
  cases := []struct {
    event Event
    want  Delta
  }{
    {EventAcceptsPayment, Delta{Relationship: 5, History: 10, Attitude: 10, Sensitivity: -5, Probability: 20}},
    {EventRefuses, Delta{Relationship: -20, History: -20, Attitude: -20, Sensitivity: 20, Probability: -30}},
    {EventConfirmsPayment, Delta{Relationship: 10, History: 20, Attitude: 20, Sensitivity: -10, Probability: 30}},
    {EventNoAnswer, Delta{Relationship: -5, History: -10, Attitude: -5, Sensitivity: 0, Probability: -10}},
  }
  for _, tc := range cases {
    if got := table.DeltaFor(tc.event); got != tc.want {
      t.Fatalf("DeltaFor(%s)=%+v, want %+v", tc.event, got, tc.want)
    }
  }
}

func TestLoadTableMergesOverDefaults(t *testing.T) {
  yml := `
refuses:
  relationship: -25
  history: -25
  attitude: -25
  sensitivity: 25
  probability: -35
`
  table, err := LoadTable(strings.NewReader(yml))
  if err != nil {
    t.Fatalf("LoadTable: %v", err)
  }
  want := Delta{Relationship: -25, History: -25, Attitude: -25, Sensitivity: 25, Probability: -35}
  if got := table.DeltaFor(EventRefuses); got != want {
    t.Fatalf("override not applied: got %+v, want %+v", got, want)
  }
  // untouched entries keep their defaults
  if got := table.DeltaFor(EventThanks); got != DefaultTable().DeltaFor(EventThanks) {
    t.Fatalf("unrelated entry changed: %+v", got)
  }
}

func TestLoadTableRejectsUnknownEvent(t *testing.T) {
  _, err := LoadTable(strings.NewReader("shouts: {relationship: -1}\n"))
  if err == nil {
    t.Fatal("expected error for unknown event name")
  }
}
