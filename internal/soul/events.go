package soul

import (
  "fmt"
  "io"
  "gopkg.in/yaml.v3"
)

// Event classifies a single client or agent turn in a collection call.
type Event string

const (
  EventNeutral         Event = "neutral"
  EventAcceptsPayment  Event = "accepts_payment"
  EventOffersPartial   Event = "offers_partial"
  EventReschedule      Event = "reschedule"
  EventEvades          Event = "evades"
  EventAnnoyed         Event = "annoyed"
  EventRefuses         Event = "refuses"
  EventThanks          Event = "thanks"
  EventNoAnswer        Event = "no_answer"
  EventConfirmsPayment Event = "confirms_payment"
)

// Events lists every known event kind, neutral included.
var Events = []Event{
  EventNeutral,
  EventAcceptsPayment,
  EventOffersPartial,
  EventReschedule,
  EventEvades,
  EventAnnoyed,
  EventRefuses,
  EventThanks,
  EventNoAnswer,
  EventConfirmsPayment,
}

// Known reports whether e is one of the enumerated event kinds.
func Known(e Event) bool {
  for _, k := range Events {
    if e == k {
      return true
    }
  }
  return false
}

// Table maps events to the delta applied to a client's vector when that
// event is recorded. It is static configuration, not computed state.
type Table map[Event]Delta

// DefaultTable returns the built-in event/delta matrix.
func DefaultTable() Table {
  return Table{
    EventNeutral:         {},
    EventAcceptsPayment:  {Relationship: 5, History: 10, Attitude: 10, Sensitivity: -5, Probability: 20},
    EventOffersPartial:   {Relationship: 5, History: 5, Attitude: 10, Sensitivity: -5, Probability: 15},
    EventReschedule:      {Relationship: 2, History: -5, Attitude: 5, Sensitivity: 0, Probability: -5},
    EventEvades:          {Relationship: -5, History: -5, Attitude: -10, Sensitivity: 5, Probability: -10},
    EventAnnoyed:         {Relationship: -10, History: -5, Attitude: -15, Sensitivity: 10, Probability: -15},
    EventRefuses:         {Relationship: -20, History: -20, Attitude: -20, Sensitivity: 20, Probability: -30},
    EventThanks:          {Relationship: 5, History: 0, Attitude: 10, Sensitivity: -5, Probability: 10},
    EventNoAnswer:        {Relationship: -5, History: -10, Attitude: -5, Sensitivity: 0, Probability: -10},
    EventConfirmsPayment: {Relationship: 10, History: 20, Attitude: 20, Sensitivity: -10, Probability: 30},
  }
}

// DeltaFor is total over Event: unknown or absent kinds resolve to the
// zero delta, same as neutral.
func (t Table) DeltaFor(e Event) Delta {
  if d, ok := t[e]; ok {
    return d
  }
  return ZeroDelta()
}

// LoadTable reads a YAML document mapping event names to deltas and merges
// it over the defaults, so an override file only needs the entries it wants
// to retune. Unknown event names are rejected to catch typos in config.
func LoadTable(r io.Reader) (Table, error) {
  raw := map[Event]Delta{}
  dec := yaml.NewDecoder(r)
  if err := dec.Decode(&raw); err != nil {
    return nil, fmt.Errorf("decode event delta table: %w", err)
  }
  t := DefaultTable()
  for e, d := range raw {
    if !Known(e) {
      return nil, fmt.Errorf("unknown event %q in delta table", e)
    }
    t[e] = d
  }
  return t, nil
}
