package soul

import "testing"

func TestNextWalksScriptOrder(t *testing.T) {
  cases := []struct {
    in   Phase
    want Phase
  }{
    {PhaseGreeting, PhaseDebtNotification},
    {PhaseDebtNotification, PhaseNegotiation},
    {PhaseNegotiation, PhasePaymentConfirmation},
    {PhasePaymentConfirmation, PhaseFarewell},
    {PhaseFarewell, PhaseFarewell},
    {Phase("bogus"), Phase("bogus")},
  }
  for _, tc := range cases {
    if got := Next(tc.in); got != tc.want {
      t.Fatalf("Next(%s)=%s, want %s", tc.in, got, tc.want)
    }
  }
}

func TestSuggestNext(t *testing.T) {
  cases := []struct {
    name  string
    phase Phase
    event Event
    want  Phase
  }{
    {"accepts payment during negotiation advances", PhaseNegotiation, EventAcceptsPayment, PhasePaymentConfirmation},
    {"confirms payment during confirmation advances", PhasePaymentConfirmation, EventConfirmsPayment, PhaseFarewell},
    {"accepts payment outside negotiation stays", PhaseGreeting, EventAcceptsPayment, PhaseGreeting},
    {"confirms payment outside confirmation stays", PhaseNegotiation, EventConfirmsPayment, PhaseNegotiation},
    {"neutral never advances", PhaseNegotiation, EventNeutral, PhaseNegotiation},
    {"refusal never advances", PhaseNegotiation, EventRefuses, PhaseNegotiation},
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      if got := SuggestNext(tc.phase, tc.event); got != tc.want {
        t.Fatalf("SuggestNext(%s, %s)=%s, want %s", tc.phase, tc.event, got, tc.want)
      }
    })
  }
}

func TestValidPhase(t *testing.T) {
  for _, p := range Phases {
    if !ValidPhase(p) {
      t.Fatalf("ValidPhase(%s)=false", p)
    }
  }
  if ValidPhase(Phase("prologue")) {
    t.Fatal("ValidPhase accepted unknown phase")
  }
}
