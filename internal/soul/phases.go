package soul

// Phase tags a turn with the stage of the collection script it belongs to.
// The progression is advisory: agents may pick any phase for any turn, and
// nothing validates ordering.
type Phase string

const (
  PhaseGreeting            Phase = "greeting"
  PhaseDebtNotification    Phase = "debt_notification"
  PhaseNegotiation         Phase = "negotiation"
  PhasePaymentConfirmation Phase = "payment_confirmation"
  PhaseFarewell            Phase = "farewell"
)

// Phases in script order.
var Phases = []Phase{
  PhaseGreeting,
  PhaseDebtNotification,
  PhaseNegotiation,
  PhasePaymentConfirmation,
  PhaseFarewell,
}

// ValidPhase reports whether p names one of the five stages.
func ValidPhase(p Phase) bool {
  for _, k := range Phases {
    if p == k {
      return true
    }
  }
  return false
}

// Next returns the stage after p, or p itself when already at farewell or
// when p is not a known phase.
func Next(p Phase) Phase {
  for i, k := range Phases {
    if p == k && i+1 < len(Phases) {
      return Phases[i+1]
    }
  }
  return p
}

// SuggestNext proposes the phase for the following turn given the event just
// recorded in phase p. Only two transitions auto-advance; everything else
// stays where the agent put it.
func SuggestNext(p Phase, e Event) Phase {
  switch {
  case p == PhaseNegotiation && e == EventAcceptsPayment:
    return PhasePaymentConfirmation
  case p == PhasePaymentConfirmation && e == EventConfirmsPayment:
    return PhaseFarewell
  }
  return p
}
