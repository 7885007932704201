package suggest

import (
  "context"
  "fmt"
  "strings"

  "github.com/acriventas/cobranza-backend/internal/logger"
  "github.com/acriventas/cobranza-backend/internal/soul"
  "github.com/acriventas/cobranza-backend/internal/types"
)

// Tone quadrants derived from the client profile. Relationship picks the
// register (friendly vs formal), sensitivity picks how much pressure the
// wording applies.
const (
  ToneFriendlyNoPressure = "friendly_no_pressure"
  ToneFriendly           = "friendly"
  ToneFormalDirect       = "formal_direct"
  ToneFormalSoft         = "formal_soft"
  ToneNeutral            = "neutral"
)

type localService struct {
  log        *logger.Logger
  deltaTable soul.Table
}

// NewLocal builds the offline analyzer: keyword classification plus a
// template matrix keyed by event and tone. It never fails and is the
// fallback behind every other backend.
func NewLocal(log *logger.Logger, deltaTable soul.Table) Service {
  if deltaTable == nil {
    deltaTable = soul.DefaultTable()
  }
  return &localService{
    log:        log.With("service", "LocalSuggest"),
    deltaTable: deltaTable,
  }
}

func (ls *localService) AnalyzeMessage(ctx context.Context, message string, history []types.Turn, clientSoul soul.Vector) (*Analysis, error) {
  event := classifyKeywords(message)
  return &Analysis{
    Event:       event,
    Deltas:      ls.deltaTable.DeltaFor(event),
    Explanation: fmt.Sprintf("keyword match: %q", event),
    Confidence:  0.6,
  }, nil
}

func (ls *localService) GenerateReply(ctx context.Context, history []types.Turn, clientSoul soul.Vector, lastMessage string, lastEvent soul.Event) (*Reply, error) {
  tone := ToneFor(clientSoul)
  byTone, ok := replyTemplates[lastEvent]
  if !ok {
    byTone = replyTemplates["default"]
  }
  text, ok := byTone[tone]
  if !ok {
    text = byTone[ToneNeutral]
  }
  return &Reply{
    Text:        text,
    Tone:        tone,
    Explanation: fmt.Sprintf("template for event %q, tone %q", lastEvent, tone),
    Confidence:  0.7,
  }, nil
}

// ToneFor maps the soul vector onto a tone quadrant. Mid-range
// relationship scores stay neutral.
func ToneFor(v soul.Vector) string {
  switch {
  case v.Relationship > 70 && v.Sensitivity > 70:
    return ToneFriendlyNoPressure
  case v.Relationship > 70:
    return ToneFriendly
  case v.Relationship < 40 && v.Sensitivity < 40:
    return ToneFormalDirect
  case v.Relationship < 40:
    return ToneFormalSoft
  default:
    return ToneNeutral
  }
}

// classifyKeywords mirrors the heuristics agents were already used to:
// payment verbs first, then qualifiers that split full vs partial vs
// deferred, then standalone emotional markers. Order matters, the first
// match wins.
func classifyKeywords(message string) soul.Event {
  text := strings.ToLower(message)
  has := func(words ...string) bool {
    for _, w := range words {
      if strings.Contains(text, w) {
        return true
      }
    }
    return false
  }

  if has("ya pagué", "ya pague", "realicé el pago", "realice el pago", "transferí", "transferi") {
    return soul.EventConfirmsPayment
  }
  if has("pagar", "transferir", "depositar") {
    switch {
    case has("completo", "todo"):
      return soul.EventAcceptsPayment
    case has("parte", "parcial", "algo"):
      return soul.EventOffersPartial
    case has("próxima", "proxima", "después", "despues", "luego"):
      return soul.EventReschedule
    }
    return soul.EventNeutral
  }
  if has("gracias", "agradezco") {
    return soul.EventThanks
  }
  if has("no voy a pagar", "no pagaré", "no pagare", "olvídate", "olvidate") {
    return soul.EventRefuses
  }
  if has("molesto", "harto", "fastidio") {
    return soul.EventAnnoyed
  }
  if has("no puedo", "imposible") {
    return soul.EventEvades
  }
  return soul.EventNeutral
}

var replyTemplates = map[soul.Event]map[string]string{
  soul.EventAcceptsPayment: {
    ToneFriendlyNoPressure: "¡Excelente noticia! Gracias por tu disposición. Cuando puedas hacer el pago, solo avísame.",
    ToneFriendly:           "¡Perfecto! Muchas gracias por tu colaboración. ¿Te envío los datos para el pago?",
    ToneFormalDirect:       "Muy bien. Le agradecemos su decisión. Necesitamos que realice el pago antes del fin de semana.",
    ToneFormalSoft:         "Gracias por su confirmación. ¿Prefiere que le enviemos los datos bancarios por este medio?",
    ToneNeutral:            "Entendido. ¿Desea que le enviemos la información para realizar el pago?",
  },
  soul.EventOffersPartial: {
    ToneFriendlyNoPressure: "Agradezco mucho tu esfuerzo por pagar una parte. Cualquier aporte es bienvenido.",
    ToneFriendly:           "Gracias por tu disposición. Un pago parcial nos ayuda mucho. ¿Cuándo podrías realizar este abono?",
    ToneFormalDirect:       "Tomamos nota de su oferta de pago parcial. ¿Cuándo podríamos esperar el resto del monto?",
    ToneFormalSoft:         "Entendemos su situación. El pago parcial es un buen primer paso. ¿Cuándo sería posible?",
    ToneNeutral:            "De acuerdo con el pago parcial. ¿Qué monto podría transferir y cuándo?",
  },
  soul.EventReschedule: {
    ToneFriendlyNoPressure: "No hay problema, entiendo que necesitas reprogramar. ¿Qué fecha te resultaría más conveniente?",
    ToneFriendly:           "Claro que podemos ajustar la fecha. ¿Cuál sería el mejor momento para ti?",
    ToneFormalDirect:       "Podemos considerar una nueva fecha. ¿Cuál es su propuesta concreta para el pago?",
    ToneFormalSoft:         "Entendemos la necesidad de reprogramar. ¿Qué fecha le resultaría adecuada para realizar el pago?",
    ToneNeutral:            "De acuerdo. ¿Cuál sería la nueva fecha propuesta para el pago?",
  },
  soul.EventEvades: {
    ToneFriendlyNoPressure: "Entiendo que quizás no es el mejor momento para hablar de esto. ¿Te parece si retomamos la conversación en otro momento?",
    ToneFriendly:           "Noto que es un tema delicado. ¿Hay algo específico que podamos resolver para facilitar el pago?",
    ToneFormalDirect:       "Necesitamos una respuesta concreta respecto al pago pendiente. ¿Podría indicarnos su plan de acción?",
    ToneFormalSoft:         "Entendemos que pueda ser un tema complicado. ¿Podríamos concretar cuándo sería posible abordar el pago?",
    ToneNeutral:            "¿Podría por favor indicarnos cuál es su situación respecto al pago pendiente?",
  },
  soul.EventAnnoyed: {
    ToneFriendlyNoPressure: "Lamento si te he incomodado. No es mi intención molestar, solo buscamos encontrar una solución que funcione para ambos.",
    ToneFriendly:           "Disculpa si te he molestado. ¿Qué podríamos hacer para resolver esta situación de la mejor manera?",
    ToneFormalDirect:       "Entendemos su molestia. Sin embargo, necesitamos resolver el tema del pago pendiente. ¿Qué solución propone?",
    ToneFormalSoft:         "Lamentamos si esta comunicación le resulta incómoda. ¿Habría un mejor momento o forma para abordar el tema?",
    ToneNeutral:            "Entiendo. ¿Cómo preferiría que manejemos esta situación para llegar a una solución?",
  },
  soul.EventRefuses: {
    ToneFriendlyNoPressure: "Entiendo tu posición. Quizás podríamos explorar algunas alternativas que se ajusten mejor a tu situación actual.",
    ToneFriendly:           "Comprendo que sea difícil en este momento. ¿Podríamos considerar opciones de pago más flexibles?",
    ToneFormalDirect:       "Tomamos nota de su negativa. Sin embargo, la deuda permanece vigente. ¿Podríamos discutir alternativas de pago?",
    ToneFormalSoft:         "Entendemos que pueda tener dificultades. ¿Le interesaría conocer otras opciones disponibles para resolver esta situación?",
    ToneNeutral:            "¿Podríamos explorar alternativas que faciliten el pago de la deuda pendiente?",
  },
  soul.EventThanks: {
    ToneFriendlyNoPressure: "¡No hay de qué! Estamos aquí para ayudarte. Si necesitas cualquier cosa, no dudes en hacérmelo saber.",
    ToneFriendly:           "Es un placer poder ser de ayuda. ¿Hay algo más en lo que pueda asistirte?",
    ToneFormalDirect:       "De nada. ¿Podríamos entonces confirmar cuándo realizará el pago?",
    ToneFormalSoft:         "Nos alegra poder serle de utilidad. ¿Necesita alguna otra información para proceder?",
    ToneNeutral:            "De nada. ¿Tiene alguna otra consulta respecto al pago?",
  },
  soul.EventConfirmsPayment: {
    ToneFriendlyNoPressure: "¡Excelente noticia! Muchas gracias por tu pago. Verificaremos y te confirmaremos en cuanto se refleje en nuestro sistema.",
    ToneFriendly:           "¡Genial! Gracias por confirmar tu pago. Lo verificaremos a la brevedad y te daremos el comprobante.",
    ToneFormalDirect:       "Gracias por su confirmación. Procederemos a verificar el pago y le notificaremos cuando esté procesado.",
    ToneFormalSoft:         "Agradecemos su pago. Realizaremos la verificación correspondiente y le informaremos una vez completado el proceso.",
    ToneNeutral:            "Gracias por informarnos. Verificaremos el pago y actualizaremos el estado de su cuenta.",
  },
  "default": {
    ToneFriendlyNoPressure: "Entiendo perfectamente. No te preocupes, cuando puedas realizar el pago me avisas.",
    ToneFriendly:           "Agradezco que estemos en contacto. ¿Hay algo en lo que pueda ayudarte para facilitar el proceso?",
    ToneFormalDirect:       "Necesitamos regularizar su situación. ¿Podría por favor indicarnos una fecha concreta de pago?",
    ToneFormalSoft:         "Entendemos que pueden surgir contratiempos. ¿Podría comentarnos cuándo le sería posible realizar el pago?",
    ToneNeutral:            "¿Podría por favor indicarnos cuándo podríamos esperar el pago?",
  },
}
