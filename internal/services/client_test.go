package services

import (
  "context"
  "errors"
  "testing"

  "github.com/google/uuid"

  "github.com/acriventas/cobranza-backend/internal/soul"
  "github.com/acriventas/cobranza-backend/internal/types"
)

func TestCreateClientDefaults(t *testing.T) {
  f := newFixture(t)

  client := f.createClient(t, "  Carmen Ruiz  ", 1500, soul.Values{Probability: intPtr(30)})

  if client.Name != "Carmen Ruiz" {
    t.Errorf("name = %q, want trimmed", client.Name)
  }
  if client.Status != types.ClientStatusActive {
    t.Errorf("status = %q, want active", client.Status)
  }
  want := soul.Vector{Relationship: 50, History: 50, Attitude: 50, Sensitivity: 50, Probability: 30}
  if client.Soul != want {
    t.Errorf("soul = %+v, want %+v", client.Soul, want)
  }
  if client.PaymentHistory == nil || len(client.PaymentHistory) != 0 {
    t.Errorf("payment history = %v, want empty", client.PaymentHistory)
  }
}

func TestCreateClientValidation(t *testing.T) {
  f := newFixture(t)
  ctx := context.Background()

  tests := []struct {
    name string
    in   CreateClientInput
  }{
    {"empty name", CreateClientInput{Name: "   ", Debt: 100}},
    {"negative debt", CreateClientInput{Name: "X", Debt: -1}},
  }
  for _, tt := range tests {
    t.Run(tt.name, func(t *testing.T) {
      if _, err := f.clientService.Create(ctx, tt.in); !errors.Is(err, ErrValidation) {
        t.Errorf("err = %v, want ErrValidation", err)
      }
    })
  }
}

func TestGetClientNotFound(t *testing.T) {
  f := newFixture(t)
  if _, err := f.clientService.Get(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
    t.Fatalf("err = %v, want ErrNotFound", err)
  }
}

func TestSearchClients(t *testing.T) {
  f := newFixture(t)
  ctx := context.Background()
  f.createClient(t, "María García", 100, soul.Values{})
  f.createClient(t, "Pedro López", 200, soul.Values{})

  if _, err := f.clientService.Update(ctx, mustFind(t, f, "Pedro López").ID, UpdateClientInput{
    Email: strPtr("pedro@example.com"),
  }); err != nil {
    t.Fatalf("Update: %v", err)
  }

  tests := []struct {
    query string
    want  int
  }{
    {"maría", 1},
    {"pedro@", 1},
    {"lóp", 1},
    {"zzz", 0},
    {"", 2},
  }
  for _, tt := range tests {
    got, err := f.clientService.Search(ctx, tt.query)
    if err != nil {
      t.Fatalf("Search(%q): %v", tt.query, err)
    }
    if len(got) != tt.want {
      t.Errorf("Search(%q) = %d results, want %d", tt.query, len(got), tt.want)
    }
  }
}

func mustFind(t *testing.T, f *fixture, name string) *types.Client {
  t.Helper()
  all, err := f.clientService.List(context.Background())
  if err != nil {
    t.Fatalf("List: %v", err)
  }
  for _, c := range all {
    if c.Name == name {
      return c
    }
  }
  t.Fatalf("client %q not found", name)
  return nil
}

func TestApplySoulDeltaClamps(t *testing.T) {
  f := newFixture(t)
  ctx := context.Background()
  client := f.createClient(t, "Tomás", 100, soul.Values{Probability: intPtr(95)})

  updated, err := f.clientService.ApplySoulDelta(ctx, client.ID, soul.Delta{Probability: 30, Attitude: -200})
  if err != nil {
    t.Fatalf("ApplySoulDelta: %v", err)
  }
  if updated.Probability != 100 {
    t.Errorf("probability = %d, want clamped 100", updated.Probability)
  }
  if updated.Attitude != 0 {
    t.Errorf("attitude = %d, want clamped 0", updated.Attitude)
  }

  reloaded, _ := f.clientService.Get(ctx, client.ID)
  if reloaded.Soul != updated {
    t.Errorf("persisted soul = %+v, want %+v", reloaded.Soul, updated)
  }
}

func TestRegisterPaymentPartialThenFull(t *testing.T) {
  f := newFixture(t)
  ctx := context.Background()
  client := f.createClient(t, "Berta", 1000, soul.Values{})

  result, err := f.clientService.RegisterPayment(ctx, client.ID, 600, &PaymentInput{
    Amount: 400,
    Type:   types.PaymentTypePartial,
  })
  if err != nil {
    t.Fatalf("RegisterPayment partial: %v", err)
  }
  if result.NewDebt != 600 || !result.PaymentProcessed {
    t.Errorf("result = %+v", result)
  }

  mid, _ := f.clientService.Get(ctx, client.ID)
  if mid.Status != types.ClientStatusActive {
    t.Errorf("status = %q, want still active", mid.Status)
  }
  if mid.LastPayment == nil {
    t.Error("last_payment not set")
  }
  if len(mid.PaymentHistory) != 1 {
    t.Fatalf("history = %d entries, want 1", len(mid.PaymentHistory))
  }
  if mid.PaymentHistory[0].PreviousDebt != 1000 || mid.PaymentHistory[0].RemainingDebt != 600 {
    t.Errorf("history entry = %+v", mid.PaymentHistory[0])
  }

  if _, err := f.clientService.RegisterPayment(ctx, client.ID, 0, &PaymentInput{
    Amount: 600,
    Type:   types.PaymentTypeComplete,
  }); err != nil {
    t.Fatalf("RegisterPayment full: %v", err)
  }

  final, _ := f.clientService.Get(ctx, client.ID)
  if final.Status != types.ClientStatusPaid {
    t.Errorf("status = %q, want paid", final.Status)
  }
  if final.PaidAt == nil {
    t.Error("paid_at not set")
  }
  if len(final.PaymentHistory) != 2 {
    t.Errorf("history = %d entries, want 2", len(final.PaymentHistory))
  }
}

func TestRegisterPaymentDebtOnlyAdjustment(t *testing.T) {
  f := newFixture(t)
  ctx := context.Background()
  client := f.createClient(t, "Darío", 500, soul.Values{})

  // nil payment is a bare debt correction, no history entry.
  result, err := f.clientService.RegisterPayment(ctx, client.ID, 450, nil)
  if err != nil {
    t.Fatalf("RegisterPayment: %v", err)
  }
  if result.PaymentProcessed {
    t.Error("bare adjustment reported as processed payment")
  }
  reloaded, _ := f.clientService.Get(ctx, client.ID)
  if reloaded.Debt != 450 {
    t.Errorf("debt = %v, want 450", reloaded.Debt)
  }
  if len(reloaded.PaymentHistory) != 0 {
    t.Errorf("history = %d entries, want 0", len(reloaded.PaymentHistory))
  }

  if _, err := f.clientService.RegisterPayment(ctx, client.ID, -1, nil); !errors.Is(err, ErrValidation) {
    t.Errorf("negative debt err = %v, want ErrValidation", err)
  }
}

func TestPaymentStats(t *testing.T) {
  f := newFixture(t)
  ctx := context.Background()
  client := f.createClient(t, "Clara", 900, soul.Values{})

  stats, err := f.clientService.PaymentStats(ctx, client.ID)
  if err != nil {
    t.Fatalf("PaymentStats empty: %v", err)
  }
  if stats.NumberOfPayments != 0 || stats.TotalPaid != 0 {
    t.Errorf("empty stats = %+v", stats)
  }

  if _, err := f.clientService.RegisterPayment(ctx, client.ID, 600, &PaymentInput{Amount: 300}); err != nil {
    t.Fatalf("payment 1: %v", err)
  }
  if _, err := f.clientService.RegisterPayment(ctx, client.ID, 500, &PaymentInput{Amount: 100}); err != nil {
    t.Fatalf("payment 2: %v", err)
  }

  stats, err = f.clientService.PaymentStats(ctx, client.ID)
  if err != nil {
    t.Fatalf("PaymentStats: %v", err)
  }
  if stats.TotalPaid != 400 || stats.NumberOfPayments != 2 || stats.AveragePayment != 200 {
    t.Errorf("stats = %+v", stats)
  }
  if stats.LastPaymentAmount != 100 || stats.LastPaymentDate == nil {
    t.Errorf("last payment = %v / %v", stats.LastPaymentAmount, stats.LastPaymentDate)
  }
}

func TestListDebtors(t *testing.T) {
  f := newFixture(t)
  ctx := context.Background()
  f.createClient(t, "Deudor Grande", 5000, soul.Values{})
  f.createClient(t, "Deudor Chico", 100, soul.Values{})
  paid := f.createClient(t, "Pagado", 200, soul.Values{})
  if _, err := f.clientService.RegisterPayment(ctx, paid.ID, 0, &PaymentInput{Amount: 200}); err != nil {
    t.Fatalf("payoff: %v", err)
  }

  debtors, err := f.clientService.ListDebtors(ctx, 0)
  if err != nil {
    t.Fatalf("ListDebtors: %v", err)
  }
  if len(debtors) != 2 {
    t.Fatalf("debtors = %d, want 2", len(debtors))
  }
  if debtors[0].Debt < debtors[1].Debt {
    t.Error("debtors not ordered by debt desc")
  }

  big, err := f.clientService.ListDebtors(ctx, 1000)
  if err != nil {
    t.Fatalf("ListDebtors min: %v", err)
  }
  if len(big) != 1 || big[0].Name != "Deudor Grande" {
    t.Errorf("filtered debtors = %d", len(big))
  }
}

func TestReportOverview(t *testing.T) {
  f := newFixture(t)
  ctx := context.Background()
  a := f.createClient(t, "Alto", 3000, soul.Values{})
  f.createClient(t, "Bajo", 500, soul.Values{})
  paid := f.createClient(t, "Saldado", 100, soul.Values{})
  if _, err := f.clientService.RegisterPayment(ctx, paid.ID, 0, &PaymentInput{Amount: 100}); err != nil {
    t.Fatalf("payoff: %v", err)
  }

  conversation, err := f.conversationService.Create(ctx, a.ID, uuid.New(), nil)
  if err != nil {
    t.Fatalf("Create conversation: %v", err)
  }
  if _, err := f.conversationService.AppendLiveTurn(ctx, conversation.ID, TurnInput{
    Sender: types.SenderAgent, Phase: soul.PhaseGreeting,
  }); err != nil {
    t.Fatalf("append: %v", err)
  }

  overview, err := f.reportService.Overview(ctx)
  if err != nil {
    t.Fatalf("Overview: %v", err)
  }
  if overview.TotalClients != 3 {
    t.Errorf("total clients = %d, want 3", overview.TotalClients)
  }
  if overview.ActiveDebtors != 2 {
    t.Errorf("active debtors = %d, want 2", overview.ActiveDebtors)
  }
  if overview.TotalDebt != 3500 {
    t.Errorf("total debt = %v, want 3500", overview.TotalDebt)
  }
  if overview.ActiveConversations != 1 {
    t.Errorf("active conversations = %d, want 1", overview.ActiveConversations)
  }
  if len(overview.TopDebtors) != 2 || overview.TopDebtors[0].Name != "Alto" {
    t.Errorf("top debtors = %+v", overview.TopDebtors)
  }
}
