package services

import (
  "context"
  "encoding/json"
  "fmt"
  "strings"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/acriventas/cobranza-backend/internal/logger"
  "github.com/acriventas/cobranza-backend/internal/repos"
  "github.com/acriventas/cobranza-backend/internal/soul"
  "github.com/acriventas/cobranza-backend/internal/types"
)

type CreateClientInput struct {
  Name       string      `json:"name"`
  Email      string      `json:"email"`
  Phone      string      `json:"phone"`
  Debt       float64     `json:"debt"`
  Soul       soul.Values `json:"soul"`
  Tags       []string    `json:"tags"`
  Notes      string      `json:"notes"`
  ProviderID *uuid.UUID  `json:"provider_id"`
}

type UpdateClientInput struct {
  Name       *string    `json:"name"`
  Email      *string    `json:"email"`
  Phone      *string    `json:"phone"`
  Notes      *string    `json:"notes"`
  Tags       []string   `json:"tags"`
  ProviderID *uuid.UUID `json:"provider_id"`
}

type PaymentInput struct {
  Amount       float64    `json:"amount"`
  Type         string     `json:"type"`
  Notes        string     `json:"notes"`
  PreviousDebt *float64   `json:"previous_debt"`
  ProcessedBy  *uuid.UUID `json:"processed_by"`
}

type PaymentStats struct {
  TotalPaid         float64    `json:"total_paid"`
  NumberOfPayments  int        `json:"number_of_payments"`
  AveragePayment    float64    `json:"average_payment"`
  LastPaymentDate   *time.Time `json:"last_payment_date,omitempty"`
  LastPaymentAmount float64    `json:"last_payment_amount,omitempty"`
}

type PaymentResult struct {
  ClientID         uuid.UUID `json:"client_id"`
  NewDebt          float64   `json:"new_debt"`
  PaymentProcessed bool      `json:"payment_processed"`
}

type ClientService interface {
  Create(ctx context.Context, in CreateClientInput) (*types.Client, error)
  Get(ctx context.Context, clientID uuid.UUID) (*types.Client, error)
  List(ctx context.Context) ([]*types.Client, error)
  Search(ctx context.Context, text string) ([]*types.Client, error)
  Update(ctx context.Context, clientID uuid.UUID, in UpdateClientInput) (*types.Client, error)
  ApplySoulDelta(ctx context.Context, clientID uuid.UUID, d soul.Delta) (soul.Vector, error)
  SetSoul(ctx context.Context, clientID uuid.UUID, values soul.Values) (soul.Vector, error)
  RecordContact(ctx context.Context, clientID uuid.UUID) error
  ListDebtors(ctx context.Context, minDebt float64) ([]*types.Client, error)
  RegisterPayment(ctx context.Context, clientID uuid.UUID, newDebt float64, payment *PaymentInput) (*PaymentResult, error)
  PaymentHistory(ctx context.Context, clientID uuid.UUID) (types.PaymentList, error)
  PaymentStats(ctx context.Context, clientID uuid.UUID) (*PaymentStats, error)
}

type clientService struct {
  db         *gorm.DB
  log        *logger.Logger
  clientRepo repos.ClientRepo
}

func NewClientService(db *gorm.DB, log *logger.Logger, clientRepo repos.ClientRepo) ClientService {
  serviceLog := log.With("service", "ClientService")
  return &clientService{db: db, log: serviceLog, clientRepo: clientRepo}
}

func (cs *clientService) Create(ctx context.Context, in CreateClientInput) (*types.Client, error) {
  if strings.TrimSpace(in.Name) == "" {
    return nil, invalid("client name required")
  }
  if in.Debt < 0 {
    return nil, invalid("debt cannot be negative")
  }

  tags := in.Tags
  if tags == nil {
    tags = []string{}
  }
  tagsJSON, err := json.Marshal(tags)
  if err != nil {
    return nil, fmt.Errorf("marshal tags: %w", err)
  }

  client := &types.Client{
    ID:             uuid.New(),
    Name:           strings.TrimSpace(in.Name),
    Email:          in.Email,
    Phone:          in.Phone,
    Debt:           in.Debt,
    Soul:           soul.SetDirect(in.Soul),
    Status:         types.ClientStatusActive,
    Tags:           datatypes.JSON(tagsJSON),
    Notes:          in.Notes,
    PaymentHistory: types.PaymentList{},
    ProviderID:     in.ProviderID,
  }

  created, err := cs.clientRepo.Create(ctx, nil, client)
  if err != nil {
    cs.log.Error("Failed to create client", "error", err)
    return nil, fmt.Errorf("create client: %w", err)
  }
  cs.log.Info("Client created", "client_id", created.ID, "debt", created.Debt)
  return created, nil
}

func (cs *clientService) Get(ctx context.Context, clientID uuid.UUID) (*types.Client, error) {
  client, err := cs.clientRepo.GetByID(ctx, nil, clientID)
  if err != nil {
    return nil, fmt.Errorf("fetch client: %w", err)
  }
  if client == nil {
    return nil, notFound("client")
  }
  return client, nil
}

func (cs *clientService) List(ctx context.Context) ([]*types.Client, error) {
  return cs.clientRepo.GetAll(ctx, nil)
}

// Search filters in memory over name, email and phone. The original data
// store had no text search, so the filter has always lived app-side; the
// client list is small enough that this has not mattered.
func (cs *clientService) Search(ctx context.Context, text string) ([]*types.Client, error) {
  all, err := cs.clientRepo.GetAll(ctx, nil)
  if err != nil {
    return nil, err
  }
  search := strings.ToLower(strings.TrimSpace(text))
  if search == "" {
    return all, nil
  }

  matched := make([]*types.Client, 0, len(all))
  for _, c := range all {
    if strings.Contains(strings.ToLower(c.Name), search) ||
      (c.Email != "" && strings.Contains(strings.ToLower(c.Email), search)) ||
      (c.Phone != "" && strings.Contains(c.Phone, search)) {
      matched = append(matched, c)
    }
  }
  return matched, nil
}

func (cs *clientService) Update(ctx context.Context, clientID uuid.UUID, in UpdateClientInput) (*types.Client, error) {
  client, err := cs.Get(ctx, clientID)
  if err != nil {
    return nil, err
  }

  fields := map[string]any{}
  if in.Name != nil {
    if strings.TrimSpace(*in.Name) == "" {
      return nil, invalid("client name required")
    }
    fields["name"] = strings.TrimSpace(*in.Name)
  }
  if in.Email != nil {
    fields["email"] = *in.Email
  }
  if in.Phone != nil {
    fields["phone"] = *in.Phone
  }
  if in.Notes != nil {
    fields["notes"] = *in.Notes
  }
  if in.Tags != nil {
    tagsJSON, err := json.Marshal(in.Tags)
    if err != nil {
      return nil, fmt.Errorf("marshal tags: %w", err)
    }
    fields["tags"] = datatypes.JSON(tagsJSON)
  }
  if in.ProviderID != nil {
    fields["provider_id"] = *in.ProviderID
  }
  if len(fields) == 0 {
    return client, nil
  }

  if err := cs.clientRepo.Update(ctx, nil, clientID, fields); err != nil {
    return nil, fmt.Errorf("update client: %w", err)
  }
  return cs.Get(ctx, clientID)
}

func (cs *clientService) ApplySoulDelta(ctx context.Context, clientID uuid.UUID, d soul.Delta) (soul.Vector, error) {
  client, err := cs.Get(ctx, clientID)
  if err != nil {
    return soul.Vector{}, err
  }

  updated := soul.Apply(client.Soul, d)
  if err := cs.clientRepo.UpdateSoul(ctx, nil, clientID, updated); err != nil {
    return soul.Vector{}, fmt.Errorf("update client soul: %w", err)
  }
  cs.log.Debug("Client soul updated by delta", "client_id", clientID, "soul", updated)
  return updated, nil
}

func (cs *clientService) SetSoul(ctx context.Context, clientID uuid.UUID, values soul.Values) (soul.Vector, error) {
  if _, err := cs.Get(ctx, clientID); err != nil {
    return soul.Vector{}, err
  }

  updated := soul.SetDirect(values)
  if err := cs.clientRepo.UpdateSoul(ctx, nil, clientID, updated); err != nil {
    return soul.Vector{}, fmt.Errorf("set client soul: %w", err)
  }
  cs.log.Debug("Client soul set directly", "client_id", clientID, "soul", updated)
  return updated, nil
}

func (cs *clientService) RecordContact(ctx context.Context, clientID uuid.UUID) error {
  now := time.Now().UTC()
  return cs.clientRepo.Update(ctx, nil, clientID, map[string]any{"last_contact": now})
}

func (cs *clientService) ListDebtors(ctx context.Context, minDebt float64) ([]*types.Client, error) {
  return cs.clientRepo.ListWithDebt(ctx, nil, minDebt)
}

func (cs *clientService) RegisterPayment(ctx context.Context, clientID uuid.UUID, newDebt float64, payment *PaymentInput) (*PaymentResult, error) {
  if newDebt < 0 {
    return nil, invalid("debt cannot be negative")
  }
  client, err := cs.Get(ctx, clientID)
  if err != nil {
    return nil, err
  }

  fields := map[string]any{"debt": newDebt}

  if payment != nil {
    now := time.Now().UTC()
    previous := client.Debt
    if payment.PreviousDebt != nil {
      previous = *payment.PreviousDebt
    }
    paymentType := payment.Type
    if paymentType == "" {
      paymentType = types.PaymentTypePayment
    }
    record := types.PaymentRecord{
      ID:            fmt.Sprintf("payment-%d", now.UnixMilli()),
      Date:          now,
      Amount:        payment.Amount,
      Type:          paymentType,
      Notes:         payment.Notes,
      PreviousDebt:  previous,
      RemainingDebt: newDebt,
      ProcessedBy:   payment.ProcessedBy,
    }
    fields["payment_history"] = append(client.PaymentHistory, record)
    fields["last_payment"] = now
    if newDebt == 0 {
      fields["status"] = types.ClientStatusPaid
      fields["paid_at"] = now
    }
  }

  if err := cs.clientRepo.Update(ctx, nil, clientID, fields); err != nil {
    return nil, fmt.Errorf("update client debt: %w", err)
  }
  cs.log.Info("Client debt updated", "client_id", clientID, "new_debt", newDebt, "payment", payment != nil)

  return &PaymentResult{
    ClientID:         clientID,
    NewDebt:          newDebt,
    PaymentProcessed: payment != nil,
  }, nil
}

func (cs *clientService) PaymentHistory(ctx context.Context, clientID uuid.UUID) (types.PaymentList, error) {
  client, err := cs.Get(ctx, clientID)
  if err != nil {
    return nil, err
  }
  if client.PaymentHistory == nil {
    return types.PaymentList{}, nil
  }
  return client.PaymentHistory, nil
}

func (cs *clientService) PaymentStats(ctx context.Context, clientID uuid.UUID) (*PaymentStats, error) {
  history, err := cs.PaymentHistory(ctx, clientID)
  if err != nil {
    return nil, err
  }
  if len(history) == 0 {
    return &PaymentStats{}, nil
  }

  var total float64
  for _, p := range history {
    total += p.Amount
  }
  last := history[len(history)-1]
  lastDate := last.Date

  return &PaymentStats{
    TotalPaid:         total,
    NumberOfPayments:  len(history),
    AveragePayment:    total / float64(len(history)),
    LastPaymentDate:   &lastDate,
    LastPaymentAmount: last.Amount,
  }, nil
}
