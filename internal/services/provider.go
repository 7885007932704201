package services

import (
  "context"
  "fmt"
  "strings"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/acriventas/cobranza-backend/internal/logger"
  "github.com/acriventas/cobranza-backend/internal/repos"
  "github.com/acriventas/cobranza-backend/internal/types"
)

type ProviderInput struct {
  Name            string `json:"name"`
  Address         string `json:"address"`
  BankInformation string `json:"bank_information"`
}

type UpdateProviderInput struct {
  Name            *string `json:"name"`
  Address         *string `json:"address"`
  BankInformation *string `json:"bank_information"`
}

type ProviderService interface {
  Create(ctx context.Context, in ProviderInput) (*types.Provider, error)
  Get(ctx context.Context, providerID uuid.UUID) (*types.Provider, error)
  List(ctx context.Context) ([]*types.Provider, error)
  Update(ctx context.Context, providerID uuid.UUID, in UpdateProviderInput) (*types.Provider, error)
}

type providerService struct {
  db           *gorm.DB
  log          *logger.Logger
  providerRepo repos.ProviderRepo
}

func NewProviderService(db *gorm.DB, log *logger.Logger, providerRepo repos.ProviderRepo) ProviderService {
  serviceLog := log.With("service", "ProviderService")
  return &providerService{db: db, log: serviceLog, providerRepo: providerRepo}
}

func (ps *providerService) Create(ctx context.Context, in ProviderInput) (*types.Provider, error) {
  if strings.TrimSpace(in.Name) == "" {
    return nil, invalid("provider name required")
  }

  provider := &types.Provider{
    ID:              uuid.New(),
    Name:            strings.TrimSpace(in.Name),
    Address:         in.Address,
    BankInformation: in.BankInformation,
  }

  created, err := ps.providerRepo.Create(ctx, nil, provider)
  if err != nil {
    ps.log.Error("Failed to create provider", "error", err)
    return nil, fmt.Errorf("create provider: %w", err)
  }
  ps.log.Info("Provider created", "provider_id", created.ID)
  return created, nil
}

func (ps *providerService) Get(ctx context.Context, providerID uuid.UUID) (*types.Provider, error) {
  provider, err := ps.providerRepo.GetByID(ctx, nil, providerID)
  if err != nil {
    return nil, fmt.Errorf("fetch provider: %w", err)
  }
  if provider == nil {
    return nil, notFound("provider")
  }
  return provider, nil
}

func (ps *providerService) List(ctx context.Context) ([]*types.Provider, error) {
  return ps.providerRepo.GetAll(ctx, nil)
}

func (ps *providerService) Update(ctx context.Context, providerID uuid.UUID, in UpdateProviderInput) (*types.Provider, error) {
  provider, err := ps.Get(ctx, providerID)
  if err != nil {
    return nil, err
  }

  fields := map[string]any{}
  if in.Name != nil {
    if strings.TrimSpace(*in.Name) == "" {
      return nil, invalid("provider name required")
    }
    fields["name"] = strings.TrimSpace(*in.Name)
  }
  if in.Address != nil {
    fields["address"] = *in.Address
  }
  if in.BankInformation != nil {
    fields["bank_information"] = *in.BankInformation
  }
  if len(fields) == 0 {
    return provider, nil
  }

  if err := ps.providerRepo.Update(ctx, nil, providerID, fields); err != nil {
    return nil, fmt.Errorf("update provider: %w", err)
  }
  return ps.Get(ctx, providerID)
}
