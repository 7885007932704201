package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/acriventas/cobranza-backend/internal/logger"
  "github.com/acriventas/cobranza-backend/internal/types"
)

type ProviderRepo interface {
  Create(ctx context.Context, tx *gorm.DB, provider *types.Provider) (*types.Provider, error)
  GetByID(ctx context.Context, tx *gorm.DB, providerID uuid.UUID) (*types.Provider, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Provider, error)
  Update(ctx context.Context, tx *gorm.DB, providerID uuid.UUID, fields map[string]any) error
}

type providerRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewProviderRepo(db *gorm.DB, baseLog *logger.Logger) ProviderRepo {
  repoLog := baseLog.With("repo", "ProviderRepo")
  return &providerRepo{db: db, log: repoLog}
}

func (pr *providerRepo) Create(ctx context.Context, tx *gorm.DB, provider *types.Provider) (*types.Provider, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if err := transaction.WithContext(ctx).Create(provider).Error; err != nil {
    return nil, err
  }
  return provider, nil
}

func (pr *providerRepo) GetByID(ctx context.Context, tx *gorm.DB, providerID uuid.UUID) (*types.Provider, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var result types.Provider
  err := transaction.WithContext(ctx).
    Where("id = ?", providerID).
    First(&result).Error
  if err != nil {
    if err == gorm.ErrRecordNotFound {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (pr *providerRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Provider, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Provider
  if err := transaction.WithContext(ctx).
    Order("name asc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *providerRepo) Update(ctx context.Context, tx *gorm.DB, providerID uuid.UUID, fields map[string]any) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if len(fields) == 0 {
    return nil
  }
  fields["updated_at"] = time.Now().UTC()

  return transaction.WithContext(ctx).
    Model(&types.Provider{}).
    Where("id = ?", providerID).
    Updates(fields).Error
}
