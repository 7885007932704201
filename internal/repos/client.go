package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/acriventas/cobranza-backend/internal/logger"
  "github.com/acriventas/cobranza-backend/internal/soul"
  "github.com/acriventas/cobranza-backend/internal/types"
)

type ClientRepo interface {
  Create(ctx context.Context, tx *gorm.DB, client *types.Client) (*types.Client, error)
  GetByID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (*types.Client, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Client, error)
  Update(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, fields map[string]any) error
  UpdateSoul(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, v soul.Vector) error
  ListWithDebt(ctx context.Context, tx *gorm.DB, minDebt float64) ([]*types.Client, error)
}

type clientRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewClientRepo(db *gorm.DB, baseLog *logger.Logger) ClientRepo {
  repoLog := baseLog.With("repo", "ClientRepo")
  return &clientRepo{db: db, log: repoLog}
}

func (cr *clientRepo) Create(ctx context.Context, tx *gorm.DB, client *types.Client) (*types.Client, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  if err := transaction.WithContext(ctx).Create(client).Error; err != nil {
    return nil, err
  }
  return client, nil
}

func (cr *clientRepo) GetByID(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) (*types.Client, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var result types.Client
  err := transaction.WithContext(ctx).
    Where("id = ?", clientID).
    First(&result).Error
  if err != nil {
    if err == gorm.ErrRecordNotFound {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (cr *clientRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Client, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var results []*types.Client
  if err := transaction.WithContext(ctx).
    Order("name asc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (cr *clientRepo) Update(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, fields map[string]any) error {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  if len(fields) == 0 {
    return nil
  }
  fields["updated_at"] = time.Now().UTC()

  return transaction.WithContext(ctx).
    Model(&types.Client{}).
    Where("id = ?", clientID).
    Updates(fields).Error
}

func (cr *clientRepo) UpdateSoul(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, v soul.Vector) error {
  return cr.Update(ctx, tx, clientID, map[string]any{
    "soul_relationship": v.Relationship,
    "soul_history":      v.History,
    "soul_attitude":     v.Attitude,
    "soul_sensitivity":  v.Sensitivity,
    "soul_probability":  v.Probability,
  })
}

func (cr *clientRepo) ListWithDebt(ctx context.Context, tx *gorm.DB, minDebt float64) ([]*types.Client, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var results []*types.Client
  if err := transaction.WithContext(ctx).
    Where("debt > ?", minDebt).
    Where("status = ?", types.ClientStatusActive).
    Order("debt desc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
