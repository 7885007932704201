package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/acriventas/cobranza-backend/internal/logger"
  "github.com/acriventas/cobranza-backend/internal/types"
)

type ConversationRepo interface {
  Create(ctx context.Context, tx *gorm.DB, conversation *types.Conversation) (*types.Conversation, error)
  GetByID(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) (*types.Conversation, error)
  Update(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID, fields map[string]any) error
  Delete(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) error
  ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, limit int) ([]*types.Conversation, error)
  ListByStatus(ctx context.Context, tx *gorm.DB, status string, agentID *uuid.UUID, limit int) ([]*types.Conversation, error)
  ListActive(ctx context.Context, tx *gorm.DB, agentID *uuid.UUID, limit int) ([]*types.Conversation, error)
  ListActiveByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*types.Conversation, error)
  ListUpcoming(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Conversation, error)
}

type conversationRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewConversationRepo(db *gorm.DB, baseLog *logger.Logger) ConversationRepo {
  repoLog := baseLog.With("repo", "ConversationRepo")
  return &conversationRepo{db: db, log: repoLog}
}

func (cr *conversationRepo) Create(ctx context.Context, tx *gorm.DB, conversation *types.Conversation) (*types.Conversation, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  if err := transaction.WithContext(ctx).Create(conversation).Error; err != nil {
    return nil, err
  }
  return conversation, nil
}

func (cr *conversationRepo) GetByID(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) (*types.Conversation, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var result types.Conversation
  err := transaction.WithContext(ctx).
    Where("id = ?", conversationID).
    First(&result).Error
  if err != nil {
    if err == gorm.ErrRecordNotFound {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (cr *conversationRepo) Update(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID, fields map[string]any) error {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  if len(fields) == 0 {
    return nil
  }
  fields["updated_at"] = time.Now().UTC()

  return transaction.WithContext(ctx).
    Model(&types.Conversation{}).
    Where("id = ?", conversationID).
    Updates(fields).Error
}

func (cr *conversationRepo) Delete(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  return transaction.WithContext(ctx).
    Where("id = ?", conversationID).
    Delete(&types.Conversation{}).Error
}

func (cr *conversationRepo) ListByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID, limit int) ([]*types.Conversation, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var results []*types.Conversation
  q := transaction.WithContext(ctx).
    Where("client_id = ?", clientID).
    Order("started_at desc")
  if limit > 0 {
    q = q.Limit(limit)
  }
  if err := q.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (cr *conversationRepo) ListByStatus(ctx context.Context, tx *gorm.DB, status string, agentID *uuid.UUID, limit int) ([]*types.Conversation, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  orderCol := "started_at desc"
  if status == types.ConversationStatusClosed {
    orderCol = "closed_at desc"
  }

  var results []*types.Conversation
  q := transaction.WithContext(ctx).
    Where("status = ?", status).
    Order(orderCol)
  if agentID != nil {
    q = q.Where("agent_id = ?", *agentID)
  }
  if limit > 0 {
    q = q.Limit(limit)
  }
  if err := q.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (cr *conversationRepo) ListActive(ctx context.Context, tx *gorm.DB, agentID *uuid.UUID, limit int) ([]*types.Conversation, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  // Both flags checked independently: a deactivated conversation can still
  // carry status=active and must not show up here.
  var results []*types.Conversation
  q := transaction.WithContext(ctx).
    Where("status = ?", types.ConversationStatusActive).
    Where("is_active = ?", true).
    Order("started_at desc")
  if agentID != nil {
    q = q.Where("agent_id = ?", *agentID)
  }
  if limit > 0 {
    q = q.Limit(limit)
  }
  if err := q.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (cr *conversationRepo) ListActiveByClient(ctx context.Context, tx *gorm.DB, clientID uuid.UUID) ([]*types.Conversation, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var results []*types.Conversation
  if err := transaction.WithContext(ctx).
    Where("client_id = ?", clientID).
    Where("is_active = ?", true).
    Where("status IN ?", []string{types.ConversationStatusNew, types.ConversationStatusActive}).
    Order("updated_at desc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (cr *conversationRepo) ListUpcoming(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Conversation, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var results []*types.Conversation
  q := transaction.WithContext(ctx).
    Where("status = ?", types.ConversationStatusActive).
    Where("is_active = ?", true).
    Where("next_action_date >= ?", time.Now().UTC()).
    Order("next_action_date asc")
  if limit > 0 {
    q = q.Limit(limit)
  }
  if err := q.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
