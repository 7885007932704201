package types

import (
  "database/sql/driver"
  "encoding/json"
  "fmt"
  "time"

  "github.com/google/uuid"

  "github.com/acriventas/cobranza-backend/internal/soul"
)

const (
  ConversationStatusNew      = "new"
  ConversationStatusActive   = "active"
  ConversationStatusInactive = "inactive"
  ConversationStatusClosed   = "closed"
)

// ValidConversationStatus reports whether s is one of the four states.
func ValidConversationStatus(s string) bool {
  switch s {
  case ConversationStatusNew, ConversationStatusActive, ConversationStatusInactive, ConversationStatusClosed:
    return true
  }
  return false
}

const (
  SenderAgent  = "agent"
  SenderClient = "client"
)

// Conversation aggregates the turn ledger and the working copy of the
// client's soul. Status and IsActive are intentionally independent fields:
// a conversation can be status=active with is_active=false after an
// explicit deactivate, and list queries filter on both separately.
type Conversation struct {
  ID             uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  ClientID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"client_id"`
  Client         *Client     `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClientID;references:ID" json:"client,omitempty"`
  ClientName     string      `gorm:"column:client_name" json:"client_name"`
  AgentID        uuid.UUID   `gorm:"type:uuid;index" json:"agent_id"`
  Status         string      `gorm:"column:status;not null;default:new;index" json:"status"`
  IsActive       bool        `gorm:"column:is_active;not null;default:true;index" json:"is_active"`
  InitialSoul    soul.Vector `gorm:"embedded;embeddedPrefix:initial_soul_" json:"initial_soul"`
  CurrentSoul    soul.Vector `gorm:"embedded;embeddedPrefix:current_soul_" json:"current_soul"`
  Turns          TurnList    `gorm:"column:turns;type:jsonb" json:"turns"`
  NextActionDate *time.Time  `gorm:"column:next_action_date;index" json:"next_action_date,omitempty"`
  Summary        *Summary    `gorm:"column:summary;type:jsonb" json:"summary,omitempty"`
  StartedAt      time.Time   `gorm:"column:started_at;not null" json:"started_at"`
  UpdatedAt      time.Time   `gorm:"column:updated_at;not null" json:"updated_at"`
  ClosedAt       *time.Time  `gorm:"column:closed_at" json:"closed_at,omitempty"`
}

func (Conversation) TableName() string {
  return "conversation"
}

// Turn is one message exchange in the ledger. The ledger is append-biased
// but not an audit log: agents can edit turns in place and delete them.
type Turn struct {
  ID          uuid.UUID   `json:"id"`
  Sender      string      `json:"sender"`
  Message     string      `json:"message"`
  Timestamp   time.Time   `json:"timestamp"`
  Phase       soul.Phase  `json:"phase"`
  Event       soul.Event  `json:"event"`
  Deltas      soul.Delta  `json:"deltas"`
  CurrentSoul soul.Vector `json:"current_soul"`
  IsManual    bool        `json:"is_manual,omitempty"`
  IsEdited    bool        `json:"is_edited,omitempty"`
  EditedAt    *time.Time  `json:"edited_at,omitempty"`
}

// Summary closes a conversation: a result classification plus free text and
// an optional follow-up date. Result is required.
type Summary struct {
  Result         string     `json:"result"`
  Notes          string     `json:"notes,omitempty"`
  NextActionDate *time.Time `json:"next_action_date,omitempty"`
  CreatedAt      time.Time  `json:"created_at"`
}

// TurnList stores the ordered ledger in a single jsonb column. The whole
// ledger is read and written as one value, so turn mutations are atomic at
// the conversation-row level only — concurrent editors race last-write-wins.
type TurnList []Turn

func (tl TurnList) Value() (driver.Value, error) {
  if tl == nil {
    tl = TurnList{}
  }
  b, err := json.Marshal(tl)
  if err != nil {
    return nil, err
  }
  return string(b), nil
}

func (tl *TurnList) Scan(src any) error {
  if src == nil {
    *tl = TurnList{}
    return nil
  }
  var b []byte
  switch v := src.(type) {
  case []byte:
    b = v
  case string:
    b = []byte(v)
  default:
    return fmt.Errorf("cannot scan %T into TurnList", src)
  }
  if len(b) == 0 {
    *tl = TurnList{}
    return nil
  }
  return json.Unmarshal(b, tl)
}

func (s Summary) Value() (driver.Value, error) {
  b, err := json.Marshal(s)
  if err != nil {
    return nil, err
  }
  return string(b), nil
}

func (s *Summary) Scan(src any) error {
  var b []byte
  switch v := src.(type) {
  case nil:
    return nil
  case []byte:
    b = v
  case string:
    b = []byte(v)
  default:
    return fmt.Errorf("cannot scan %T into Summary", src)
  }
  if len(b) == 0 {
    return nil
  }
  return json.Unmarshal(b, s)
}

// LastMessageSender returns the sender of the most recent turn, or "" for
// an empty ledger.
func (c *Conversation) LastMessageSender() string {
  if len(c.Turns) == 0 {
    return ""
  }
  return c.Turns[len(c.Turns)-1].Sender
}
