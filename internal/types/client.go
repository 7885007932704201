package types

import (
  "database/sql/driver"
  "encoding/json"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"

  "github.com/acriventas/cobranza-backend/internal/soul"
)

const (
  ClientStatusActive = "active"
  ClientStatusPaid   = "paid"
)

type Client struct {
  ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
  Name           string         `gorm:"not null;column:name;index" json:"name"`
  Email          string         `gorm:"column:email" json:"email"`
  Phone          string         `gorm:"column:phone" json:"phone"`
  Debt           float64        `gorm:"column:debt;not null;default:0" json:"debt"`
  Soul           soul.Vector    `gorm:"embedded;embeddedPrefix:soul_" json:"soul"`
  Status         string         `gorm:"column:status;not null;default:active;index" json:"status"`
  Tags           datatypes.JSON `gorm:"column:tags;type:jsonb" json:"tags,omitempty"`
  Notes          string         `gorm:"column:notes" json:"notes"`
  LastContact    *time.Time     `gorm:"column:last_contact" json:"last_contact,omitempty"`
  LastPayment    *time.Time     `gorm:"column:last_payment" json:"last_payment,omitempty"`
  PaidAt         *time.Time     `gorm:"column:paid_at" json:"paid_at,omitempty"`
  PaymentHistory PaymentList    `gorm:"column:payment_history;type:jsonb" json:"payment_history"`
  ProviderID     *uuid.UUID     `gorm:"type:uuid;index" json:"provider_id,omitempty"`
  Provider       *Provider      `gorm:"constraint:OnDelete:SET NULL;foreignKey:ProviderID;references:ID" json:"provider,omitempty"`
  CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
  UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
}

func (Client) TableName() string {
  return "client"
}

const (
  PaymentTypeComplete = "complete"
  PaymentTypePartial  = "partial"
  PaymentTypePayment  = "payment"
)

// PaymentRecord is one entry of a client's append-only payment history.
type PaymentRecord struct {
  ID            string     `json:"id"`
  Date          time.Time  `json:"date"`
  Amount        float64    `json:"amount"`
  Type          string     `json:"type"`
  Notes         string     `json:"notes,omitempty"`
  PreviousDebt  float64    `json:"previous_debt"`
  RemainingDebt float64    `json:"remaining_debt"`
  ProcessedBy   *uuid.UUID `json:"processed_by,omitempty"`
}

// PaymentList stores the history as a single jsonb column, mirroring the
// array-in-document layout the data originally had.
type PaymentList []PaymentRecord

func (pl PaymentList) Value() (driver.Value, error) {
  if pl == nil {
    pl = PaymentList{}
  }
  b, err := json.Marshal(pl)
  if err != nil {
    return nil, err
  }
  return string(b), nil
}

func (pl *PaymentList) Scan(src any) error {
  if src == nil {
    *pl = PaymentList{}
    return nil
  }
  var b []byte
  switch v := src.(type) {
  case []byte:
    b = v
  case string:
    b = []byte(v)
  default:
    return fmt.Errorf("cannot scan %T into PaymentList", src)
  }
  if len(b) == 0 {
    *pl = PaymentList{}
    return nil
  }
  return json.Unmarshal(b, pl)
}
