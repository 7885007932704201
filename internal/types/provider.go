package types

import (
  "time"
  "github.com/google/uuid"
)

// Provider holds the creditor a debt belongs to, mainly for the bank
// details agents read out when a client agrees to pay.
type Provider struct {
  ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  Name            string    `gorm:"not null;column:name;index" json:"name"`
  Address         string    `gorm:"column:address" json:"address"`
  BankInformation string    `gorm:"column:bank_information" json:"bank_information"`
  CreatedAt       time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

func (Provider) TableName() string {
  return "provider"
}
