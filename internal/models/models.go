package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Address is embedded into User; nothing looks accounts up by it.
type Address struct {
	Line1    string `gorm:"size:255" json:"line1"`
	Line2    string `gorm:"size:255" json:"line2,omitempty"`
	Line3    string `gorm:"size:255" json:"line3,omitempty"`
	Town     string `gorm:"size:100" json:"town"`
	County   string `gorm:"size:100" json:"county"`
	Postcode string `gorm:"size:20" json:"postcode"`
}

type User struct {
	ID        string    `gorm:"primaryKey;size:40" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Phone     string    `gorm:"size:20" json:"phoneNumber"`
	Address   Address   `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	CreatedAt time.Time `json:"createdTimestamp"`
	UpdatedAt time.Time `json:"updatedTimestamp"`
}

// BankAccount is keyed by its public account number ("01" + 6 digits).
// Balance is mutated only through the ledger service.
type BankAccount struct {
	AccountNumber string          `gorm:"primaryKey;size:8" json:"accountNumber"`
	SortCode      string          `gorm:"size:8;not null" json:"sortCode"`
	Name          string          `gorm:"size:100;not null" json:"name"`
	AccountType   string          `gorm:"size:20;not null" json:"accountType"`
	Balance       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"balance"`
	Currency      string          `gorm:"size:3;not null" json:"currency"`
	OwnerID       string          `gorm:"index;size:40;not null" json:"ownerId"`
	CreatedAt     time.Time       `json:"createdTimestamp"`
	UpdatedAt     time.Time       `json:"updatedTimestamp"`
}

// Transaction rows are append-only. They are removed only when the owning
// account is closed and its history goes with it.
type Transaction struct {
	ID            string          `gorm:"primaryKey;size:40" json:"id"`
	AccountNumber string          `gorm:"index;size:8;not null" json:"accountNumber"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency      string          `gorm:"size:3;not null" json:"currency"`
	Type          string          `gorm:"size:16;not null" json:"type"`
	Reference     string          `gorm:"size:255" json:"reference,omitempty"`
	PostedBy      string          `gorm:"size:40;not null" json:"userId"`
	CreatedAt     time.Time       `json:"createdTimestamp"`
}
