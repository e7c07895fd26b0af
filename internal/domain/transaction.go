package domain

import "time"

// TransactionType distinguishes ledger entries.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// TransactionStatus is the settlement state of a ledger entry.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCanceled  TransactionStatus = "canceled"
)

// PaymentMethod enumerates how money moved.
type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodBank       PaymentMethod = "bank"
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodCheck      PaymentMethod = "check"
)

// Transaction is a general bookkeeping entry (office rent, premium income, ...).
type Transaction struct {
	ID                int64             `db:"id" json:"id"`
	Date              time.Time         `db:"date" json:"date"`
	Type              TransactionType   `db:"type" json:"type"`
	Category          string            `db:"category" json:"category"`
	Amount            float64           `db:"amount" json:"amount"`
	RelatedEntityType *string           `db:"related_entity_type" json:"relatedEntityType,omitempty"`
	RelatedEntityID   *int64            `db:"related_entity_id" json:"relatedEntityId,omitempty"`
	Description       *string           `db:"description" json:"description,omitempty"`
	PaymentMethod     PaymentMethod     `db:"payment_method" json:"paymentMethod"`
	Status            TransactionStatus `db:"status" json:"status"`
	CreatedAt         time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt         *time.Time        `db:"updated_at" json:"updatedAt,omitempty"`
}

// FinancialTransactionType ties a money movement to its originating record.
type FinancialTransactionType string

const (
	FinancialTxPremiumPayment    FinancialTransactionType = "premium_payment"
	FinancialTxCommissionPayment FinancialTransactionType = "commission_payment"
	FinancialTxClaimPayment      FinancialTransactionType = "claim_payment"
)

// FinancialTransaction records money movements derived from policies,
// commissions and claims. Kept separate from Transaction to mirror the
// ledger split used by the reporting queries.
type FinancialTransaction struct {
	ID              int64                    `db:"id" json:"id"`
	TransactionType FinancialTransactionType `db:"transaction_type" json:"transactionType"`
	RelatedID       *int64                   `db:"related_id" json:"relatedId,omitempty"`
	Amount          float64                  `db:"amount" json:"amount"`
	TransactionDate time.Time                `db:"transaction_date" json:"transactionDate"`
	Description     string                   `db:"description" json:"description"`
	Status          string                   `db:"status" json:"status"`
	CreatedAt       time.Time                `db:"created_at" json:"createdAt"`
	UpdatedAt       *time.Time               `db:"updated_at" json:"updatedAt,omitempty"`
}
