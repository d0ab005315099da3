// Package paymentrepo persists payments, one row per order.
package paymentrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentDTO represents the database structure for payments.
type PaymentDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Method            string
	Amount            decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status            int             `gorm:"index;not null"`
	TransactionStatus string
	PaidAt            *time.Time
	CreatedAt         time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime:false"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:                p.ID().Bytes(),
		OrderID:           p.OrderID().Bytes(),
		Method:            p.Method(),
		Amount:            p.Amount(),
		Status:            int(p.Status()),
		TransactionStatus: p.TransactionStatus(),
		PaidAt:            p.PaidAt(),
		CreatedAt:         p.CreatedAt(),
		UpdatedAt:         p.UpdatedAt(),
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(id, orderID, dto.Method, dto.Amount, payment.Status(dto.Status),
		dto.TransactionStatus, dto.PaidAt, dto.CreatedAt, dto.UpdatedAt)
}
