package queries

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/payment"
	"storefront/internal/core/domain/model/shipment"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderDetailsQueryHandler reads order details with two statements: the
// order joined with its payment and shipment, then the tracking history.
type GetOrderDetailsQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderDetailsQueryHandler(db *gorm.DB) GetOrderDetailsQueryHandler {
	return GetOrderDetailsQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound for unknown orders and
// errs.ErrForbidden when the caller did not place the order.
func (h GetOrderDetailsQueryHandler) Handle(ctx context.Context, query GetOrderDetailsQuery) (OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return OrderDetails{}, err
	}

	db := h.db.WithContext(ctx)
	row := db.Raw(`
		SELECT
			o.id, o.store_id, o.user_id, o.product_id, o.status,
			o.item_name, o.item_value, o.item_quantity, o.item_weight,
			o.shipping_required, o.courier_company, o.courier_type, o.shipping_cost,
			o.created_at, o.updated_at,
			p.status, p.transaction_status, p.method, p.amount, p.paid_at,
			s.id, s.carrier_order_id, s.waybill, s.tracking_id,
			s.courier_company, s.courier_type, s.status, s.price
		FROM orders o
		LEFT JOIN payments p ON p.order_id = o.id
		LEFT JOIN shipments s ON s.order_id = o.id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		details                   OrderDetails
		id, storeID, userID       uuid.UUID
		productID                 uuid.UUID
		orderStatus               int
		paymentStatus             sql.NullInt64
		transactionStatus, method sql.NullString
		amount                    decimal.NullDecimal
		paidAt                    sql.NullTime
		shipmentID                uuid.NullUUID
		carrierOrderID, waybill   sql.NullString
		trackingID                sql.NullString
		shipCompany, shipType     sql.NullString
		shipmentStatus            sql.NullInt64
		price                     decimal.NullDecimal
	)

	err := row.Scan(
		&id, &storeID, &userID, &productID, &orderStatus,
		&details.Item.Name, &details.Item.Value, &details.Item.Quantity, &details.Item.Weight,
		&details.ShippingRequired, &details.CourierCompany, &details.CourierType, &details.ShippingCost,
		&details.CreatedAt, &details.UpdatedAt,
		&paymentStatus, &transactionStatus, &method, &amount, &paidAt,
		&shipmentID, &carrierOrderID, &waybill, &trackingID,
		&shipCompany, &shipType, &shipmentStatus, &price,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderDetails{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return OrderDetails{}, err
	}

	if userID != query.CallerID().Bytes() {
		return OrderDetails{}, errs.NewForbiddenError("order", query.OrderID().String())
	}

	if details.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderDetails{}, err
	}
	if details.StoreID, err = kernel.UUIDFromBytes(storeID[:]); err != nil {
		return OrderDetails{}, err
	}
	if details.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
		return OrderDetails{}, err
	}
	details.Status = order.Status(orderStatus).String()

	if paymentStatus.Valid {
		details.Payment = &PaymentView{
			Status:            payment.Status(paymentStatus.Int64).String(),
			TransactionStatus: transactionStatus.String,
			Method:            method.String,
			Amount:            amount.Decimal,
		}
		if paidAt.Valid {
			at := paidAt.Time
			details.Payment.PaidAt = &at
		}
	}

	if shipmentID.Valid {
		sid, idErr := kernel.UUIDFromBytes(shipmentID.UUID[:])
		if idErr != nil {
			return OrderDetails{}, idErr
		}
		history, historyErr := h.history(ctx, shipmentID.UUID)
		if historyErr != nil {
			return OrderDetails{}, historyErr
		}
		details.Shipment = &ShipmentView{
			ID:             sid,
			CarrierOrderID: carrierOrderID.String,
			Waybill:        waybill.String,
			TrackingID:     trackingID.String,
			CourierCompany: shipCompany.String,
			CourierType:    shipType.String,
			Status:         shipment.Status(shipmentStatus.Int64).String(),
			Price:          price.Decimal,
			History:        history,
		}
	}

	return details, nil
}

func (h GetOrderDetailsQueryHandler) history(ctx context.Context, shipmentID uuid.UUID) ([]TrackingEventView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, note, occurred_at
		FROM shipment_tracking_events
		WHERE shipment_id = ?
		ORDER BY position
	`, shipmentID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]TrackingEventView, 0)
	for rows.Next() {
		var (
			event  TrackingEventView
			status int
		)
		if err = rows.Scan(&status, &event.Note, &event.OccurredAt); err != nil {
			return nil, err
		}
		event.Status = shipment.Status(status).String()
		history = append(history, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}
