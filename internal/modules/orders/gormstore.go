package orders

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type orderRow struct {
	OrderID         string         `gorm:"column:order_id;type:varchar(64);primaryKey"`
	OrderReference  string         `gorm:"column:order_reference;type:varchar(64);not null"`
	CustomerJSON    datatypes.JSON `gorm:"column:customer_json;type:json;not null"`
	CartJSON        datatypes.JSON `gorm:"column:cart_json;type:json;not null"`
	TotalAmount     float64        `gorm:"column:total_amount;not null"`
	StripeSessionID string         `gorm:"column:stripe_session_id;type:varchar(128);not null;index:ix_orders_stripe_session_id"`
	CreatedAt       string         `gorm:"column:created_at;type:varchar(40);not null"`
	Status          string         `gorm:"column:status;type:varchar(32);not null"`
}

func (orderRow) TableName() string { return "orders" }

// GormStore is the MySQL-backed alternative to FileStore, behind the same
// interface. Row inserts make appends atomic without any in-process locking.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

func toRow(o OrderRecord) (orderRow, error) {
	customer, err := json.Marshal(o.CustomerInfo)
	if err != nil {
		return orderRow{}, err
	}
	cart, err := json.Marshal(o.CartItems)
	if err != nil {
		return orderRow{}, err
	}
	return orderRow{
		OrderID:         o.OrderID,
		OrderReference:  o.OrderReference,
		CustomerJSON:    datatypes.JSON(customer),
		CartJSON:        datatypes.JSON(cart),
		TotalAmount:     o.TotalAmount,
		StripeSessionID: o.StripeSessionID,
		CreatedAt:       o.CreatedAt,
		Status:          o.Status,
	}, nil
}

func fromRow(r orderRow) (OrderRecord, error) {
	o := OrderRecord{
		OrderID:         r.OrderID,
		OrderReference:  r.OrderReference,
		TotalAmount:     r.TotalAmount,
		StripeSessionID: r.StripeSessionID,
		CreatedAt:       r.CreatedAt,
		Status:          r.Status,
	}
	if err := json.Unmarshal(r.CustomerJSON, &o.CustomerInfo); err != nil {
		return OrderRecord{}, err
	}
	if err := json.Unmarshal(r.CartJSON, &o.CartItems); err != nil {
		return OrderRecord{}, err
	}
	return o, nil
}

func (s *GormStore) Append(ctx context.Context, o OrderRecord) error {
	row, err := toRow(o)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

func (s *GormStore) FindBySessionID(ctx context.Context, sessionID string) (OrderRecord, error) {
	var row orderRow
	err := s.db.WithContext(ctx).First(&row, "stripe_session_id = ?", sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderRecord{}, ErrNotFound
		}
		return OrderRecord{}, err
	}
	return fromRow(row)
}

func (s *GormStore) All(ctx context.Context) ([]OrderRecord, error) {
	var rows []orderRow
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]OrderRecord, 0, len(rows))
	for _, r := range rows {
		o, err := fromRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}
