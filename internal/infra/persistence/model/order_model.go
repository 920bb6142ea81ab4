package model

import (
	"usersync/internal/domain/entity"
)

// Document field names used in queries and partial updates.
const (
	FieldUserID  = "user_id"
	FieldOrderID = "order_id"
	FieldStatus  = "status"
)

// OrderModel represents the stored order document
type OrderModel struct {
	OrderID string `bson:"order_id" docstore:"order_id"`
	UserID  string `bson:"user_id" docstore:"user_id"`
	Items   []any  `bson:"items" docstore:"items"`
	Status  string `bson:"status" docstore:"status"`
	Email   string `bson:"email" docstore:"email"`
	Address string `bson:"address" docstore:"address"`
}

// ToDomain converts OrderModel to domain entity
func (m *OrderModel) ToDomain() *entity.Order {
	items := m.Items
	if items == nil {
		items = []any{}
	}

	return &entity.Order{
		OrderID: m.OrderID,
		UserID:  m.UserID,
		Items:   items,
		Status:  m.Status,
		Email:   m.Email,
		Address: m.Address,
	}
}

// FromDomainOrder converts domain entity to OrderModel
func FromDomainOrder(order *entity.Order) *OrderModel {
	return &OrderModel{
		OrderID: order.OrderID,
		UserID:  order.UserID,
		Items:   order.Items,
		Status:  order.Status,
		Email:   order.Email,
		Address: order.Address,
	}
}

// ContactValue returns the current value of a contact field
func (m *OrderModel) ContactValue(field string) string {
	switch field {
	case entity.FieldEmail:
		return m.Email
	case entity.FieldAddress:
		return m.Address
	default:
		return ""
	}
}
