package entity

// Order represents an order with denormalized copies of its owner's contact fields.
type Order struct {
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"` // Reference to a user by convention only.
	Items   []any  `json:"items"`
	Status  string `json:"status"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// OrderPatch carries the subset of order attributes supplied to an update.
type OrderPatch struct {
	Items   *[]any
	Status  *string
	Email   *string
	Address *string
}

// IsEmpty reports whether no field was supplied.
func (p OrderPatch) IsEmpty() bool {
	return p.Items == nil && p.Status == nil && p.Email == nil && p.Address == nil
}

// Fields returns the supplied fields keyed by their document names.
func (p OrderPatch) Fields() map[string]any {
	fields := make(map[string]any, 4)
	if p.Items != nil {
		fields[FieldItems] = *p.Items
	}
	if p.Status != nil {
		fields[FieldStatus] = *p.Status
	}
	if p.Email != nil {
		fields[FieldEmail] = *p.Email
	}
	if p.Address != nil {
		fields[FieldAddress] = *p.Address
	}

	return fields
}

// ApplyContact overwrites the denormalized contact fields present in c.
func (o *Order) ApplyContact(c ContactFields) {
	if v, ok := c[FieldEmail]; ok {
		o.Email = v
	}
	if v, ok := c[FieldAddress]; ok {
		o.Address = v
	}
}
