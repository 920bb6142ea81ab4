// Package entity contains the core business objects of the project.
package entity

// Contact field names shared by users, orders and change events.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldAddress = "address"
	FieldItems   = "items"
	FieldStatus  = "status"
)

// User represents a user record owned by one version of the user service.
type User struct {
	UserID  string `json:"user_id"` // Externally assigned, immutable key.
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// UserPatch carries the subset of user attributes supplied to an update.
// A nil field was not supplied and must not be touched.
type UserPatch struct {
	Name    *string
	Email   *string
	Address *string
}

// IsEmpty reports whether no field was supplied.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Address == nil
}

// Fields returns the supplied fields keyed by their document names.
func (p UserPatch) Fields() map[string]string {
	fields := make(map[string]string, 3)
	if p.Name != nil {
		fields[FieldName] = *p.Name
	}
	if p.Email != nil {
		fields[FieldEmail] = *p.Email
	}
	if p.Address != nil {
		fields[FieldAddress] = *p.Address
	}

	return fields
}

// ContactFields extracts the email/address subset that must be propagated to orders.
func (p UserPatch) ContactFields() ContactFields {
	contact := ContactFields{}
	if p.Email != nil {
		contact[FieldEmail] = *p.Email
	}
	if p.Address != nil {
		contact[FieldAddress] = *p.Address
	}

	return contact
}
