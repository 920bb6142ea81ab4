package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterContactFields(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want ContactFields
	}{
		{
			name: "keeps email and address",
			raw:  map[string]any{"email": "b@x.com", "address": "12 Main Street"},
			want: ContactFields{"email": "b@x.com", "address": "12 Main Street"},
		},
		{
			name: "ignores other keys",
			raw:  map[string]any{"email": "b@x.com", "name": "Bob", "status": "paid"},
			want: ContactFields{"email": "b@x.com"},
		},
		{
			name: "drops empty and non-string values",
			raw:  map[string]any{"email": "", "address": 42},
			want: ContactFields{},
		},
		{
			name: "nil map",
			raw:  nil,
			want: ContactFields{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterContactFields(tt.raw))
		})
	}
}

func TestUserPatch_ContactFields_OnlyAddress(t *testing.T) {
	address := "99 Harbour Road"
	patch := UserPatch{Address: &address}

	contact := patch.ContactFields()
	assert.Equal(t, ContactFields{"address": address}, contact)
	_, hasEmail := contact[FieldEmail]
	assert.False(t, hasEmail)
}

func TestOrder_ApplyContact_IsIdempotent(t *testing.T) {
	order := Order{OrderID: "o1", UserID: "u1", Email: "a@x.com", Address: "1 Old Lane"}
	change := ContactFields{"email": "b@x.com"}

	order.ApplyContact(change)
	once := order
	order.ApplyContact(change)

	assert.Equal(t, once, order)
	assert.Equal(t, "b@x.com", order.Email)
	assert.Equal(t, "1 Old Lane", order.Address)
}
