package entity

// ContactFields maps a subset of {email, address} to new values. Applying it
// is a plain field overwrite, so applying it twice equals applying it once.
type ContactFields map[string]string

// FilterContactFields keeps only allowed keys holding non-empty string values.
// Any other key or value type is ignored rather than rejected.
func FilterContactFields(raw map[string]any) ContactFields {
	contact := ContactFields{}
	for _, key := range []string{FieldEmail, FieldAddress} {
		value, ok := raw[key].(string)
		if !ok || value == "" {
			continue
		}
		contact[key] = value
	}

	return contact
}

// IsEmpty reports whether there is nothing to propagate.
func (c ContactFields) IsEmpty() bool {
	return len(c) == 0
}

// AsAny converts the fields into a generic map for wire payloads.
func (c ContactFields) AsAny() map[string]any {
	out := make(map[string]any, len(c))
	for k, v := range c {
		out[k] = v
	}

	return out
}
