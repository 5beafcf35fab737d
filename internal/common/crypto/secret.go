package crypto

import "encoding/json"

// Secret wraps a sensitive string (password, password hash, API token) so it
// cannot leak through default formatting, logging, or JSON serialization.
// The wrapped value is only reachable through Expose, which keeps every
// point of use greppable.
type Secret struct {
	value string
}

const redacted = "[REDACTED]"

func NewSecret(value string) Secret {
	return Secret{value: value}
}

// Expose returns the wrapped value. Call sites should hand the result
// straight to the consumer (hash verification, outbound auth header) and
// never store it.
func (s Secret) Expose() string {
	return s.value
}

func (s Secret) IsEmpty() bool {
	return s.value == ""
}

func (s Secret) String() string {
	return redacted
}

func (s Secret) GoString() string {
	return "crypto.Secret(" + redacted + ")"
}

func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

func (s *Secret) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	s.value = v
	return nil
}
