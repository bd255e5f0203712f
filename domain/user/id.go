package user

import (
	"fmt"

	"github.com/google/uuid"
)

// ID identifies a user. The zero value means "no id".
type ID uuid.UUID

// NewID returns a fresh random user id.
func NewID() ID {
	return ID(uuid.New())
}

// ParseID parses the canonical textual form of a user id.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID{}, fmt.Errorf("invalid user id %q: %w", s, err)
	}
	return ID(u), nil
}

// IsZero reports whether the id is unset.
func (id ID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(data []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(data); err != nil {
		return err
	}
	*id = ID(u)
	return nil
}
