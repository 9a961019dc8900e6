package kernel

import (
	"fmt"
	"strconv"

	"freelance/internal/pkg/errs"
)

// ID identifies a persisted entity. Identities are assigned by the database on
// insert, so a freshly constructed aggregate carries the zero ID until it is
// added to its repository.
type ID int64

// ParseID parses a decimal identifier as used in URLs and chat room names.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	id := ID(v)
	if err = id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// Validate rejects the zero and negative IDs.
func (id ID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsRequiredErrorWithCause("id", fmt.Errorf("%d is not a persisted identity", id))
	}
	return nil
}

// IsZero reports whether the entity has not been persisted yet.
func (id ID) IsZero() bool {
	return id == 0
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Int64 returns the raw value for persistence adapters.
func (id ID) Int64() int64 {
	return int64(id)
}

// IDPtr returns a pointer to a copy of id, for optional references.
func IDPtr(id ID) *ID {
	return &id
}

// SameID compares two optional references.
func SameID(a, b *ID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
