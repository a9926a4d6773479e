package quote

import "errors"

var (
	ErrInvalidStatus     = errors.New("invalid quote status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidItemType   = errors.New("invalid item type")
)

// Status tracks a quote request through its lifecycle. Transitions go
// through Transition; nothing leaves StatusCancelled.
type Status string

const (
	StatusPending   Status = "pending"
	StatusResponded Status = "responded"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusResponded, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled
}

func (s Status) canTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusResponded || next == StatusCancelled
	case StatusResponded:
		return next == StatusCancelled
	default:
		return false
	}
}

// Transition is the single choke point for status changes.
func (s Status) Transition(next Status) (Status, error) {
	if !next.IsValid() {
		return s, ErrInvalidStatus
	}
	if !s.canTransitionTo(next) {
		return s, ErrInvalidTransition
	}
	return next, nil
}

type ItemType string

const (
	ItemTypeProduct ItemType = "product"
	ItemTypeService ItemType = "service"
)

func (t ItemType) String() string {
	return string(t)
}

func (t ItemType) IsValid() bool {
	return t == ItemTypeProduct || t == ItemTypeService
}

func NewItemType(s string) (ItemType, error) {
	t := ItemType(s)
	if !t.IsValid() {
		return "", ErrInvalidItemType
	}
	return t, nil
}
