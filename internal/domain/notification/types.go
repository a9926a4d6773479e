package notification

import "errors"

var ErrInvalidType = errors.New("invalid notification type")

type Type string

const (
	TypeQuoteRequest  Type = "quote_request"
	TypeQuoteResponse Type = "quote_response"
	TypeSystem        Type = "system"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeQuoteRequest, TypeQuoteResponse, TypeSystem:
		return true
	default:
		return false
	}
}
