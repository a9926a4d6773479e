package request

import (
	"strings"

	"vantage-backend/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateQuoteRequest struct {
	ProviderID uuid.UUID  `json:"provider_id" binding:"required"`
	ItemID     uuid.UUID  `json:"item_id" binding:"required"`
	ItemType   string     `json:"item_type" binding:"required"`
	Quantity   *int32     `json:"quantity,omitempty"`
	Message    string     `json:"message,omitempty"`
	BranchID   *uuid.UUID `json:"branch_id,omitempty"`
}

func (r CreateQuoteRequest) ToParams() commands.CreateRequestParams {
	return commands.CreateRequestParams{
		ProviderID: r.ProviderID,
		ItemID:     r.ItemID,
		ItemType:   strings.TrimSpace(strings.ToLower(r.ItemType)),
		Quantity:   r.Quantity,
		Message:    r.Message,
		BranchID:   r.BranchID,
	}
}
