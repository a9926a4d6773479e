package request

import (
	"mime/multipart"

	"vantage-backend/internal/pkg/numeric"
	"vantage-backend/internal/usecase/commands"
)

// SubmitQuoteResponseForm is the multipart form providers post a response
// with. The numeric fields arrive as form strings and coerce leniently:
// garbage becomes absent, not a 400.
type SubmitQuoteResponseForm struct {
	TotalPrice          string                `form:"total_price"`
	Currency            string                `form:"currency"`
	CertificationsCount string                `form:"certifications_count"`
	File                *multipart.FileHeader `form:"file" binding:"required"`
}

func (f SubmitQuoteResponseForm) ToParams(file commands.UploadedFile) commands.SubmitResponseParams {
	var currency *string
	if f.Currency != "" {
		c := f.Currency
		currency = &c
	}
	return commands.SubmitResponseParams{
		TotalPrice:          numeric.ParsePrice(f.TotalPrice),
		Currency:            currency,
		CertificationsCount: numeric.ParseCount(f.CertificationsCount),
		File:                file,
	}
}
