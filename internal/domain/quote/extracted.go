package quote

import (
	"encoding/json"
	"strconv"

	"vantage-backend/internal/pkg/numeric"
)

// ExtractedData is the structured result of analyzing one response
// document. The LLM may populate any subset; unknown fields coming back
// from the model are discarded at the parse boundary, not carried around
// as loose maps. Keys match what the analysis prompts request.
type ExtractedData struct {
	Proveedor      *string  `json:"proveedor,omitempty"`
	PrecioTotal    *float64 `json:"precio_total,omitempty"`
	Moneda         *string  `json:"moneda,omitempty"`
	Certificaciones *int32  `json:"certificaciones,omitempty"`
	Resumen        *string  `json:"resumen,omitempty"`
	Fecha          *string  `json:"fecha,omitempty"`
	TiempoEntrega  *string  `json:"tiempo_entrega,omitempty"`
}

// UnmarshalJSON tolerates the numeric fields arriving as strings
// ("1500 USD", "2"), which models produce despite instructions. Garbage
// coerces to nil rather than failing the whole object.
func (d *ExtractedData) UnmarshalJSON(raw []byte) error {
	var aux struct {
		Proveedor       *string         `json:"proveedor"`
		PrecioTotal     json.RawMessage `json:"precio_total"`
		Moneda          *string         `json:"moneda"`
		Certificaciones json.RawMessage `json:"certificaciones"`
		Resumen         *string         `json:"resumen"`
		Fecha           *string         `json:"fecha"`
		TiempoEntrega   *string         `json:"tiempo_entrega"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return err
	}

	d.Proveedor = aux.Proveedor
	d.Moneda = aux.Moneda
	d.Resumen = aux.Resumen
	d.Fecha = aux.Fecha
	d.TiempoEntrega = aux.TiempoEntrega
	d.PrecioTotal = coercePrice(aux.PrecioTotal)
	d.Certificaciones = coerceCount(aux.Certificaciones)
	return nil
}

func coercePrice(raw json.RawMessage) *float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return numeric.ParsePrice(s)
	}
	return nil
}

func coerceCount(raw json.RawMessage) *int32 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil && f >= 0 {
		v := int32(f)
		return &v
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseInt(s, 10, 32); err == nil && v >= 0 {
			count := int32(v)
			return &count
		}
	}
	return nil
}

// DecodeExtractedData parses a stored jsonb blob; nil in, nil out.
func DecodeExtractedData(raw []byte) (*ExtractedData, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var data ExtractedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
