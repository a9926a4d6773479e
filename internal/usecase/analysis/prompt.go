package analysis

import (
	"fmt"
	"strings"

	"vantage-backend/internal/usecase/queries"
)

const extractionSystemPrompt = "Eres un asistente experto en extraer datos estructurados de cotizaciones comerciales. Respondes únicamente con JSON válido, sin texto adicional."

// extractionPrompt asks the model to pull structured fields out of one
// document's text. Truncation keeps the prompt inside the context window.
func extractionPrompt(documentText string) string {
	const maxChars = 8000
	if len(documentText) > maxChars {
		documentText = documentText[:maxChars]
	}
	return fmt.Sprintf(`Analiza el siguiente texto de una cotización y extrae los datos solicitados.

Texto del documento:
---
%s
---

Responde SOLO con un objeto JSON con esta estructura exacta (usa null para los datos que no encuentres):
{
  "proveedor": "nombre del proveedor",
  "precio_total": 12345.67,
  "moneda": "USD",
  "certificaciones": 2,
  "resumen": "resumen breve de la oferta en una o dos frases",
  "fecha": "fecha del documento si aparece",
  "tiempo_entrega": "plazo de entrega tal como aparece, ej. '5-7 días hábiles'"
}`, documentText)
}

const comparativeSystemPrompt = "Eres un analista de compras B2B. Comparas cotizaciones de proveedores y produces recomendaciones accionables. Respondes únicamente con JSON válido, sin texto adicional."

// comparativePrompt renders the stored responses into the single request the
// model answers with the full report.
func comparativePrompt(itemName string, quantity *int32, responses []*queries.ResponseView, stats DetailedStats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Solicitud de cotización para: %s\n", itemName)
	if quantity != nil {
		fmt.Fprintf(&b, "Cantidad solicitada: %d\n", *quantity)
	}
	fmt.Fprintf(&b, "\nRespuestas recibidas (%d):\n", len(responses))

	for i, r := range responses {
		fmt.Fprintf(&b, "\n--- Respuesta %d ---\n", i+1)
		fmt.Fprintf(&b, "Proveedor: %s\n", r.ProviderName)
		if r.TotalPrice != nil {
			fmt.Fprintf(&b, "Precio total: %.2f", *r.TotalPrice)
			if r.Currency != nil {
				fmt.Fprintf(&b, " %s", *r.Currency)
			}
			b.WriteString("\n")
		} else {
			b.WriteString("Precio total: no informado\n")
		}
		if r.CertificationsCount != nil {
			fmt.Fprintf(&b, "Certificaciones: %d\n", *r.CertificationsCount)
		}
		if r.ExtractedData != nil {
			if r.ExtractedData.TiempoEntrega != nil {
				fmt.Fprintf(&b, "Tiempo de entrega: %s\n", *r.ExtractedData.TiempoEntrega)
			}
			if r.ExtractedData.Resumen != nil {
				fmt.Fprintf(&b, "Resumen del documento: %s\n", *r.ExtractedData.Resumen)
			}
		}
	}

	fmt.Fprintf(&b, `
Estadísticas calculadas (úsalas como referencia, no las recalcules):
- Precio mínimo: %.2f
- Precio máximo: %.2f
- Precio promedio: %.2f
- Respuestas con precio: %d de %d

Genera un informe comparativo. Responde SOLO con un objeto JSON con esta estructura exacta:
{
  "resumen_ejecutivo": "síntesis de 2-4 frases",
  "analisis_comparativo": [
    {
      "proveedor": "nombre",
      "analisis_ia": "evaluación de la oferta",
      "sugerencia_ia": "recomendación concreta",
      "puntos_fuertes": ["..."],
      "puntos_debiles": ["..."]
    }
  ],
  "mejores_opciones": {
    "mejor_precio": {"proveedor": "nombre", "valor": "$1,000"},
    "entrega_mas_rapida": {"proveedor": "nombre", "valor": "5 días"},
    "mas_certificaciones": {"proveedor": "nombre", "valor": "3 certificaciones"}
  },
  "centro_de_riesgos": {
    "riesgo_plazos": "evaluación",
    "alineacion_tecnica": "evaluación",
    "certificaciones_verificadas": "evaluación"
  },
  "acciones_recomendadas": {
    "contacto_prioritario": "proveedor a contactar primero",
    "preguntas_clave": ["..."],
    "criterios_decision": ["..."],
    "plazo_sugerido": "plazo recomendado para decidir"
  }
}`,
		stats.PrecioMinimo, stats.PrecioMaximo, stats.PrecioPromedio,
		stats.RespuestasConPrecio, stats.TotalRespuestas,
	)

	return b.String()
}
