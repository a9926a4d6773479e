// Package analysis builds the comparative quote report: deterministic
// statistics over the stored responses, layered with LLM commentary when the
// model is reachable and coherent, a computed fallback when it is not.
package analysis

import "vantage-backend/internal/usecase/queries"

// FullAnalysis is the report shape the frontend consumes. Field names are the
// established client contract and stay in Spanish.
type FullAnalysis struct {
	ResumenEjecutivo    string              `json:"resumen_ejecutivo"`
	AnalisisComparativo []ProviderAnalysis  `json:"analisis_comparativo"`
	MejoresOpciones     BestOptions         `json:"mejores_opciones"`
	CentroDeRiesgos     RiskCenter          `json:"centro_de_riesgos"`
	AnalisisDetallado   DetailedStats       `json:"analisis_detallado"`
	AccionesRecomendadas RecommendedActions `json:"acciones_recomendadas"`
}

type ProviderAnalysis struct {
	Proveedor     string   `json:"proveedor"`
	AnalisisIA    string   `json:"analisis_ia"`
	SugerenciaIA  string   `json:"sugerencia_ia"`
	PuntosFuertes []string `json:"puntos_fuertes"`
	PuntosDebiles []string `json:"puntos_debiles"`
}

type BestOption struct {
	Proveedor string `json:"proveedor"`
	Valor     string `json:"valor"`
}

type BestOptions struct {
	MejorPrecio         BestOption `json:"mejor_precio"`
	EntregaMasRapida    BestOption `json:"entrega_mas_rapida"`
	MasCertificaciones  BestOption `json:"mas_certificaciones"`
}

type RiskCenter struct {
	RiesgoPlazos              string `json:"riesgo_plazos"`
	AlineacionTecnica         string `json:"alineacion_tecnica"`
	CertificacionesVerificadas string `json:"certificaciones_verificadas"`
}

type DetailedStats struct {
	PrecioMinimo             float64 `json:"precio_minimo"`
	PrecioMaximo             float64 `json:"precio_maximo"`
	PrecioPromedio           float64 `json:"precio_promedio"`
	PrecioTotalSumado        float64 `json:"precio_total_sumado"`
	TotalRespuestas          int     `json:"total_respuestas"`
	RespuestasConPrecio      int     `json:"respuestas_con_precio"`
	MejorTiempoEntregaDias   *int    `json:"mejor_tiempo_entrega_dias"`
	MaxCertificaciones       int     `json:"max_certificaciones"`
}

type RecommendedActions struct {
	ContactoPrioritario string   `json:"contacto_prioritario"`
	PreguntasClave      []string `json:"preguntas_clave"`
	CriteriosDecision   []string `json:"criterios_decision"`
	PlazoSugerido       string   `json:"plazo_sugerido"`
}

const noDataValue = "No disponible"

// emptyReport is returned when a request has no responses yet; the shape is
// stable so the frontend renders the empty state without special-casing.
func emptyReport() *FullAnalysis {
	return &FullAnalysis{
		ResumenEjecutivo:    "Aún no hay respuestas de proveedores para esta solicitud.",
		AnalisisComparativo: []ProviderAnalysis{},
		MejoresOpciones: BestOptions{
			MejorPrecio:        BestOption{Proveedor: noDataValue, Valor: noDataValue},
			EntregaMasRapida:   BestOption{Proveedor: noDataValue, Valor: noDataValue},
			MasCertificaciones: BestOption{Proveedor: noDataValue, Valor: noDataValue},
		},
		CentroDeRiesgos: RiskCenter{
			RiesgoPlazos:               noDataValue,
			AlineacionTecnica:          noDataValue,
			CertificacionesVerificadas: noDataValue,
		},
		AnalisisDetallado: DetailedStats{},
		AccionesRecomendadas: RecommendedActions{
			ContactoPrioritario: noDataValue,
			PreguntasClave:      []string{},
			CriteriosDecision:   []string{},
			PlazoSugerido:       noDataValue,
		},
	}
}

// fallbackReport assembles a report purely from local statistics, used when
// the model is unavailable or returns something unparseable.
func fallbackReport(responses []*queries.ResponseView, stats DetailedStats) *FullAnalysis {
	report := emptyReport()
	report.ResumenEjecutivo = "Análisis generado a partir de los datos disponibles. El análisis asistido por IA no está disponible en este momento."
	report.AnalisisDetallado = stats
	report.MejoresOpciones = computeBestOptions(responses)

	comparativo := make([]ProviderAnalysis, 0, len(responses))
	for _, r := range responses {
		comparativo = append(comparativo, ProviderAnalysis{
			Proveedor:     r.ProviderName,
			AnalisisIA:    "Análisis automático no disponible para esta respuesta.",
			SugerenciaIA:  "Revise el documento de cotización adjunto.",
			PuntosFuertes: []string{},
			PuntosDebiles: []string{},
		})
	}
	report.AnalisisComparativo = comparativo

	if report.MejoresOpciones.MejorPrecio.Proveedor != noDataValue {
		report.AccionesRecomendadas.ContactoPrioritario = report.MejoresOpciones.MejorPrecio.Proveedor
	}
	return report
}

// sanitizeReport fills any section the model left empty so the contract shape
// always holds, and overrides the numeric section with locally computed
// statistics, which are authoritative over anything the model invented.
func sanitizeReport(report *FullAnalysis, responses []*queries.ResponseView, stats DetailedStats) *FullAnalysis {
	base := emptyReport()

	if report.ResumenEjecutivo == "" {
		report.ResumenEjecutivo = base.ResumenEjecutivo
	}
	if report.AnalisisComparativo == nil {
		report.AnalisisComparativo = []ProviderAnalysis{}
	}
	for i := range report.AnalisisComparativo {
		if report.AnalisisComparativo[i].PuntosFuertes == nil {
			report.AnalisisComparativo[i].PuntosFuertes = []string{}
		}
		if report.AnalisisComparativo[i].PuntosDebiles == nil {
			report.AnalisisComparativo[i].PuntosDebiles = []string{}
		}
	}

	computed := computeBestOptions(responses)
	if report.MejoresOpciones.MejorPrecio.Proveedor == "" {
		report.MejoresOpciones.MejorPrecio = computed.MejorPrecio
	}
	if report.MejoresOpciones.EntregaMasRapida.Proveedor == "" {
		report.MejoresOpciones.EntregaMasRapida = computed.EntregaMasRapida
	}
	if report.MejoresOpciones.MasCertificaciones.Proveedor == "" {
		report.MejoresOpciones.MasCertificaciones = computed.MasCertificaciones
	}

	if report.CentroDeRiesgos.RiesgoPlazos == "" {
		report.CentroDeRiesgos.RiesgoPlazos = noDataValue
	}
	if report.CentroDeRiesgos.AlineacionTecnica == "" {
		report.CentroDeRiesgos.AlineacionTecnica = noDataValue
	}
	if report.CentroDeRiesgos.CertificacionesVerificadas == "" {
		report.CentroDeRiesgos.CertificacionesVerificadas = noDataValue
	}

	report.AnalisisDetallado = stats

	if report.AccionesRecomendadas.ContactoPrioritario == "" {
		report.AccionesRecomendadas.ContactoPrioritario = computed.MejorPrecio.Proveedor
	}
	if report.AccionesRecomendadas.PreguntasClave == nil {
		report.AccionesRecomendadas.PreguntasClave = []string{}
	}
	if report.AccionesRecomendadas.CriteriosDecision == nil {
		report.AccionesRecomendadas.CriteriosDecision = []string{}
	}
	if report.AccionesRecomendadas.PlazoSugerido == "" {
		report.AccionesRecomendadas.PlazoSugerido = noDataValue
	}

	return report
}
