package analysis

import (
	"strconv"

	"vantage-backend/internal/pkg/numeric"
	"vantage-backend/internal/usecase/queries"
)

// computeStats derives the numeric section of the report from the stored
// responses. Only strictly positive prices count toward the price figures.
func computeStats(responses []*queries.ResponseView) DetailedStats {
	stats := DetailedStats{TotalRespuestas: len(responses)}

	var (
		prices       []float64
		bestDelivery *int
	)
	for _, r := range responses {
		if r.TotalPrice != nil && *r.TotalPrice > 0 {
			prices = append(prices, *r.TotalPrice)
		}
		if r.CertificationsCount != nil && int(*r.CertificationsCount) > stats.MaxCertificaciones {
			stats.MaxCertificaciones = int(*r.CertificationsCount)
		}
		if days, ok := deliveryDays(r); ok {
			if bestDelivery == nil || days < *bestDelivery {
				d := days
				bestDelivery = &d
			}
		}
	}

	stats.RespuestasConPrecio = len(prices)
	stats.MejorTiempoEntregaDias = bestDelivery
	if len(prices) == 0 {
		return stats
	}

	min, max, sum := prices[0], prices[0], 0.0
	for _, p := range prices {
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
		sum += p
	}
	stats.PrecioMinimo = min
	stats.PrecioMaximo = max
	stats.PrecioPromedio = sum / float64(len(prices))
	stats.PrecioTotalSumado = sum
	return stats
}

// deliveryDays reads the delivery estimate out of a response's extracted
// data; "5-7 días hábiles" counts as 5.
func deliveryDays(r *queries.ResponseView) (int, bool) {
	if r.ExtractedData == nil || r.ExtractedData.TiempoEntrega == nil {
		return 0, false
	}
	return numeric.LeadingInt(*r.ExtractedData.TiempoEntrega)
}

// computeBestOptions picks the winning provider per axis from local data.
func computeBestOptions(responses []*queries.ResponseView) BestOptions {
	options := BestOptions{
		MejorPrecio:        BestOption{Proveedor: noDataValue, Valor: noDataValue},
		EntregaMasRapida:   BestOption{Proveedor: noDataValue, Valor: noDataValue},
		MasCertificaciones: BestOption{Proveedor: noDataValue, Valor: noDataValue},
	}

	var (
		bestPrice    *float64
		bestDelivery *int
		bestCerts    *int32
	)
	for _, r := range responses {
		if r.TotalPrice != nil && *r.TotalPrice > 0 && (bestPrice == nil || *r.TotalPrice < *bestPrice) {
			bestPrice = r.TotalPrice
			options.MejorPrecio = BestOption{
				Proveedor: r.ProviderName,
				Valor:     numeric.FormatMoney(*r.TotalPrice),
			}
		}
		if days, ok := deliveryDays(r); ok && (bestDelivery == nil || days < *bestDelivery) {
			d := days
			bestDelivery = &d
			options.EntregaMasRapida = BestOption{
				Proveedor: r.ProviderName,
				Valor:     *r.ExtractedData.TiempoEntrega,
			}
		}
		if r.CertificationsCount != nil && *r.CertificationsCount > 0 && (bestCerts == nil || *r.CertificationsCount > *bestCerts) {
			bestCerts = r.CertificationsCount
			options.MasCertificaciones = BestOption{
				Proveedor: r.ProviderName,
				Valor:     certLabel(*r.CertificationsCount),
			}
		}
	}
	return options
}

func certLabel(count int32) string {
	if count == 1 {
		return "1 certificación"
	}
	return strconv.Itoa(int(count)) + " certificaciones"
}
