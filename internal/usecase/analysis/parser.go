package analysis

import (
	"encoding/json"
	"strings"

	"vantage-backend/internal/domain/quote"
	"vantage-backend/internal/pkg/errs"
)

var ErrNoJSONFound = errs.New("no JSON object found in model output")

// isolateJSON cuts the first-{ through last-} span out of model output,
// tolerating markdown fences and prose around the object.
func isolateJSON(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSONFound
	}
	return raw[start : end+1], nil
}

func parseExtraction(raw string) (*quote.ExtractedData, error) {
	body, err := isolateJSON(raw)
	if err != nil {
		return nil, err
	}
	var data quote.ExtractedData
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return nil, errs.Wrap(err, "failed to decode extraction output")
	}
	return &data, nil
}

func parseReport(raw string) (*FullAnalysis, error) {
	body, err := isolateJSON(raw)
	if err != nil {
		return nil, err
	}
	var report FullAnalysis
	if err := json.Unmarshal([]byte(body), &report); err != nil {
		return nil, errs.Wrap(err, "failed to decode report output")
	}
	return &report, nil
}
