package views

// PredictionRequest carries the three loan features. Field names are the
// wire contract; pointers keep binding's required check from rejecting
// legitimate zero values.
type PredictionRequest struct {
	Amount           *float64 `json:"Amount" binding:"required,gte=0"`
	TransactionCount *int64   `json:"TransactionCount" binding:"required,gte=0"`
	Value            *float64 `json:"Value" binding:"required,gte=0"`
}

// Feature returns the request value for a fitted feature name. Features the
// scaler knows but the request does not carry score as zero.
func (r PredictionRequest) Feature(name string) (float64, bool) {
	switch name {
	case "Amount":
		if r.Amount == nil {
			return 0, false
		}
		return *r.Amount, true
	case "TransactionCount":
		if r.TransactionCount == nil {
			return 0, false
		}
		return float64(*r.TransactionCount), true
	case "Value":
		if r.Value == nil {
			return 0, false
		}
		return *r.Value, true
	default:
		return 0, false
	}
}

type PredictionResponse struct {
	DefaultPrediction  int     `json:"default_prediction"`
	DefaultProbability float64 `json:"default_probability"`
}

// HealthResponse is returned by GET /health regardless of artifact state.
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// RootStatusResponse is returned by GET / when no static page is deployed.
type RootStatusResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}
