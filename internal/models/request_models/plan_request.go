package request_models

// PlanTripRequest is the boundary input for trip planning.
// City names may carry a country hint, e.g. "New Delhi, IN" or "Bangkok, TH".
type PlanTripRequest struct {
	OriginCity          string   `json:"originCity" binding:"required"`
	DestinationCity     string   `json:"destinationCity" binding:"required"`
	NumDays             int      `json:"numDays" binding:"required,min=1,max=30"`
	NumPeople           int      `json:"numPeople" binding:"required,min=1,max=20"`
	BudgetCurrency      string   `json:"budgetCurrency"`
	BudgetAmount        *float64 `json:"budgetAmount" binding:"omitempty,min=0"`
	IncludeFoodRecos    bool     `json:"includeFoodRecos"`
	IncludeCommuteTimes bool     `json:"includeCommuteTimes"`
}
