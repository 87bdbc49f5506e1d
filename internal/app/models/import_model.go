package models

// ImportRowError describes a single failed cell during CSV import.
type ImportRowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ImportedRow struct {
	Row           int    `json:"row"`
	TransactionID string `json:"transaction_id"`
	VehiclePlate  string `json:"vehicle_plate"`
	PurchasedAt   string `json:"purchased_at"`
	Liters        string `json:"liters"`
	TotalCost     string `json:"total_cost"`
}

type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportSummary struct {
	TotalRows int `json:"total_rows"`
	Imported  int `json:"imported"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
}

// ImportResult is the per-row report of a CSV import run. Any row
// error refuses the whole import: Imported stays zero and Errors
// lists every offending cell.
type ImportResult struct {
	Success  bool             `json:"success"`
	Summary  ImportSummary    `json:"summary"`
	Imported []ImportedRow    `json:"imported"`
	Skipped  []SkippedRow     `json:"skipped"`
	Errors   []ImportRowError `json:"errors"`
}
