package types

type ValidateRequest struct {
	SlotNo        string `json:"slot_no"`
	Name          string `json:"name"`
	ParkedTill    string `json:"parked_till"`
	VehicleNumber string `json:"vehicle_number"`
}

type ValidationResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
