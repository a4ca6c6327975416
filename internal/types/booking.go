package types

type Booking struct {
	SlotNo        string `json:"slot_no"`
	Name          string `json:"name,omitempty"`
	VehicleNumber string `json:"vehicle_number"`
	ParkedAt      string `json:"parked_at,omitempty"`
	ParkedTill    string `json:"parked_till"`
}

type BookRequest struct {
	SlotNo        string `json:"slot_no"`
	Name          string `json:"name"`
	VehicleNumber string `json:"vehicle_number"`
	ParkedAt      string `json:"parked_at"`
	ParkedTill    string `json:"parked_till"`
}

type BookResponse struct {
	SlotNo     string `json:"slot_no"`
	ParkedTill string `json:"parked_till"`
}
