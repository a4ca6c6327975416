package types

type Slot struct {
	LotNo   string `json:"lot_no"`
	IsTaken bool   `json:"isTaken"`
}
