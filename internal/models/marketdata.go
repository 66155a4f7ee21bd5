package models

const EntryTypeOffer = "OFFER"

type IceDataRequest struct {
	Cusips []string `json:"cusips"`
}

// IceEntry is one quote row; its shape varies per entry type so it stays untyped
type IceEntry map[string]any

// EntryType returns the entryType field, or an empty string when absent
func (e IceEntry) EntryType() string {
	if s, ok := e["entryType"].(string); ok {
		return s
	}
	return ""
}

type CusipIceMapping struct {
	Cusip   string     `json:"cusip,omitempty"`
	IceData []IceEntry `json:"iceData"`
}

type IceDataResponse struct {
	CusipIceMappings []CusipIceMapping `json:"cusipIceMappings"`
}
