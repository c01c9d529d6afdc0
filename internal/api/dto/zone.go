package dto

type ZoneResponse struct {
	Worker string `json:"worker"`
}

// Zones are keyed by name: {"Zone 1": {"worker": "Worker 1"}}.
type ListZonesResponse map[string]ZoneResponse

func NewListZonesResponse(zones map[string]string) ListZonesResponse {
	out := make(ListZonesResponse, len(zones))
	for name, worker := range zones {
		out[name] = ZoneResponse{Worker: worker}
	}
	return out
}

// Both keys are required; pointers tell a missing key from an empty string.
type AssignRequest struct {
	Zone   *string `json:"zone"`
	Worker *string `json:"worker"`
}

type AssignResponse struct {
	Status string `json:"status"`
	Zone   string `json:"zone"`
	Worker string `json:"worker"`
}
