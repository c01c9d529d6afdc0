package dto

import "github.com/bin-buddy/Bin-Buddy-Repository/internal/domain"

// Wire shape of a client record, shared by the admin and worker apps.
type ClientResponse struct {
	ID           int     `json:"id"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Zone         string  `json:"zone"`
	TrashBins    int     `json:"trash_bins"`
	RecycleBins  int     `json:"recycle_bins"`
	Actions      int     `json:"actions"`
	MonthlyCost  int     `json:"monthly_cost"`
	FirstService bool    `json:"firstService"`
	Instructions string  `json:"instructions"`
	PhotoURL     string  `json:"photoUrl"`
}

func NewClientResponse(c domain.Client) ClientResponse {
	return ClientResponse{
		ID:           c.ID,
		Lat:          c.Location.Lat,
		Lng:          c.Location.Lng,
		Zone:         c.Zone,
		TrashBins:    c.TrashBins,
		RecycleBins:  c.RecycleBins,
		Actions:      c.Actions,
		MonthlyCost:  c.MonthlyCost,
		FirstService: c.FirstService,
		Instructions: c.Instructions,
		PhotoURL:     c.PhotoURL,
	}
}

func NewClientListResponse(clients []domain.Client) []ClientResponse {
	out := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, NewClientResponse(c))
	}
	return out
}

// Partial update body. Absent or null fields are left unchanged.
type UpdateClientRequest struct {
	Zone         *string `json:"zone"`
	TrashBins    *int    `json:"trash_bins"`
	RecycleBins  *int    `json:"recycle_bins"`
	Instructions *string `json:"instructions"`
	PhotoURL     *string `json:"photoUrl"`
}

func (r UpdateClientRequest) Patch() domain.ClientPatch {
	return domain.ClientPatch{
		Zone:         r.Zone,
		TrashBins:    r.TrashBins,
		RecycleBins:  r.RecycleBins,
		Instructions: r.Instructions,
		PhotoURL:     r.PhotoURL,
	}
}

type PhotoResponse struct {
	Status   string `json:"status"`
	PhotoURL string `json:"photoUrl"`
}
