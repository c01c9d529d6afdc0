package domain

const (
	BaseMonthlyCost = 60 // one trash bin + one recycle bin
	ExtraBinCost    = 20 // each bin beyond the first of its kind
	ActionsPerBin   = 2  // roll out + roll back
)

// Represents one service account.
// Actions and MonthlyCost are derived from the bin counts when the client is
// created. Later bin changes only refresh them when the registry is configured
// to recompute billing.
type Client struct {
	ID           int
	Location     Coordinates
	Zone         string
	TrashBins    int
	RecycleBins  int
	Actions      int
	MonthlyCost  int
	FirstService bool
	Instructions string
	PhotoURL     string
}

func NewClient(id int, loc Coordinates, zone string, trashBins, recycleBins int) *Client {
	c := &Client{
		ID:           id,
		Location:     loc,
		Zone:         zone,
		TrashBins:    trashBins,
		RecycleBins:  recycleBins,
		FirstService: true,
	}
	c.RecomputeBilling()
	return c
}

// RecomputeBilling derives Actions and MonthlyCost from the current bin counts.
func (c *Client) RecomputeBilling() {
	c.Actions = ActionsPerBin * (c.TrashBins + c.RecycleBins)
	c.MonthlyCost = BaseMonthlyCost + ExtraBinCost*(c.TrashBins-1) + ExtraBinCost*(c.RecycleBins-1)
}

// BillingStale reports whether Actions or MonthlyCost no longer match the bin counts.
func (c *Client) BillingStale() bool {
	fresh := *c
	fresh.RecomputeBilling()
	return fresh.Actions != c.Actions || fresh.MonthlyCost != c.MonthlyCost
}

// The enumerated set of mutable client fields. Nil fields are left untouched.
type ClientPatch struct {
	Zone         *string
	TrashBins    *int
	RecycleBins  *int
	Instructions *string
	PhotoURL     *string
}

// ChangesBins reports whether the patch carries a bin count.
func (p ClientPatch) ChangesBins() bool {
	return p.TrashBins != nil || p.RecycleBins != nil
}

// ValidBinCount reports whether n is an accepted bin count.
func ValidBinCount(n int) bool {
	return n == 1 || n == 2
}

// Apply merges the patch into the client field by field and ends the
// first-service state. The flag flips on the first call no matter which
// fields are present, and stays false afterwards.
func (c *Client) Apply(p ClientPatch) {
	if p.Zone != nil {
		c.Zone = *p.Zone
	}
	if p.TrashBins != nil {
		c.TrashBins = *p.TrashBins
	}
	if p.RecycleBins != nil {
		c.RecycleBins = *p.RecycleBins
	}
	if p.Instructions != nil {
		c.Instructions = *p.Instructions
	}
	if p.PhotoURL != nil {
		c.PhotoURL = *p.PhotoURL
	}

	c.FirstService = false
}
