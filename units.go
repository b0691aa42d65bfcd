package radmachine

import "context"

// Unit is a treatment or imaging unit registered in RadMachine.
type Unit struct {
	URL          string `json:"url"`
	Name         string `json:"name"`
	Number       int    `json:"number"`
	SerialNumber string `json:"serial_number"`
	Site         string `json:"site"`
	Type         string `json:"type"`
	Active       bool   `json:"active"`
}

// ListUnits iterates the units visible to the account, newest pages
// fetched on demand.
func (c *Client) ListUnits(ctx context.Context, filter Filter) *Iter[Unit] {
	return listAs[Unit](c, ctx, "units/units/", filter)
}

// FindUnit returns the single unit matching the filter. It fails with
// ErrNoResult when nothing matches and with an *AmbiguousResultError
// when the filter matches more than one unit.
func (c *Client) FindUnit(ctx context.Context, filter Filter) (*Unit, error) {
	return oneAs[Unit](c, ctx, "units/units/", filter)
}
