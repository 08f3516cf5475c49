package hotelapi

import (
	"context"
	"net/url"

	"github.com/stayline/guest-portal/internal/domain/reservation"
)

// HotelInfo fetches the hotel-wide configuration. A missing tax rate decodes
// as zero, which the pricing calculator treats as "no tax" rather than an
// error.
func (c *Client) HotelInfo(ctx context.Context) (reservation.HotelInfo, error) {
	var payload reservation.HotelInfo
	if err := c.get(ctx, "/api/hotel-info", nil, &payload); err != nil {
		return reservation.HotelInfo{}, err
	}
	return payload, nil
}

// Report fetches admin analytics for the given time range.
func (c *Client) Report(ctx context.Context, timeRange string) (reservation.Report, error) {
	query := url.Values{"time_range": {timeRange}}
	var payload reservation.Report
	if err := c.get(ctx, "/api/admin/reports", query, &payload); err != nil {
		return reservation.Report{}, err
	}
	return payload, nil
}

var (
	_ reservation.HotelInfoGateway = (*Client)(nil)
	_ reservation.ReportGateway    = (*Client)(nil)
)
