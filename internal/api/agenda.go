package api

import (
	"context"
	"net/url"
	"time"
)

const dateParam = "2006-01-02"

// AgendaEvents fetches the combined agenda feed for the inclusive date range.
// The records come back heterogeneous and unvalidated; the agenda package
// normalizes them.
func (c *Client) AgendaEvents(ctx context.Context, start, end time.Time) ([]AgendaEvent, error) {
	q := url.Values{}
	q.Set("data_inicio", start.Format(dateParam))
	q.Set("data_fim", end.Format(dateParam))

	var out AgendaResponse
	if err := c.get(ctx, "/agenda/geral", q, &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}
