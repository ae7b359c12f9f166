package agenda

import "time"

// GridConfig describes the hour grid the day and week views draw into.
// Sessions become blocks sized by their duration; instantaneous events
// (tasks, check-ins) become fixed-height pills at their timestamp's offset.
type GridConfig struct {
	// StartHour and EndHour bound the visible grid, inclusive (e.g. 7..22).
	StartHour int
	EndHour   int

	// HourHeight is the pixel height of one hour row.
	HourHeight float64

	// MinBlockHeight floors session block heights so a degenerate
	// zero-duration session still renders as a tappable block.
	MinBlockHeight float64

	// PillHeight and PillNudge control instant-event pills: pills whose
	// offsets land within PillHeight of an earlier pill are shifted down by
	// PillNudge per collision. Visual overlap past that is acceptable; it is
	// a data-density artifact, not an error.
	PillHeight float64
	PillNudge  float64
}

// DefaultGrid matches the mobile day view: 07:00-22:00 at 72px per hour.
func DefaultGrid() GridConfig {
	return GridConfig{
		StartHour:      7,
		EndHour:        22,
		HourHeight:     72,
		MinBlockHeight: 48,
		PillHeight:     28,
		PillNudge:      18,
	}
}

// Hours lists the grid's hour labels.
func (g GridConfig) Hours() []int {
	hours := make([]int, 0, g.EndHour-g.StartHour+1)
	for h := g.StartHour; h <= g.EndHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// Height is the total pixel height of the grid body.
func (g GridConfig) Height() float64 {
	return float64(len(g.Hours())) * g.HourHeight
}

// offset converts a wall-clock instant into a vertical pixel offset.
func (g GridConfig) offset(t time.Time) float64 {
	return (float64(t.Hour())-float64(g.StartHour))*g.HourHeight +
		float64(t.Minute())/60*g.HourHeight
}

// Block is one positioned element in a day column. Index addresses the block
// as a tap target.
type Block struct {
	Event  Event
	Index  int
	Top    float64
	Height float64
	Pill   bool
}

// LayoutDay positions the events falling on the given calendar day within the
// hour grid. Sessions are sized by duration with a minimum-height floor;
// overlapping sessions are drawn at their true positions (overlap is a
// data-quality signal, not a layout bug). Instant events become stacked
// pills. Input order is preserved within each shape class.
func LayoutDay(events []Event, day time.Time, grid GridConfig) []Block {
	var blocks []Block
	idx := 0

	// Session blocks first, then pills, matching the mobile paint order.
	for _, ev := range events {
		if ev.Kind != KindSession || !SameDay(ev.Timestamp, day) {
			continue
		}
		top := grid.offset(ev.Timestamp)
		height := ev.End.Sub(ev.Timestamp).Hours() * grid.HourHeight
		if height < grid.MinBlockHeight {
			height = grid.MinBlockHeight
		}
		blocks = append(blocks, Block{Event: ev, Index: idx, Top: top, Height: height})
		idx++
	}

	var pillTops []float64
	for _, ev := range events {
		if ev.Kind == KindSession || !SameDay(ev.Timestamp, day) {
			continue
		}
		top := grid.offset(ev.Timestamp)
		for _, prev := range pillTops {
			if top < prev+grid.PillHeight && top+grid.PillHeight > prev {
				top = prev + grid.PillNudge
			}
		}
		pillTops = append(pillTops, top)
		blocks = append(blocks, Block{
			Event:  ev,
			Index:  idx,
			Top:    top,
			Height: grid.PillHeight,
			Pill:   true,
		})
		idx++
	}

	return blocks
}
