package wager

// Period is one of the four tracked wager time windows.
type Period string

const (
	PeriodToday     Period = "today"
	PeriodThisWeek  Period = "this_week"
	PeriodThisMonth Period = "this_month"
	PeriodAllTime   Period = "all_time"
)

// Periods lists every window in display order.
var Periods = []Period{PeriodToday, PeriodThisWeek, PeriodThisMonth, PeriodAllTime}

// Breakdown holds the cumulative wagered amount per time window.
type Breakdown struct {
	Today     float64 `json:"today"`
	ThisWeek  float64 `json:"this_week"`
	ThisMonth float64 `json:"this_month"`
	AllTime   float64 `json:"all_time"`
}

// Record is a single normalized user entry from the affiliate API.
type Record struct {
	UID     string    `json:"uid"`
	Name    string    `json:"name"`
	Wagered Breakdown `json:"wagered"`
}

// Amount returns the wagered value for the given period.
func (r Record) Amount(period Period) float64 {
	switch period {
	case PeriodToday:
		return r.Wagered.Today
	case PeriodThisWeek:
		return r.Wagered.ThisWeek
	case PeriodThisMonth:
		return r.Wagered.ThisMonth
	default:
		return r.Wagered.AllTime
	}
}

// AddToAll adds the same delta to every time window.
func (r *Record) AddToAll(delta float64) {
	r.Wagered.Today += delta
	r.Wagered.ThisWeek += delta
	r.Wagered.ThisMonth += delta
	r.Wagered.AllTime += delta
}
