package market

import "time"

// Exchange selects which session-hours table applies.
type Exchange string

const (
	ExchangeUS    Exchange = "US"
	ExchangeIndia Exchange = "India"
)

// Valid reports whether the exchange selector is a known value.
func (e Exchange) Valid() bool {
	return e == ExchangeUS || e == ExchangeIndia
}

// SessionOpen reports whether the exchange is inside its regular trading
// session at the given instant. Exchange-local time is approximated with a
// fixed UTC offset (India +5h30m, otherwise -5h for US Eastern). The offset
// is not daylight-saving aware, so the US check drifts by an hour around
// DST transitions; that approximation is intentional, not a bug to fix.
func SessionOpen(exchange Exchange, now time.Time) bool {
	if exchange == ExchangeIndia {
		local := now.Add(5*time.Hour + 30*time.Minute)
		return withinSession(local, 9, 15, 15, 30)
	}
	local := now.Add(-5 * time.Hour)
	return withinSession(local, 9, 30, 16, 0)
}

// withinSession checks the open/close bound for the shifted instant's own
// calendar day. Bounds are inclusive at minute granularity.
func withinSession(t time.Time, openHour, openMin, closeHour, closeMin int) bool {
	t = t.Truncate(time.Minute)
	open := time.Date(t.Year(), t.Month(), t.Day(), openHour, openMin, 0, 0, t.Location())
	close := time.Date(t.Year(), t.Month(), t.Day(), closeHour, closeMin, 0, 0, t.Location())
	return !t.Before(open) && !t.After(close)
}
