package domain

import (
	"time"

	"github.com/finquery/portcache/pkg/codec"
)

// dateLayout is the index-label format for market data frames.
const dateLayout = "2006-01-02"

const (
	// tradingHoursTTL applies to market-data writes during trading
	// hours, when prices move fastest.
	tradingHoursTTL = 5 * time.Minute

	// offHoursTTL applies outside trading hours.
	offHoursTTL = 15 * time.Minute
)

// AcceptableDate computes the oldest "latest observed date" cached market
// data may carry and still be served. Weekdays accept yesterday's close;
// on weekends the most recent Friday is acceptable (Saturday's yesterday
// already is Friday, Sunday looks back two days).
func AcceptableDate(now time.Time) time.Time {
	back := -1
	if now.Weekday() == time.Sunday {
		back = -2
	}
	d := now.AddDate(0, 0, back)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// InMarketHours reports whether t falls inside local trading hours:
// weekdays, 09:00 to 15:59.
func InMarketHours(t time.Time) bool {
	wd := t.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	return t.Hour() >= 9 && t.Hour() < 16
}

// marketDataTTL picks the write TTL for market data at a given time.
func marketDataTTL(now time.Time) time.Duration {
	if InMarketHours(now) {
		return tradingHoursTTL
	}
	return offHoursTTL
}

// isFresh reports whether a cached frame's latest observed date is on or
// after the acceptable date. Empty or unparsable indexes count as stale.
func isFresh(table *codec.Table, now time.Time) bool {
	if table == nil || len(table.Index) == 0 {
		return false
	}
	latest, err := time.ParseInLocation(dateLayout, table.Index[len(table.Index)-1], now.Location())
	if err != nil {
		return false
	}
	return !latest.Before(AcceptableDate(now))
}
