package forecast

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Dan9191/spend-forecast/internal/models"
)

// YearRange is an inclusive span of calendar years
type YearRange struct {
	From int
	To   int
}

// HorizonAround returns the HolidayHorizonYears-long range centered on the year of t
func HorizonAround(t time.Time) YearRange {
	from := t.Year() - (HolidayHorizonYears-1)/2
	return YearRange{From: from, To: from + HolidayHorizonYears - 1}
}

// SubscriptionDays returns the sorted distinct days of month on which
// subscription transactions occurred. Records with unparseable dates are ignored.
func SubscriptionDays(records []models.TransactionRecord) []int {
	seen := make(map[int]bool)
	for _, rec := range records {
		if !strings.EqualFold(strings.TrimSpace(rec.CategoryOrDefault()), SubscriptionCategory) {
			continue
		}
		day, err := ParseDate(rec.TransactionDate)
		if err != nil {
			continue
		}
		seen[day.Day()] = true
	}

	days := make([]int, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

// DetectSubscriptionHolidays builds one zero-width event per month of the
// horizon for every distinct subscription day of month. Months that do not
// contain the day are skipped.
func DetectSubscriptionHolidays(records []models.TransactionRecord, horizon YearRange) models.HolidayTable {
	var table models.HolidayTable
	for _, day := range SubscriptionDays(records) {
		name := HolidayName(day)
		for year := horizon.From; year <= horizon.To; year++ {
			for month := time.January; month <= time.December; month++ {
				if day > DaysIn(year, month) {
					continue
				}
				table = append(table, models.HolidayEvent{
					Name: name,
					Date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
				})
			}
		}
	}
	return table
}

// HolidayName names the event group of a subscription day of month
func HolidayName(day int) string {
	return fmt.Sprintf("subscription_day_%d", day)
}

// DaysIn returns the number of days in the given month
func DaysIn(year int, month time.Month) int {
	// day 0 of the next month normalizes to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
