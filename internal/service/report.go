package service

import (
	"time"

	"github.com/langchou/garagebook/internal/models"
)

// 单次日报表允许的最大天数
const maxReportDays = 731

// buildDailyAvailability 按天展开日期区间，没有预约的日期补 0
func buildDailyAvailability(capacity int, start, end models.Date, counts []models.DayCount) []models.DailyAvailability {
	byDay := make(map[string]int, len(counts))
	for _, c := range counts {
		byDay[c.Day.String()] = c.Count
	}

	report := []models.DailyAvailability{}
	for day := start; !day.After(end.Time); day = day.AddDays(1) {
		key := day.String()
		requests := byDay[key]
		report = append(report, models.DailyAvailability{
			Date:         key,
			Requests:     requests,
			FreeCapacity: max(capacity-requests, 0),
		})
	}
	return report
}

// monthRange 按月展开区间 [start, end]，两端为月初
func monthRange(start, end models.Date) []time.Time {
	var months []time.Time
	for m := start.Time; !m.After(end.Time); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}

func monthCountIndex(counts []models.MonthCount) map[[2]int]int {
	idx := make(map[[2]int]int, len(counts))
	for _, c := range counts {
		idx[[2]int{c.Year, c.Month}] = c.Count
	}
	return idx
}

// buildMonthlyRequests 生成 {yearMonth, requests} 形式的月报，缺失月份补 0
func buildMonthlyRequests(start, end models.Date, counts []models.MonthCount) []models.MonthlyRequests {
	idx := monthCountIndex(counts)
	report := []models.MonthlyRequests{}
	for _, m := range monthRange(start, end) {
		report = append(report, models.MonthlyRequests{
			YearMonth: models.YearMonth{Year: m.Year(), MonthValue: int(m.Month())},
			Requests:  idx[[2]int{m.Year(), int(m.Month())}],
		})
	}
	return report
}

// buildMonthStats 生成 {month: "YYYY-MM", request_count} 形式的月报，缺失月份补 0
func buildMonthStats(start, end models.Date, counts []models.MonthCount) []models.MonthStats {
	idx := monthCountIndex(counts)
	report := []models.MonthStats{}
	for _, m := range monthRange(start, end) {
		report = append(report, models.MonthStats{
			Month:        m.Format(models.MonthLayout),
			RequestCount: idx[[2]int{m.Year(), int(m.Month())}],
		})
	}
	return report
}

// endOfMonth 返回 month 所在月的最后一天
func endOfMonth(month models.Date) models.Date {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	return models.Date{Time: first.AddDate(0, 1, -1)}
}

// validateDateRange 校验日期区间
func validateDateRange(start, end models.Date, maxDays int) error {
	if start.After(end.Time) {
		return invalid("start date must not be after end date")
	}
	if maxDays > 0 && int(end.Sub(start.Time).Hours()/24)+1 > maxDays {
		return invalid("date range must not exceed %d days", maxDays)
	}
	return nil
}
