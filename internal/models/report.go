package models

// DailyAvailability 单日剩余名额
type DailyAvailability struct {
	Date         string `json:"date"`
	Requests     int    `json:"requests"`
	FreeCapacity int    `json:"free_capacity"`
}

// YearMonth 年月
type YearMonth struct {
	Year       int `json:"year"`
	MonthValue int `json:"monthValue"`
}

// MonthlyRequests 每月预约数
type MonthlyRequests struct {
	YearMonth YearMonth `json:"yearMonth"`
	Requests  int       `json:"requests"`
}

// MonthStats 每月预约统计（YYYY-MM 形式）
type MonthStats struct {
	Month        string `json:"month"`
	RequestCount int    `json:"request_count"`
}

// DayCount 某天的预约数（仓库层聚合结果）
type DayCount struct {
	Day   Date `db:"day"`
	Count int  `db:"count"`
}

// MonthCount 某月的预约数（仓库层聚合结果）
type MonthCount struct {
	Year  int `db:"year"`
	Month int `db:"month"`
	Count int `db:"count"`
}
