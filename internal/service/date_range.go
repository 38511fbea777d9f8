package service

import (
	"Beacon/internal/api/dto"
	"time"
)

// parseISODate 接受 2026-08-31 或完整 RFC3339 两种写法
func parseISODate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// ResolveDateRange 解析查询时间窗口，纯函数。
// 优先级：显式 startDate > period 相对窗口 > 默认回溯 30 天；endDate 缺省为 now。
func ResolveDateRange(q *dto.AnalyticsQueryDTO, now time.Time) (time.Time, time.Time, error) {
	end := now
	if q != nil && q.EndDate != "" {
		parsed, err := parseISODate(q.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, ErrParamInvalid
		}
		end = parsed
	}

	var start time.Time
	switch {
	case q != nil && q.StartDate != "":
		parsed, err := parseISODate(q.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, ErrParamInvalid
		}
		start = parsed
	case q != nil && q.Period != "":
		switch q.Period {
		case dto.PeriodLast7Days:
			start = now.AddDate(0, 0, -7)
		case dto.PeriodLast30Days:
			start = now.AddDate(0, 0, -30)
		case dto.PeriodLast90Days:
			start = now.AddDate(0, 0, -90)
		case dto.PeriodThisMonth:
			start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		case dto.PeriodThisYear:
			start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		default:
			return time.Time{}, time.Time{}, ErrParamInvalid
		}
	default:
		start = now.AddDate(0, 0, -30)
	}

	return start, end, nil
}
