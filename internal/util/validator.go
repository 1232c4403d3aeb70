package util

import (
	"fmt"
	"time"
)

// ValidateDate 验证日期格式（必须为 YYYY-MM-DD）
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	_, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}

// ValidateTime 验证时间格式（必须为 HH:MM）
func ValidateTime(timeStr string) error {
	if timeStr == "" {
		return fmt.Errorf("time is empty")
	}
	_, err := time.Parse("15:04", timeStr)
	if err != nil {
		return fmt.Errorf("invalid time format: %w", err)
	}
	return nil
}
