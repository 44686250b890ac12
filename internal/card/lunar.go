package card

import (
	"fmt"
	"time"

	"github.com/6tail/lunar-go/calendar"

	"hcrm/internal/logger"
)

// lunarFallback is substituted when the calendrical conversion fails.
const lunarFallback = "农历获取失败"

var lunarLog = logger.PackageLogger("CARD", "🗓️ CARD")

// LunarText formats t as a Chinese lunar date, e.g. 农历二〇二四年正月初一.
// Conversion failure degrades to a fallback string; it is never an error.
func LunarText(t time.Time) (text string) {
	defer func() {
		if r := recover(); r != nil {
			lunarLog.Warn("Lunar date conversion failed: %v", r)
			text = lunarFallback
		}
	}()

	lunar := calendar.NewSolarFromDate(t).GetLunar()
	return fmt.Sprintf("农历%s年%s月%s",
		lunar.GetYearInChinese(), lunar.GetMonthInChinese(), lunar.GetDayInChinese())
}
