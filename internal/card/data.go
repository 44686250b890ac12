// Package card assembles the immutable data record a render backend
// consumes. Assembly is pure composition: no I/O, deterministic given
// its inputs and the current instant (except the weekend phrase pick,
// which is re-rolled every invocation).
package card

import (
	"crypto/md5"
	"encoding/hex"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"hcrm/internal/sysinfo"
)

// Data is the fixed contract both render backends consume. Built once
// per request, passed read-only.
type Data struct {
	Stats           sysinfo.Stats
	Quote           string
	DateText        string
	TimeText        string
	TimestampMillis int64
	LunarText       string
	MoodGreeting    string
	ContentHash     string
}

const neutralMood = "平平无奇的工作日"

// Fixed weekday moods; weekends are handled separately from the pool.
var weekdayMoods = map[time.Weekday]string{
	time.Monday: "周一 又是新的开始",
	time.Friday: "周五 马上就放假啦",
}

var weekendPrefixes = map[time.Weekday]string{
	time.Saturday: "周六",
	time.Sunday:   "周日",
}

func moodFor(day time.Weekday, pool []string) string {
	if mood, ok := weekdayMoods[day]; ok {
		return mood
	}
	if prefix, ok := weekendPrefixes[day]; ok {
		if len(pool) == 0 {
			return prefix
		}
		return prefix + " " + pool[rand.Intn(len(pool))]
	}
	return neutralMood
}

// greetingBuckets maps hours to greetings over half-open intervals
// [From, To). The final bucket catches every remaining hour, so the
// mapping is total over 0-23.
var greetingBuckets = []struct {
	From, To int
	Text     string
}{
	{0, 6, "凌晨好"},
	{6, 11, "早上好"},
	{11, 13, "中午好"},
	{13, 18, "下午好"},
	{18, 24, "晚上好"},
}

func greetingFor(hour int) string {
	for _, b := range greetingBuckets {
		if hour >= b.From && hour < b.To {
			return b.Text
		}
	}
	return greetingBuckets[len(greetingBuckets)-1].Text
}

// ContentHash fingerprints (timestamp, mood+greeting) as 16 uppercase hex
// characters. It is baked into the rendered image for debugging and
// support correlation, not for security.
func ContentHash(timestampMillis int64, moodGreeting string) string {
	sum := md5.Sum([]byte(strconv.FormatInt(timestampMillis, 10) + moodGreeting))
	return strings.ToUpper(hex.EncodeToString(sum[:])[:16])
}

// Assemble builds the render record for the instant now.
func Assemble(now time.Time, stats sysinfo.Stats, quote string, weekendPool []string) Data {
	mood := moodFor(now.Weekday(), weekendPool)
	greeting := greetingFor(now.Hour())
	moodGreeting := mood + " · " + greeting
	millis := now.UnixMilli()

	return Data{
		Stats:           stats,
		Quote:           quote,
		DateText:        now.Format("2006/01/02"),
		TimeText:        now.Format("15:04:05"),
		TimestampMillis: millis,
		LunarText:       LunarText(now),
		MoodGreeting:    moodGreeting,
		ContentHash:     ContentHash(millis, moodGreeting),
	}
}
