package card

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"hcrm/internal/sysinfo"
)

func TestGreetingBucketsAreTotalAndNonOverlapping(t *testing.T) {
	expected := map[int]string{
		0: "凌晨好", 3: "凌晨好", 5: "凌晨好",
		6: "早上好", 10: "早上好",
		11: "中午好", 12: "中午好",
		13: "下午好", 17: "下午好",
		18: "晚上好", 23: "晚上好",
	}

	for hour := 0; hour < 24; hour++ {
		matches := 0
		for _, b := range greetingBuckets {
			if hour >= b.From && hour < b.To {
				matches++
			}
		}
		if matches != 1 {
			t.Fatalf("hour %d falls into %d buckets; want exactly 1", hour, matches)
		}
		if want, ok := expected[hour]; ok {
			if got := greetingFor(hour); got != want {
				t.Fatalf("hour %d: expected %q; got %q", hour, want, got)
			}
		}
	}
}

func TestGreetingIsAlwaysOneOfFive_Property(t *testing.T) {
	valid := map[string]bool{
		"凌晨好": true, "早上好": true, "中午好": true, "下午好": true, "晚上好": true,
	}

	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)
	properties.Property("every hour maps to a greeting", prop.ForAll(
		func(hour int) bool {
			return valid[greetingFor(hour)]
		},
		gen.IntRange(0, 23),
	))
	properties.TestingRun(t)
}

func TestWeekdayMood(t *testing.T) {
	pool := []string{"睡到自然醒喵", "公园散散步喵"}

	if got := moodFor(time.Monday, pool); got != "周一 又是新的开始" {
		t.Fatalf("monday mood: got %q", got)
	}
	if got := moodFor(time.Friday, pool); got != "周五 马上就放假啦" {
		t.Fatalf("friday mood: got %q", got)
	}
	for _, day := range []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday} {
		if got := moodFor(day, pool); got != neutralMood {
			t.Fatalf("%v mood: expected neutral; got %q", day, got)
		}
	}

	// Weekend picks are random; assert prefix and pool membership only.
	for day, prefix := range map[time.Weekday]string{time.Saturday: "周六", time.Sunday: "周日"} {
		got := moodFor(day, pool)
		if !strings.HasPrefix(got, prefix+" ") {
			t.Fatalf("%v mood %q missing prefix %q", day, got, prefix)
		}
		phrase := strings.TrimPrefix(got, prefix+" ")
		member := false
		for _, p := range pool {
			if p == phrase {
				member = true
			}
		}
		if !member {
			t.Fatalf("%v phrase %q not in pool", day, phrase)
		}
	}
}

func TestWeekendMoodEmptyPool(t *testing.T) {
	if got := moodFor(time.Saturday, nil); got != "周六" {
		t.Fatalf("expected bare prefix for empty pool; got %q", got)
	}
}

var hashPattern = regexp.MustCompile(`^[0-9A-F]{16}$`)

func TestContentHashDeterministic(t *testing.T) {
	a := ContentHash(1756684800000, "平平无奇的工作日 · 中午好")
	b := ContentHash(1756684800000, "平平无奇的工作日 · 中午好")
	if a != b {
		t.Fatalf("hash not deterministic: %q vs %q", a, b)
	}
	if !hashPattern.MatchString(a) {
		t.Fatalf("hash %q is not 16 uppercase hex chars", a)
	}

	if c := ContentHash(1756684800001, "平平无奇的工作日 · 中午好"); c == a {
		t.Fatal("timestamp change did not change the hash")
	}
	if c := ContentHash(1756684800000, "周五 马上就放假啦 · 中午好"); c == a {
		t.Fatal("mood change did not change the hash")
	}
}

func TestContentHash_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)
	properties.Property("same inputs, same fingerprint", prop.ForAll(
		func(millis int64, mood string) bool {
			h := ContentHash(millis, mood)
			return h == ContentHash(millis, mood) && hashPattern.MatchString(h)
		},
		gen.Int64(),
		gen.AnyString(),
	))
	properties.TestingRun(t)
}

func TestAssemble(t *testing.T) {
	stats := sysinfo.Stats{CPUPercent: "60.0", RAMPercent: "42.0", CPUModel: "TestCPU", OS: "linux 6.1"}

	// 2026-01-06 is a Tuesday.
	lateNight := time.Date(2026, 1, 6, 3, 0, 0, 0, time.UTC)
	data := Assemble(lateNight, stats, "测试一言", nil)

	if data.MoodGreeting != "平平无奇的工作日 · 凌晨好" {
		t.Fatalf("unexpected mood/greeting %q", data.MoodGreeting)
	}
	if data.TimestampMillis != lateNight.UnixMilli() {
		t.Fatalf("timestamp mismatch: %d", data.TimestampMillis)
	}
	if data.DateText != "2026/01/06" || data.TimeText != "03:00:00" {
		t.Fatalf("unexpected date/time %q %q", data.DateText, data.TimeText)
	}
	if data.ContentHash != ContentHash(data.TimestampMillis, data.MoodGreeting) {
		t.Fatal("content hash does not match its inputs")
	}
	if data.Quote != "测试一言" {
		t.Fatalf("quote not carried through: %q", data.Quote)
	}

	midday := time.Date(2026, 1, 6, 12, 0, 0, 0, time.UTC)
	if got := Assemble(midday, stats, "", nil).MoodGreeting; !strings.HasSuffix(got, " · 中午好") {
		t.Fatalf("expected midday greeting; got %q", got)
	}
}

func TestLunarText(t *testing.T) {
	// 2024-02-10 was the lunar new year 正月初一.
	got := LunarText(time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC))
	if !strings.HasPrefix(got, "农历") {
		t.Fatalf("lunar text %q missing prefix", got)
	}
	if !strings.Contains(got, "正月初一") {
		t.Fatalf("expected 正月初一 in %q", got)
	}
}
