package report

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/nekrut/error-reports/pkg/records"
	"golang.org/x/text/unicode/norm"
)

// Count is one aggregation bucket.
type Count struct {
	Key   string
	Count int
}

// DayCount is one calendar day's error count.
type DayCount struct {
	Date  string
	Count int
}

// ErrorGroup is a distinct error message with its occurrence count and a
// representative full stderr capture.
type ErrorGroup struct {
	Message string
	Count   int
	Full    string
}

// ToolStats is the per-tool breakdown backing an individual tool page.
type ToolStats struct {
	Name         string
	SafeName     string
	Total        int
	UniqueUsers  int
	ExitCodes    []Count
	Destinations []Count
	Errors       []ErrorGroup
}

// Stats holds every aggregation the dashboard renders. Computed read-only
// over a sanitized collection.
type Stats struct {
	TotalRecords    int
	UniqueTools     int
	UniqueUsers     int
	AnonymousCount  int
	DateMin         string
	DateMax         string
	PeakDay         int
	TopTools        []Count
	ExitCodes       []Count
	Destinations    []Count
	Daily           []DayCount
	DayOfWeek       []Count
	Patterns        []Count
	SpikeDays       []DayCount
	TopUsers        []Count
	ExitZeroCount   int
	ExitZeroTools   []Count
	Tools           []*ToolStats
	PerToolOverview []*ToolStats
}

// errorPattern is one error-classification bucket matched against stderr.
type errorPattern struct {
	name    string
	pattern *regexp.Regexp
}

var errorPatterns = []errorPattern{
	{"Invalid Input", regexp.MustCompile(`(?i)invalid|not valid|malformed|corrupt`)},
	{"Memory/OOM", regexp.MustCompile(`(?i)memory|MemoryError|Cannot allocate|out of memory|OOM`)},
	{"Disk Space", regexp.MustCompile(`(?i)No space left|disk full|quota exceeded`)},
	{"Missing Header", regexp.MustCompile(`(?i)no.*header|missing header`)},
	{"Connection", regexp.MustCompile(`(?i)connection|ConnectionError|network|refused`)},
	{"Process Killed", regexp.MustCompile(`(?i)Killed|SIGKILL|signal 9`)},
	{"Permission", regexp.MustCompile(`(?i)Permission denied|Access denied`)},
}

var safeNamePattern = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// ToolName extracts a short tool name from a tool identifier. Toolshed ids
// carry the name as the fourth slash-separated segment; anything else is
// used as-is. A nil or empty id maps to "unknown".
func ToolName(toolID any) string {
	s, ok := toolID.(string)
	if !ok || s == "" {
		return "unknown"
	}
	parts := strings.Split(s, "/")
	if len(parts) >= 4 {
		return parts[3]
	}
	return s
}

// SafeFileName maps a tool name onto a filesystem-safe page name.
func SafeFileName(name string) string {
	return safeNamePattern.ReplaceAllString(name, "_")
}

const timestampLayout = "2006-01-02T15:04:05"

// Aggregate computes every dashboard statistic over the collection. The
// collection is never mutated.
func Aggregate(collection records.Collection, topTools int) *Stats {
	stats := &Stats{}

	toolCounts := map[string]int{}
	exitCounts := map[string]int{}
	destCounts := map[string]int{}
	dailyCounts := map[string]int{}
	userCounts := map[string]int{}
	patternCounts := map[string]int{}
	dowCounts := map[string]int{}
	exitZeroTools := map[string]int{}

	for _, entry := range collection {
		rec, ok := records.AsRecord(entry)
		if !ok {
			continue
		}
		stats.TotalRecords++

		tool := ToolName(rec["tool_id"])
		toolCounts[tool]++

		exitCounts[valueKey(rec["exit_code"])]++
		destCounts[valueKey(rec["destination_id"])]++

		if uid := rec["user_id"]; uid == nil {
			stats.AnonymousCount++
		} else {
			userCounts[valueKey(uid)]++
		}

		if ts, ok := rec["create_time"].(string); ok && len(ts) >= 10 {
			date := ts[:10]
			dailyCounts[date]++
			if stats.DateMin == "" || date < stats.DateMin {
				stats.DateMin = date
			}
			if date > stats.DateMax {
				stats.DateMax = date
			}
			if t, err := time.Parse(timestampLayout, truncateTo(ts, 19)); err == nil {
				dowCounts[t.Weekday().String()]++
			}
		}

		if stderr, ok := rec["tool_stderr"].(string); ok && stderr != "" {
			for _, p := range errorPatterns {
				if p.pattern.MatchString(stderr) {
					patternCounts[p.name]++
				}
			}
		}

		if isExitZero(rec["exit_code"]) {
			stats.ExitZeroCount++
			exitZeroTools[tool]++
		}
	}

	stats.UniqueTools = len(toolCounts)
	stats.UniqueUsers = len(userCounts)
	stats.TopTools = topCounts(toolCounts, topTools)
	stats.ExitCodes = topCounts(exitCounts, 12)
	stats.Destinations = topCounts(destCounts, 0)
	stats.TopUsers = topCounts(userCounts, 10)
	stats.ExitZeroTools = topCounts(exitZeroTools, 5)
	stats.DayOfWeek = weekdayCounts(dowCounts)

	// Pattern buckets keep their declaration order when counts tie
	for _, p := range errorPatterns {
		if n := patternCounts[p.name]; n > 0 {
			stats.Patterns = append(stats.Patterns, Count{Key: p.name, Count: n})
		}
	}
	sort.SliceStable(stats.Patterns, func(i, j int) bool {
		return stats.Patterns[i].Count > stats.Patterns[j].Count
	})

	stats.Daily = sortedDays(dailyCounts)
	for _, d := range stats.Daily {
		if d.Count > stats.PeakDay {
			stats.PeakDay = d.Count
		}
	}
	stats.SpikeDays = spikeDays(stats.Daily)

	stats.Tools = perToolStats(collection, stats.TopTools)
	if len(stats.Tools) > 10 {
		stats.PerToolOverview = stats.Tools[:10]
	} else {
		stats.PerToolOverview = stats.Tools
	}

	return stats
}

// perToolStats builds the per-tool breakdowns for the top failing tools.
func perToolStats(collection records.Collection, topTools []Count) []*ToolStats {
	byName := make(map[string]*ToolStats, len(topTools))
	ordered := make([]*ToolStats, 0, len(topTools))
	for _, tc := range topTools {
		ts := &ToolStats{Name: tc.Key, SafeName: SafeFileName(tc.Key), Total: tc.Count}
		byName[tc.Key] = ts
		ordered = append(ordered, ts)
	}

	type toolAgg struct {
		exitCodes map[string]int
		dests     map[string]int
		users     map[string]struct{}
		errCounts map[string]int
		errFull   map[string]string
	}
	aggs := map[string]*toolAgg{}

	for _, entry := range collection {
		rec, ok := records.AsRecord(entry)
		if !ok {
			continue
		}
		tool := ToolName(rec["tool_id"])
		if _, tracked := byName[tool]; !tracked {
			continue
		}
		agg := aggs[tool]
		if agg == nil {
			agg = &toolAgg{
				exitCodes: map[string]int{},
				dests:     map[string]int{},
				users:     map[string]struct{}{},
				errCounts: map[string]int{},
				errFull:   map[string]string{},
			}
			aggs[tool] = agg
		}

		agg.exitCodes[valueKey(rec["exit_code"])]++
		agg.dests[valueKey(rec["destination_id"])]++
		if uid := rec["user_id"]; uid != nil {
			agg.users[valueKey(uid)] = struct{}{}
		}

		if stderr, ok := rec["tool_stderr"].(string); ok && stderr != "" {
			if key := firstMeaningfulLine(stderr, 100); key != "" {
				agg.errCounts[key]++
				if _, seen := agg.errFull[key]; !seen {
					agg.errFull[key] = truncateTo(stderr, 4000)
				}
			}
		}
	}

	for _, ts := range ordered {
		agg := aggs[ts.Name]
		if agg == nil {
			continue
		}
		ts.ExitCodes = topCounts(agg.exitCodes, 5)
		ts.Destinations = topCounts(agg.dests, 5)
		ts.UniqueUsers = len(agg.users)
		for _, c := range topCounts(agg.errCounts, 0) {
			full := agg.errFull[c.Key]
			// Only keep the capture when it adds context beyond the key line
			if len(full) <= len(c.Key)+20 {
				full = ""
			}
			ts.Errors = append(ts.Errors, ErrorGroup{
				Message: c.Key,
				Count:   c.Count,
				Full:    full,
			})
		}
	}

	return ordered
}

// firstMeaningfulLine picks the grouping key for an stderr capture: the
// first line that is not a ruler or trivially short, NFC- and
// whitespace-canonicalized so visually identical messages bucket together.
func firstMeaningfulLine(stderr string, maxLen int) string {
	for _, line := range strings.Split(strings.TrimSpace(stderr), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(line) <= 5 {
			continue
		}
		if strings.Contains(line, "====") || strings.Contains(line, "____") {
			continue
		}
		line = norm.NFC.String(strings.Join(strings.Fields(line), " "))
		return truncateTo(line, maxLen)
	}
	return ""
}

// spikeDays flags days whose count exceeds the mean by two standard
// deviations.
func spikeDays(daily []DayCount) []DayCount {
	if len(daily) < 2 {
		return nil
	}
	var sum float64
	for _, d := range daily {
		sum += float64(d.Count)
	}
	mean := sum / float64(len(daily))

	var variance float64
	for _, d := range daily {
		diff := float64(d.Count) - mean
		variance += diff * diff
	}
	// Sample standard deviation, matching the original analysis
	std := math.Sqrt(variance / float64(len(daily)-1))
	threshold := mean + 2*std

	var spikes []DayCount
	for _, d := range daily {
		if float64(d.Count) > threshold {
			spikes = append(spikes, d)
		}
	}
	return spikes
}

// valueKey renders an arbitrary field value as an aggregation key. Integral
// floats render without a fractional part; nil renders as "None".
func valueKey(v any) string {
	switch t := v.(type) {
	case nil:
		return "None"
	case string:
		if t == "" {
			return "None"
		}
		return t
	case float64:
		if t == math.Trunc(t) && !math.IsInf(t, 0) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func isExitZero(v any) bool {
	f, ok := v.(float64)
	return ok && f == 0
}

// topCounts sorts a counter map descending by count, ties broken by key, and
// keeps the first limit entries (0 = all).
func topCounts(counts map[string]int, limit int) []Count {
	out := make([]Count, 0, len(counts))
	for k, v := range counts {
		out = append(out, Count{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

var weekdayOrder = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func weekdayCounts(counts map[string]int) []Count {
	out := make([]Count, 0, len(weekdayOrder))
	for _, day := range weekdayOrder {
		out = append(out, Count{Key: day, Count: counts[day]})
	}
	return out
}

func sortedDays(counts map[string]int) []DayCount {
	out := make([]DayCount, 0, len(counts))
	for date, n := range counts {
		out = append(out, DayCount{Date: date, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func truncateTo(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
