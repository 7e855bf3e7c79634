package logpipe

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/divvyup/divvyup/internal/models"
)

// logRecord is a parsed line: the 15-minute bucket its timestamp falls in
// plus the exception text with trailing whitespace stripped.
type logRecord struct {
	bucket string
	text   string
}

// sortByTimestamp orders lines by their second whitespace-delimited token
// compared as a string. The comparison is deliberately lexicographic, not
// numeric ("10" sorts before "9"); it matches the shipped behavior and is
// part of the observable output contract.
func sortByTimestamp(lines []string) {
	sort.SliceStable(lines, func(i, j int) bool {
		return timestampToken(lines[i]) < timestampToken(lines[j])
	})
}

// timestampToken extracts the sort key. Lines too short to carry one sort
// first and are rejected by transform afterwards.
func timestampToken(line string) string {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// transform parses each "<source> <timestampMillis> <text>" line into a
// logRecord. A wrong field count or a non-integer timestamp fails the
// whole pipeline with ErrParse.
func transform(lines []string) ([]logRecord, error) {
	records := make([]logRecord, 0, len(lines))
	for _, line := range lines {
		parts := strings.SplitN(line, " ", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: %q: want \"<source> <timestampMillis> <text>\"", ErrParse, line)
		}
		millis, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: timestamp %q is not an integer", ErrParse, line, parts[1])
		}
		records = append(records, logRecord{
			bucket: bucketKey(millis),
			text:   strings.TrimRightFunc(parts[2], unicode.IsSpace),
		})
	}
	return records, nil
}

// aggregate groups records by bucket key and counts occurrences of each
// distinct exception text within a bucket.
func aggregate(records []logRecord) map[string]map[string]int {
	buckets := make(map[string]map[string]int)
	for _, r := range records {
		counts := buckets[r.bucket]
		if counts == nil {
			counts = make(map[string]int)
			buckets[r.bucket] = counts
		}
		counts[r.text]++
	}
	return buckets
}

// formatReport flattens the two-level counts into a deterministic report:
// buckets ascend lexicographically by key, exceptions ascend by text. Map
// iteration order never leaks into the output.
func formatReport(buckets map[string]map[string]int) []models.BucketEntry {
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	report := make([]models.BucketEntry, 0, len(keys))
	for _, k := range keys {
		counts := buckets[k]
		texts := make([]string, 0, len(counts))
		for text := range counts {
			texts = append(texts, text)
		}
		sort.Strings(texts)

		logs := make([]models.ExceptionCount, 0, len(texts))
		for _, text := range texts {
			logs = append(logs, models.ExceptionCount{Exception: text, Count: counts[text]})
		}
		report = append(report, models.BucketEntry{Timestamp: k, Logs: logs})
	}
	return report
}
