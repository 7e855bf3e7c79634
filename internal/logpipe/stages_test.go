package logpipe

import (
	"errors"
	"reflect"
	"testing"

	"github.com/divvyup/divvyup/internal/models"
)

func TestSortByTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "orders by raw timestamp token",
			lines: []string{"a 200 foo", "b 100 bar"},
			want:  []string{"b 100 bar", "a 200 foo"},
		},
		{
			name: "comparison is lexicographic not numeric",
			// numeric 9 < 10 but "10" < "9" as strings
			lines: []string{"a 9 foo", "b 10 bar"},
			want:  []string{"b 10 bar", "a 9 foo"},
		},
		{
			name:  "equal tokens keep input order",
			lines: []string{"b 100 second", "a 100 first"},
			want:  []string{"b 100 second", "a 100 first"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sortByTimestamp(tt.lines)
			if !reflect.DeepEqual(tt.lines, tt.want) {
				t.Errorf("sorted = %v, want %v", tt.lines, tt.want)
			}
		})
	}
}

func TestTransform(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		want    []logRecord
		wantErr bool
	}{
		{
			name:  "parses tag timestamp and text",
			lines: []string{"app1 82800000 NullPointerException"},
			want:  []logRecord{{bucket: "23:00-23:15", text: "NullPointerException"}},
		},
		{
			name:  "strips trailing whitespace from text",
			lines: []string{"app1 0 TimeoutError \t"},
			want:  []logRecord{{bucket: "0:00-0:15", text: "TimeoutError"}},
		},
		{
			name:    "wrong field count fails",
			lines:   []string{"app1 82800000"},
			wantErr: true,
		},
		{
			name:    "non-integer timestamp fails",
			lines:   []string{"app1 notamillis TimeoutError"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := transform(tt.lines)
			if (err != nil) != tt.wantErr {
				t.Fatalf("transform() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrParse) {
					t.Fatalf("error = %v, want ErrParse", err)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("transform() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAggregateAndFormat(t *testing.T) {
	records := []logRecord{
		{bucket: "11:30-11:45", text: "NullPointerException"},
		{bucket: "10:00-10:15", text: "TimeoutError"},
		{bucket: "11:30-11:45", text: "ArrayIndexOutOfBounds"},
		{bucket: "11:30-11:45", text: "NullPointerException"},
	}

	got := formatReport(aggregate(records))

	want := []models.BucketEntry{
		{
			Timestamp: "10:00-10:15",
			Logs:      []models.ExceptionCount{{Exception: "TimeoutError", Count: 1}},
		},
		{
			Timestamp: "11:30-11:45",
			Logs: []models.ExceptionCount{
				{Exception: "ArrayIndexOutOfBounds", Count: 1},
				{Exception: "NullPointerException", Count: 2},
			},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("report = %+v, want %+v", got, want)
	}
}
