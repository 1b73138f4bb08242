package store

import (
	"reflect"
	"testing"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []SortField
	}{
		{
			name: "empty spec defaults to date",
			spec: "",
			want: []SortField{{Column: "created_at"}},
		},
		{
			name: "single ascending field",
			spec: "question",
			want: []SortField{{Column: "question"}},
		},
		{
			name: "explicit plus prefix",
			spec: "+id",
			want: []SortField{{Column: "id"}},
		},
		{
			name: "descending date",
			spec: "-date",
			want: []SortField{{Column: "created_at", Desc: true}},
		},
		{
			name: "multiple fields",
			spec: "-date,+question",
			want: []SortField{{Column: "created_at", Desc: true}, {Column: "question"}},
		},
		{
			name: "unknown field defaults to date",
			spec: "favourite_colour",
			want: []SortField{{Column: "created_at"}},
		},
		{
			name: "unknown field keeps direction",
			spec: "-favourite_colour",
			want: []SortField{{Column: "created_at", Desc: true}},
		},
		{
			name: "whitespace and empty elements skipped",
			spec: " -answer , , id ",
			want: []SortField{{Column: "answer", Desc: true}, {Column: "id"}},
		},
		{
			name: "case insensitive field names",
			spec: "-DATE",
			want: []SortField{{Column: "created_at", Desc: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSort(tt.spec)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSort(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestOrderByClause(t *testing.T) {
	tests := []struct {
		name   string
		fields []SortField
		want   string
	}{
		{
			name:   "nil fields default to date",
			fields: nil,
			want:   "ORDER BY created_at ASC",
		},
		{
			name:   "single descending",
			fields: []SortField{{Column: "created_at", Desc: true}},
			want:   "ORDER BY created_at DESC",
		},
		{
			name:   "mixed directions",
			fields: []SortField{{Column: "question"}, {Column: "id", Desc: true}},
			want:   "ORDER BY question ASC, id DESC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := orderByClause(tt.fields); got != tt.want {
				t.Errorf("orderByClause(%+v) = %q, want %q", tt.fields, got, tt.want)
			}
		})
	}
}
