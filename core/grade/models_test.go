package grade

import (
	"testing"

	"github.com/volatiletech/null/v8"
)

func fls(vals ...float64) []null.Float64 {
	out := make([]null.Float64, 0, len(vals))
	for _, v := range vals {
		out = append(out, null.Float64From(v))
	}
	return out
}

func TestAverageOf(t *testing.T) {
	tests := []struct {
		name   string
		scores []null.Float64
		want   null.Float64
	}{
		{name: "no scores", scores: nil, want: null.Float64{}},
		{name: "all absent", scores: []null.Float64{{}, {}, {}}, want: null.Float64{}},
		{name: "single score", scores: fls(12), want: null.Float64From(12)},
		{name: "full slots", scores: fls(10, 12, 14, 16, 18), want: null.Float64From(14)},
		{
			// absent scores are skipped, not counted as zero
			name:   "partial slots",
			scores: []null.Float64{null.Float64From(15), null.Float64From(17), {}, {}, {}},
			want:   null.Float64From(16),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AverageOf(tt.scores); got != tt.want {
				t.Errorf("AverageOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    null.Float64
		wantErr bool
	}{
		{name: "empty is absent", raw: "", want: null.Float64{}},
		{name: "blank is absent", raw: "   ", want: null.Float64{}},
		{name: "valid", raw: "12.5", want: null.Float64From(12.5)},
		{name: "zero is a score", raw: "0", want: null.Float64From(0)},
		{name: "max", raw: "20", want: null.Float64From(20)},
		{name: "negative", raw: "-1", wantErr: true},
		{name: "above max", raw: "20.5", wantErr: true},
		{name: "not a number", raw: "quinze", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScore(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseScore() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsTerm(t *testing.T) {
	for _, term := range Terms {
		if !IsTerm(term) {
			t.Errorf("IsTerm(%q) = false, want true", term)
		}
	}
	for _, term := range []string{"", "4e trimestre", "trimestre 1"} {
		if IsTerm(term) {
			t.Errorf("IsTerm(%q) = true, want false", term)
		}
	}
}

func TestEntry_DisplayScores(t *testing.T) {
	e := Entry{}
	if got := e.DisplayScores(); got != "" {
		t.Errorf("DisplayScores() = %q, want empty", got)
	}

	e.Scores[0] = null.Float64From(15)
	e.Scores[2] = null.Float64From(17.5)
	if got, want := e.DisplayScores(), "15 - 17.5"; got != want {
		t.Errorf("DisplayScores() = %q, want %q", got, want)
	}
}

func TestEntry_IsEmpty(t *testing.T) {
	e := Entry{StudentID: "std1", SubjectID: "sub1", Term: Term1}
	if !e.IsEmpty() {
		t.Error("IsEmpty() = false on a bare entry, want true")
	}
	e.Remark = "Bien"
	if e.IsEmpty() {
		t.Error("IsEmpty() = true with a remark, want false")
	}
	e.Remark = ""
	e.Scores[4] = null.Float64From(0)
	if e.IsEmpty() {
		t.Error("IsEmpty() = true with a zero score, want false")
	}
}

func TestNewEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entry   NewEntry
		wantErr bool
	}{
		{
			name:  "valid",
			entry: NewEntry{StudentID: "std1", SubjectID: "sub1", Term: Term1, Scores: []string{"15", "", "17"}},
		},
		{
			name:  "no scores",
			entry: NewEntry{StudentID: "std1", SubjectID: "sub1", Term: Term2},
		},
		{
			name:    "missing student",
			entry:   NewEntry{SubjectID: "sub1", Term: Term1},
			wantErr: true,
		},
		{
			name:    "bad term",
			entry:   NewEntry{StudentID: "std1", SubjectID: "sub1", Term: "semestre 1"},
			wantErr: true,
		},
		{
			name:    "bad score",
			entry:   NewEntry{StudentID: "std1", SubjectID: "sub1", Term: Term1, Scores: []string{"25"}},
			wantErr: true,
		},
		{
			name:    "too many scores",
			entry:   NewEntry{StudentID: "std1", SubjectID: "sub1", Term: Term1, Scores: []string{"1", "2", "3", "4", "5", "6"}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.entry.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
