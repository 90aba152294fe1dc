package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/volatiletech/null/v8"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/grade"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/student"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/subject"
)

// RankTolerance is the policy constant for tie detection: two averages
// within this distance count as the same score and share a rank.
const RankTolerance = 1e-3

// NoRank is displayed for students with no average.
const NoRank = "—"

// Mean returns the arithmetic mean of xs, or null when xs is empty.
func Mean(xs []float64) null.Float64 {
	if len(xs) == 0 {
		return null.Float64{}
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return null.Float64From(sum / float64(len(xs)))
}

// Rank returns the 1-based rank of score within the descending-sorted
// list: the position of the first value equal to it within
// RankTolerance. Ties share a rank; the next distinct rank is not
// adjusted for the tie group size.
func Rank(score float64, sortedDesc []float64) int {
	for i, v := range sortedDesc {
		if math.Abs(v-score) <= RankTolerance {
			return i + 1
		}
	}
	// score not in the list: count the strictly greater values
	n := 0
	for _, v := range sortedDesc {
		if v > score {
			n++
		}
	}
	return n + 1
}

// FormatRank renders a rank with the French ordinal marker: 1 -> "1er",
// n -> "<n>e". A non-positive rank means no data.
func FormatRank(rank int) string {
	switch {
	case rank <= 0:
		return NoRank
	case rank == 1:
		return "1er"
	default:
		return fmt.Sprintf("%de", rank)
	}
}

// GeneralAverage is the mean of the student's present per-subject
// averages for the term. Subjects with no average contribute neither
// to the sum nor to the count.
func GeneralAverage(entries []grade.Entry, subjects []subject.Subject, studentID, term string) null.Float64 {
	xs := make([]float64, 0, len(subjects))
	for _, sub := range subjects {
		if avg := grade.SubjectAverage(entries, studentID, sub.ID, term); avg.Valid {
			xs = append(xs, avg.Float64)
		}
	}
	return Mean(xs)
}

// ClassStats holds the benchmarks of one class (level + optional
// division) for one term. They are recomputed freshly per report.
type ClassStats struct {
	// SubjectScores maps a subject ID to the descending-sorted present
	// averages across the class, used for rank lookup.
	SubjectScores map[string][]float64
	// SubjectMeans maps a subject ID to the class mean of those averages.
	SubjectMeans map[string]null.Float64

	// GeneralScores is the descending-sorted list of present general
	// averages across the class.
	GeneralScores []float64
	// GeneralByStudent maps a student ID to their general average.
	GeneralByStudent map[string]null.Float64
	// ClassGeneralAverage is the mean of the present general averages.
	ClassGeneralAverage null.Float64
}

// ComputeClassStats computes per-subject and general benchmarks for
// the given roster. Students with no data for a subject contribute
// nothing to that subject's sum or count.
func ComputeClassStats(roster []student.Student, subjects []subject.Subject, entries []grade.Entry, term string) ClassStats {
	stats := ClassStats{
		SubjectScores:    make(map[string][]float64, len(subjects)),
		SubjectMeans:     make(map[string]null.Float64, len(subjects)),
		GeneralByStudent: make(map[string]null.Float64, len(roster)),
	}

	for _, sub := range subjects {
		scores := make([]float64, 0, len(roster))
		for _, st := range roster {
			if avg := grade.SubjectAverage(entries, st.ID, sub.ID, term); avg.Valid {
				scores = append(scores, avg.Float64)
			}
		}
		sortDesc(scores)
		stats.SubjectScores[sub.ID] = scores
		stats.SubjectMeans[sub.ID] = Mean(scores)
	}

	generals := make([]float64, 0, len(roster))
	for _, st := range roster {
		general := GeneralAverage(entries, subjects, st.ID, term)
		stats.GeneralByStudent[st.ID] = general
		if general.Valid {
			generals = append(generals, general.Float64)
		}
	}
	sortDesc(generals)
	stats.GeneralScores = generals
	stats.ClassGeneralAverage = Mean(generals)

	return stats
}

func sortDesc(xs []float64) {
	sort.Sort(sort.Reverse(sort.Float64Slice(xs)))
}
