package adapter

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapaudit/pkg/core"
)

// VectorLiteral formats v as a pgvector/DuckDB array literal: [0.1,0.2,...].
func VectorLiteral(v []float32) string {
	var sb strings.Builder
	sb.Grow(len(v)*10 + 2)
	sb.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(float64(f), 'g', -1, 32))
	}
	sb.WriteByte(']')
	return sb.String()
}

// CosineDistance returns 1 - cosine similarity, the measure pgvector's <=> uses.
// Vectors of different length or with zero magnitude are at distance 1.
func CosineDistance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 1
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}

// FocusMatches reports whether category contains focus, ignoring case.
// An empty focus matches nothing.
func FocusMatches(category, focus string) bool {
	if focus == "" {
		return false
	}
	return strings.Contains(strings.ToLower(category), strings.ToLower(focus))
}

// RankMatches orders matches by focus boost, then distance, then key, and
// trims the result to limit when limit > 0.
func RankMatches(matches []core.Match, focus string, limit int) []core.Match {
	sort.SliceStable(matches, func(i, j int) bool {
		fi, fj := FocusMatches(matches[i].Category, focus), FocusMatches(matches[j].Category, focus)
		if fi != fj {
			return fi
		}
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].ID < matches[j].ID
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// DefaultSearchLimit is used when a query does not set a positive limit.
const DefaultSearchLimit = 4

// LikePattern turns focus into a case-insensitive substring pattern for
// ILIKE ... ESCAPE '\'. An empty focus yields an empty pattern.
func LikePattern(focus string) string {
	if focus == "" {
		return ""
	}
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(focus) + "%"
}

// NullableVector returns the literal for v, or nil so the column stays NULL.
func NullableVector(v []float32) any {
	if len(v) == 0 {
		return nil
	}
	return VectorLiteral(v)
}
