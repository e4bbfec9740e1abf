package testutil

import (
	"testing"

	"github.com/udisondev/arkdps/internal/model"
)

// AssertSweepSorted проверяет, что обе серии отсортированы по dps по возрастанию,
// а при равных dps сохраняют порядок оси.
func AssertSweepSorted(tb testing.TB, resp model.SweepResponse) {
	tb.Helper()

	for i := 1; i < len(resp.ByDef); i++ {
		prev, cur := resp.ByDef[i-1], resp.ByDef[i]
		if cur.DPS < prev.DPS || (cur.DPS == prev.DPS && cur.Def < prev.Def) {
			tb.Fatalf("byDef not sorted at %d: %+v then %+v", i, prev, cur)
		}
	}
	for i := 1; i < len(resp.ByRes); i++ {
		prev, cur := resp.ByRes[i-1], resp.ByRes[i]
		if cur.DPS < prev.DPS || (cur.DPS == prev.DPS && cur.Res < prev.Res) {
			tb.Fatalf("byRes not sorted at %d: %+v then %+v", i, prev, cur)
		}
	}
}

// AssertSweepAggregates проверяет totalDps и averageDps по серии byDef.
func AssertSweepAggregates(tb testing.TB, resp model.SweepResponse) {
	tb.Helper()

	if len(resp.ByDef) == 0 {
		tb.Fatalf("byDef is empty")
	}
	var total float64
	for _, p := range resp.ByDef {
		total += p.DPS
	}
	avg := total / float64(len(resp.ByDef))
	if !closeTo(total, resp.TotalDPS) {
		tb.Fatalf("totalDps mismatch: expected %v, got %v", total, resp.TotalDPS)
	}
	if !closeTo(avg, resp.AverageDPS) {
		tb.Fatalf("averageDps mismatch: expected %v, got %v", avg, resp.AverageDPS)
	}
}

// closeTo сравнивает с относительной точностью: порядок суммирования
// в sweep отличается от порядка здесь.
func closeTo(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	scale := max(1, a, -a, b, -b)
	return d <= 1e-9*scale
}
