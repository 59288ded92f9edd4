package timeseries

import (
	"fmt"
	"sort"
)

// PivotTable is a 2D cross-tabulation keyed by (row category, column
// category). Combinations absent from the source are never materialized, for
// every aggregation function including sum and count; Value reports them
// with ok=false. Rows and Cols list the observed categories sorted
// ascending.
type PivotTable struct {
	Rows  []string
	Cols  []string
	cells map[string]map[string]float64
}

// Value returns the aggregated value at (row, col). The second return is
// false when the combination never occurred in the source table.
func (p PivotTable) Value(row, col string) (float64, bool) {
	byCol, ok := p.cells[row]
	if !ok {
		return 0, false
	}
	v, ok := byCol[col]
	return v, ok
}

// Len returns the number of materialized cells.
func (p PivotTable) Len() int {
	n := 0
	for _, byCol := range p.cells {
		n += len(byCol)
	}
	return n
}

// Heatmap shapes the pivot as the 2D mapping the heatmap collaborator
// expects: one row per Rows entry, one value per Cols entry, with the
// undefined marker in unmaterialized cells.
func (p PivotTable) Heatmap() [][]float64 {
	out := make([][]float64, len(p.Rows))
	for i, row := range p.Rows {
		out[i] = make([]float64, len(p.Cols))
		for j, col := range p.Cols {
			v, ok := p.Value(row, col)
			if !ok {
				v = Undefined()
			}
			out[i][j] = v
		}
	}
	return out
}

// Pivot reshapes the long-format table into a cross-tabulation: records
// group by their (indexLabel, columnsLabel) pair and fn collapses each
// group's valueField. Records missing either label are skipped; records
// missing the value field count toward nothing.
func Pivot(t Table, indexLabel, columnsLabel, valueField string, fn AggFunc) (PivotTable, error) {
	if indexLabel == "" || columnsLabel == "" {
		return PivotTable{}, fmt.Errorf("pivot: index and columns labels are required")
	}

	type cellAgg struct {
		sum   float64
		first float64
		count int
	}

	cells := make(map[string]map[string]*cellAgg)
	for _, r := range t.records {
		row, ok := r.Labels[indexLabel]
		if !ok {
			continue
		}
		col, ok := r.Labels[columnsLabel]
		if !ok {
			continue
		}
		v, ok := r.Metrics[valueField]
		if !ok || IsUndefined(v) {
			continue
		}
		byCol, ok := cells[row]
		if !ok {
			byCol = make(map[string]*cellAgg)
			cells[row] = byCol
		}
		agg, ok := byCol[col]
		if !ok {
			agg = &cellAgg{first: v}
			byCol[col] = agg
		}
		agg.sum += v
		agg.count++
	}

	out := PivotTable{cells: make(map[string]map[string]float64, len(cells))}
	colSet := make(map[string]struct{})
	for row, byCol := range cells {
		out.Rows = append(out.Rows, row)
		outCols := make(map[string]float64, len(byCol))
		for col, agg := range byCol {
			colSet[col] = struct{}{}
			switch fn {
			case AggMean:
				outCols[col] = agg.sum / float64(agg.count)
			case AggFirst:
				outCols[col] = agg.first
			case AggCount:
				outCols[col] = float64(agg.count)
			default:
				outCols[col] = agg.sum
			}
		}
		out.cells[row] = outCols
	}

	sort.Strings(out.Rows)
	for col := range colSet {
		out.Cols = append(out.Cols, col)
	}
	sort.Strings(out.Cols)

	return out, nil
}
