package sim

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/xuri/excelize/v2"
)

var reportHeader = []string{"Player", "CPU", "Trials", "Win %", "Loss %", "Draw %", "Mean Turns", "StdDev", "P50", "P90"}

// WriteTable prints one row per matchup as an aligned text table.
func WriteTable(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, h := range reportHeader {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, h)
	}
	fmt.Fprintln(tw)
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f\t%.1f\t%.1f\t%.2f\t%.2f\t%.1f\t%.1f\n",
			r.Matchup.Player.Label(), r.Matchup.CPU.Label(), r.Trials,
			r.WinRate()*100, rate(r.CpuWins, r.Trials)*100, r.DrawRate()*100,
			r.Turns.Mean, r.Turns.StdDev, r.Turns.P50, r.Turns.P90)
	}
	return tw.Flush()
}

// ExportXLSX writes the results to outDir as a dated workbook with a
// per-matchup sheet and a win-rate matrix sheet, returning the file path.
func ExportXLSX(outDir string, seed uint64, results []Result) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}
	outPath := filepath.Join(outDir, fmt.Sprintf("%s_duel_sim_%d.xlsx", time.Now().Format("20060102"), seed))

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Matchups"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return "", err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return "", err
	}
	pctStyle, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	if err != nil {
		return "", err
	}

	for i, h := range reportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	if err := f.SetCellStyle(sheet, "A1", "J1", headerStyle); err != nil {
		return "", err
	}

	for i, r := range results {
		row := i + 2
		values := []any{
			r.Matchup.Player.Label(), r.Matchup.CPU.Label(), r.Trials,
			r.WinRate(), rate(r.CpuWins, r.Trials), r.DrawRate(),
			r.Turns.Mean, r.Turns.StdDev, r.Turns.P50, r.Turns.P90,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}
	if len(results) > 0 {
		last := len(results) + 1
		if err := f.SetCellStyle(sheet, "D2", fmt.Sprintf("F%d", last), pctStyle); err != nil {
			return "", err
		}
	}
	if err := f.SetColWidth(sheet, "A", "B", 24); err != nil {
		return "", err
	}
	if err := f.SetColWidth(sheet, "C", "J", 12); err != nil {
		return "", err
	}

	if err := writeMatrix(f, results, headerStyle, pctStyle); err != nil {
		return "", err
	}

	if err := f.SaveAs(outPath); err != nil {
		return "", fmt.Errorf("saving %s: %w", outPath, err)
	}
	return outPath, nil
}

// writeMatrix adds a sheet with player loadouts as rows, CPU loadouts as
// columns and the player win rate in each cell.
func writeMatrix(f *excelize.File, results []Result, headerStyle, pctStyle int) error {
	sheet := "Win Matrix"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := map[string]int{}
	cols := map[string]int{}
	for _, r := range results {
		p, c := r.Matchup.Player.Label(), r.Matchup.CPU.Label()
		if _, ok := rows[p]; !ok {
			rows[p] = len(rows) + 2
			cell, _ := excelize.CoordinatesToCellName(1, rows[p])
			f.SetCellValue(sheet, cell, p)
		}
		if _, ok := cols[c]; !ok {
			cols[c] = len(cols) + 2
			cell, _ := excelize.CoordinatesToCellName(cols[c], 1)
			f.SetCellValue(sheet, cell, c)
		}
		cell, _ := excelize.CoordinatesToCellName(cols[c], rows[p])
		f.SetCellValue(sheet, cell, r.WinRate())
	}
	f.SetCellValue(sheet, "A1", "Player \\ CPU")

	if len(cols) == 0 {
		return nil
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(cols)+1, 1)
	if err := f.SetCellStyle(sheet, "A1", lastCol, headerStyle); err != nil {
		return err
	}
	lastCell, _ := excelize.CoordinatesToCellName(len(cols)+1, len(rows)+1)
	if err := f.SetCellStyle(sheet, "B2", lastCell, pctStyle); err != nil {
		return err
	}
	colName, _ := excelize.ColumnNumberToName(len(cols) + 1)
	return f.SetColWidth(sheet, "A", colName, 22)
}
