// output.go
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/xuri/excelize/v2"

	"github.com/ichijohodaka/coil-srf/coil"
)

func fmt4(x float64) string { return fmt.Sprintf("%10.4g", x) }

// 表示用：SI 接頭辞付き（有効数字4桁）
func fmtSI(x float64, unit string) string {
	v, prefix := humanize.ComputeSI(x)
	return fmt.Sprintf("%.4g %s%s", v, prefix, unit)
}

func PrintSummary(p coil.Params, res coil.Result) {
	fmt.Printf("\nN=%d  N1=%s  R=%s  r_w=%s  f1=%s\n",
		p.Turns, strings.TrimSpace(fmt4(p.Taper)), fmtSI(p.Radius, "m"), fmtSI(p.WireRadius, "m"), fmtSI(p.Freq, "Hz"))
	fmt.Printf("s=%d  step=%s  grid=%d^3\n", p.Segments, fmtSI(p.Step, "m"), res.GridPoints)
	fmt.Printf("L=%s  (mutual %s + internal %s)\n", fmtSI(res.L, "H"), fmtSI(res.Mutual, "H"), fmtSI(res.Internal, "H"))
	fmt.Printf("C=%s  (NN %s + 2nd-NN %s)\n", fmtSI(res.C, "F"), fmtSI(res.Network.NN.Total, "F"), fmtSI(res.Network.NextNN.Total, "F"))
	fmt.Printf("SRF=%s\n\n", fmtSI(res.SRF, "Hz"))
}

// printTable は罫線付きの表（No 列は左詰め、他は右詰め）
func printTable(title string, headers []string, rows [][]string) {
	fmt.Println(title)
	if len(rows) == 0 {
		fmt.Println("(none)")
		return
	}

	// 列幅を決定（ヘッダ or 中身の最大）
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for j, cell := range row {
			if len(cell) > widths[j] {
				widths[j] = len(cell)
			}
		}
	}

	// No以外は1文字詰める（右側の余白を削る）ための pad
	pad := func(col int) int {
		if col == 0 {
			return 2
		}
		return 1
	}

	printLine := func() {
		fmt.Print("+")
		for i, w := range widths {
			fmt.Print(strings.Repeat("-", w+pad(i)) + "+")
		}
		fmt.Println()
	}

	// ヘッダ行
	printLine()
	fmt.Print("|")
	for i, h := range headers {
		if i == 0 {
			fmt.Printf(" %-*s |", widths[i], h)
		} else {
			fmt.Printf(" %-*s|", widths[i], h)
		}
	}
	fmt.Println()
	printLine()

	// データ行
	for _, row := range rows {
		fmt.Print("|")
		for j, cell := range row {
			if j == 0 {
				fmt.Printf(" %*s |", widths[j], cell)
			} else {
				fmt.Printf(" %*s|", widths[j], cell)
			}
		}
		fmt.Println()
	}
	printLine()
	fmt.Println()
}

var turnHeaders = []string{"No", "l [m]", "I", "Φ [Wb]", "L [H]", "Lint [H]"}

func turnRow(res coil.Result, k int) []string {
	t := res.Turns[k]
	return []string{
		fmt.Sprintf("%d", k+1),
		fmt4(res.Lengths[k]),
		fmt4(t.Current),
		fmt4(t.Flux),
		fmt4(t.Inductance),
		fmt4(t.Internal),
	}
}

func PrintTurnTable(title string, res coil.Result, maxPrint int) {
	n := len(res.Turns)
	if maxPrint > 0 && n > maxPrint {
		n = maxPrint
	}
	rows := make([][]string, n)
	for k := range rows {
		rows[k] = turnRow(res, k)
	}
	printTable(title, turnHeaders, rows)
}

var pairHeaders = []string{"No", "pair", "Rc [m]", "p [m]", "C [F]"}

func PrintPairTable(title string, net coil.Network) {
	var rows [][]string
	for _, ch := range []coil.Chain{net.NN, net.NextNN} {
		for _, pr := range ch.Pairs {
			rows = append(rows, []string{
				fmt.Sprintf("%d", len(rows)+1),
				fmt.Sprintf("%d-%d", pr.A+1, pr.B+1),
				fmt4(pr.Radius),
				fmt4(pr.Pitch),
				fmt4(pr.Capacitance),
			})
		}
	}
	printTable(title, pairHeaders, rows)
}

func SaveToXLSX(filename, runID string, p coil.Params, res coil.Result) error {
	f := excelize.NewFile()

	// Summary
	summary := "Summary"
	f.SetSheetName("Sheet1", summary)

	kv := []struct {
		k string
		v any
	}{
		{"Run", runID},
		{"N", p.Turns},
		{"N1", p.Taper},
		{"R [m]", p.Radius},
		{"r_w [m]", p.WireRadius},
		{"f1 [Hz]", p.Freq},
		{"s", p.Segments},
		{"step [m]", p.Step},
		{"grid", res.GridPoints},
		{"L [H]", res.L},
		{"L mutual [H]", res.Mutual},
		{"L internal [H]", res.Internal},
		{"C [F]", res.C},
		{"C NN [F]", res.Network.NN.Total},
		{"C 2nd-NN [F]", res.Network.NextNN.Total},
		{"SRF [Hz]", res.SRF},
	}
	for i, x := range kv {
		row := i + 1
		a, _ := excelize.CoordinatesToCellName(1, row)
		b, _ := excelize.CoordinatesToCellName(2, row)
		f.SetCellValue(summary, a, x.k)
		f.SetCellValue(summary, b, x.v)
	}

	// Turns（xlsx は元単位で保存）
	writeRows := func(sheet string, headers []string, rows [][]any) {
		f.NewSheet(sheet)
		for col, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(sheet, cell, h)
		}
		for i, r := range rows {
			for col, v := range r {
				cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
				f.SetCellValue(sheet, cell, v)
			}
		}
	}

	turns := make([][]any, len(res.Turns))
	for k, t := range res.Turns {
		turns[k] = []any{k + 1, res.Lengths[k], t.Current, t.Flux, t.Inductance, t.Internal}
	}
	writeRows("Turns", turnHeaders, turns)

	var pairs [][]any
	for _, ch := range []coil.Chain{res.Network.NN, res.Network.NextNN} {
		for _, pr := range ch.Pairs {
			pairs = append(pairs, []any{len(pairs) + 1, fmt.Sprintf("%d-%d", pr.A+1, pr.B+1), pr.Radius, pr.Pitch, pr.Capacitance})
		}
	}
	writeRows("Pairs", pairHeaders, pairs)

	return f.SaveAs(filename)
}

// SaveTurnsToTSV は巻ごとの値を TSV で保存する
func SaveTurnsToTSV(filename string, res coil.Result) error {
	if filename == "" {
		return nil
	}

	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()

	w := csv.NewWriter(fp)
	w.Comma = '\t'

	if err := w.Write(turnHeaders); err != nil {
		return err
	}
	for k := range res.Turns {
		row := turnRow(res, k)
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
