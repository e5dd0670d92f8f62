// config.go
package main

import (
	"github.com/ichijohodaka/coil-srf/coil"
)

// LocalOverride は config_local.go から差し替える（nil なら何もしない）
var LocalOverride func(cfg *Config)

// Config は「ユーザー設定」をまとめたもの
type Config struct {
	Coil     coil.Params
	Workers  int    // 0 なら CPU 数
	XLSXFile string // "" なら保存しない
	TSVFile  string // "" なら保存しない（巻ごとの値）
	MaxPrint int    // コンソールに表示する巻の最大数（0なら制限なし）
	LogLevel string // debug / info / warn / error
}

// ============================================================
// ユーザー設定（ここから）
// ============================================================

func DefaultConfig() Config {
	// コイル形状（球面テーパ付きらせん）
	p := coil.DefaultParams()

	// 巻数 N と テーパ係数 N1（N1 >= 2N なら極を越えない）
	p.Turns = 5
	p.Taper = 2

	// 球の半径と線の半径 [m]
	p.Radius = 0.05
	p.WireRadius = 5e-4

	// 電流の位相遅れを決める低周波 [Hz]
	p.Freq = 1e6

	// 分割数（2N の倍数）。多くすると精度が上がるが遅くなる
	p.Segments = 200

	// Biot-Savart のグリッド間隔 [m]（半分にすると計算時間は約 8 倍）
	p.Step = 0.002

	// 余白（0 なら 2*Step）
	p.Margin = 0

	// xlsx 出力（空文字なら保存しない）
	xlsxFile := "result.xlsx"
	xlsxFile = ""

	// tsv 出力（"" なら保存しない）
	tsvFile := "turns.tsv"
	tsvFile = ""

	cfg := Config{
		Coil:     p,
		Workers:  0,
		XLSXFile: xlsxFile,
		TSVFile:  tsvFile,
		MaxPrint: 20,
		LogLevel: "info",
	}

	// ============================================================
	// ユーザー設定（ここまで）
	// ============================================================

	if LocalOverride != nil {
		LocalOverride(&cfg)
	}
	return cfg
}
