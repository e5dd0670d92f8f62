// config.go は直接さわらずにここで差し替え

package main

func init() {
	LocalOverride = func(cfg *Config) {

		// コメントアウトでデフォルト値が使われる。

		// 巻数・テーパ（N1 >= 2N で極を越えない普通の球面コイル）
		// cfg.Coil.Turns = 10
		// cfg.Coil.Taper = 20

		// 分割数は 2N の倍数
		// cfg.Coil.Segments = 400

		// グリッド間隔 [m]（細かくすると遅い）
		// cfg.Coil.Step = 0.001

		// 並列数（0 なら CPU 数）
		cfg.Workers = 0

		// 結果表示を制限。ファイルには全部保存される。
		cfg.MaxPrint = 10

		// xlsx / tsv 出力のファイル名（"" なら保存しない）
		cfg.XLSXFile = ""
		cfg.TSVFile = ""
	}
}
