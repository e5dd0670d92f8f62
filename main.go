// main.go
// Copyright (c) 2026 Ichijo Hodaka
// Coil SRF（球面テーパ付きらせんコイルの自己共振周波数）
// - 形状から Biot-Savart で磁界を格子上に求め、巻ごとの磁束から L
// - 巻間（隣接・1 つ飛ばし）の静電容量の直並列から C
// - f = 1 / (2π √(LC))
// - 設定の優先順位：フラグ > 環境変数 SRF_* > 設定ファイル > config.go / config_local.go
// - Ctrl-C で中断
//
// 表示は有効数字4桁（%.4g）

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ichijohodaka/coil-srf/coil"
)

func newLogger(level string) *slog.Logger {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(level)); err != nil {
		lv = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lv}))
}

// loadConfig は DefaultConfig の上に設定ファイル・環境変数・フラグを重ねる
func loadConfig(v *viper.Viper, cfg Config) (Config, error) {
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	cfg.Coil.Turns = v.GetInt("turns")
	cfg.Coil.Taper = v.GetFloat64("taper")
	cfg.Coil.Radius = v.GetFloat64("radius")
	cfg.Coil.WireRadius = v.GetFloat64("wire-radius")
	cfg.Coil.Freq = v.GetFloat64("freq")
	cfg.Coil.Segments = v.GetInt("segments")
	cfg.Coil.Step = v.GetFloat64("step")
	cfg.Coil.Margin = v.GetFloat64("margin")
	cfg.Workers = v.GetInt("workers")
	cfg.XLSXFile = v.GetString("xlsx")
	cfg.TSVFile = v.GetString("tsv")
	cfg.MaxPrint = v.GetInt("max-print")
	cfg.LogLevel = v.GetString("log-level")
	return cfg, nil
}

func newRootCmd() (*cobra.Command, *viper.Viper) {
	cfg := DefaultConfig()
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "coil-srf",
		Short:         "Self-resonant frequency of a spherical (tapered) solenoid coil",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(v, cfg)
			if err != nil {
				return err
			}
			return run(c)
		},
	}

	fl := cmd.Flags()
	fl.String("config", "", "config file (yaml / toml / json)")
	fl.Int("turns", cfg.Coil.Turns, "number of turns N")
	fl.Float64("taper", cfg.Coil.Taper, "tapering factor N1")
	fl.Float64("radius", cfg.Coil.Radius, "coil radius R [m]")
	fl.Float64("wire-radius", cfg.Coil.WireRadius, "wire radius r_w [m]")
	fl.Float64("freq", cfg.Coil.Freq, "low frequency f1 for the current phase model [Hz]")
	fl.Int("segments", cfg.Coil.Segments, "total segments s (multiple of 2N)")
	fl.Float64("step", cfg.Coil.Step, "Biot-Savart grid step [m]")
	fl.Float64("margin", cfg.Coil.Margin, "grid margin around the coil [m] (0: 2*step)")
	fl.Int("workers", cfg.Workers, "parallel workers (0: number of CPUs)")
	fl.String("xlsx", cfg.XLSXFile, "xlsx report file")
	fl.String("tsv", cfg.TSVFile, "per-turn tsv file")
	fl.Int("max-print", cfg.MaxPrint, "max turns shown in the console table (0: all)")
	fl.String("log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	v.SetEnvPrefix("SRF")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fl); err != nil {
		panic(err)
	}
	return cmd, v
}

func run(cfg Config) error {
	log := newLogger(cfg.LogLevel)
	slog.SetDefault(log)

	// Ctrl-C 対応
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			fmt.Println("\n[Ctrl-C] interrupt received. stopping...")
			cancel()
		case <-ctx.Done():
		}
	}()

	runID := uuid.NewString()
	p := cfg.Coil
	log.Info("start",
		"run", runID,
		"N", p.Turns, "N1", p.Taper, "R", p.Radius, "r_w", p.WireRadius,
		"f1", p.Freq, "s", p.Segments, "step", p.Step,
	)

	start := time.Now()
	res, err := coil.Compute(ctx, p, coil.Options{Workers: cfg.Workers, Logger: log})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	log.Info("done", "elapsed", elapsed.Round(time.Millisecond), "grid", res.GridPoints)

	PrintSummary(p, res)
	PrintTurnTable("=== turns ===", res, cfg.MaxPrint)
	PrintPairTable("=== pairs ===", res.Network)

	if cfg.TSVFile != "" {
		if err := SaveTurnsToTSV(cfg.TSVFile, res); err != nil {
			log.Error("tsv save error", "file", cfg.TSVFile, "error", err)
		} else {
			fmt.Println("tsv saved:", cfg.TSVFile)
		}
	}
	if cfg.XLSXFile != "" {
		if err := SaveToXLSX(cfg.XLSXFile, runID, p, res); err != nil {
			log.Error("xlsx save error", "file", cfg.XLSXFile, "error", err)
		} else {
			fmt.Println("xlsx saved:", cfg.XLSXFile)
		}
	}
	return nil
}

func main() {
	cmd, _ := newRootCmd()
	if err := cmd.Execute(); err != nil {
		slog.Error("failed", "error", err)
		os.Exit(1)
	}
}
