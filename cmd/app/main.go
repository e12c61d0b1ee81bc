package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"MacroCast/internal/domain/models"
	"MacroCast/internal/service/fred"
	"MacroCast/internal/services/regression"
	"MacroCast/internal/usecase"
	"MacroCast/pkg/config"
	"MacroCast/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	lg, err := logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		log.Fatalf("logger setup failed: %v", err)
	}

	series := make([]models.SeriesID, len(cfg.FRED.Series))
	for i, s := range cfg.FRED.Series {
		series[i] = models.SeriesID(s)
	}
	end, _ := cfg.EndMonth()

	uc := usecase.NewReportUseCase(
		fred.New(cfg.FRED.APIKey, cfg.FRED.BaseURL, cfg.FRED.Timeout),
		regression.OLS{},
		lg,
		usecase.Params{
			Series: series,
			Start:  cfg.StartMonth(),
			End:    end,
			Cutoff: cfg.Cutoff(),
		},
	)

	report, err := uc.Run(context.Background())
	if err != nil {
		lg.Error("run failed", logger.Error(err))
		os.Exit(1)
	}

	printAccuracy(os.Stdout, "In-sample accuracy (train window)", report.InSample)
	printAccuracy(os.Stdout, "Out-of-sample accuracy (test window)", report.OutOfSample)

	if path := cfg.Output.ReportPath; path != "" {
		b, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			lg.Error("encode report", logger.Error(err))
			os.Exit(1)
		}
		if err := os.WriteFile(path, b, 0o644); err != nil {
			lg.Error("write report", logger.Error(err))
			os.Exit(1)
		}
		lg.Info("report written", logger.String("path", path))
	}
}

func printAccuracy(w io.Writer, title string, rows []models.AccuracyRow) {
	fmt.Fprintf(w, "\n%s\n", title)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "model\tMAPE\tRMSE\tMAE\tn\texcluded")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.4f\t%d\t%d\n", r.Model, r.MAPE, r.RMSE, r.MAE, r.N, r.Excluded)
	}
	tw.Flush()
}
