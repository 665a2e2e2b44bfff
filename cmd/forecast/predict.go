package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Dan9191/spend-forecast/internal/config"
	"github.com/Dan9191/spend-forecast/internal/forecast"
	"github.com/Dan9191/spend-forecast/internal/models"
	"github.com/Dan9191/spend-forecast/internal/service"
	"github.com/spf13/cobra"
)

var (
	flagFile    string
	flagModel   string
	flagCap     float64
	flagTimeout time.Duration
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Print the actual/predicted timeline as JSON",
	RunE:  runPredict,
}

func init() {
	predictCmd.Flags().StringVarP(&flagFile, "file", "f", "-", `History document {"history": [...]}, "-" for stdin`)
	predictCmd.Flags().StringVarP(&flagModel, "model", "m", string(forecast.KindSeasonal), "Model: seasonal or linear")
	predictCmd.Flags().Float64Var(&flagCap, "cap", forecast.DefaultGrowthCap, "Growth cap for the seasonal model")
	predictCmd.Flags().DurationVar(&flagTimeout, "timeout", time.Minute, "Abort the fit after this long")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, _ []string) error {
	kind, err := forecast.ParseKind(flagModel)
	if err != nil {
		return err
	}
	if flagCap <= 0 {
		return errors.New("--cap must be positive")
	}

	in := cmd.InOrStdin()
	if flagFile != "-" {
		f, err := os.Open(flagFile)
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer f.Close()
		in = f
	}

	history, err := readHistory(in)
	if err != nil {
		return err
	}

	svc := service.NewService(nil, logger, &config.Config{ForecastModel: kind, GrowthCap: flagCap})
	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()

	timeline, err := svc.Forecast(ctx, history)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(timeline)
}

func readHistory(r io.Reader) ([]models.TransactionRecord, error) {
	var doc struct {
		History *[]models.TransactionRecord `json:"history"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil || doc.History == nil {
		return nil, forecast.NewInputError(forecast.MsgMissingHistory)
	}
	return *doc.History, nil
}
