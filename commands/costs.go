package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/elC0mpa/finops-doctor/service/orchestrator"
	"github.com/elC0mpa/finops-doctor/utils"
)

var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Compare current month costs against last month, per service",
	Run: func(cmd *cobra.Command, args []string) {
		runWorkflow(cmd, func(ctx context.Context, orch orchestrator.OrchestratorService) error {
			return orch.CostReport(ctx)
		})
	},
}

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Chart the total spend of the last six months",
	Run: func(cmd *cobra.Command, args []string) {
		runWorkflow(cmd, func(ctx context.Context, orch orchestrator.OrchestratorService) error {
			return orch.CostTrend(ctx)
		})
	},
}

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Project spend for the upcoming months",
	Run: func(cmd *cobra.Command, args []string) {
		months, _ := cmd.Flags().GetInt("months")
		runWorkflow(cmd, func(ctx context.Context, orch orchestrator.OrchestratorService) error {
			return orch.CostForecast(ctx, months)
		})
	},
}

var anomaliesCmd = &cobra.Command{
	Use:   "anomalies",
	Short: "List cost anomalies detected by the provider",
	Run: func(cmd *cobra.Command, args []string) {
		days, _ := cmd.Flags().GetInt("days")
		runWorkflow(cmd, func(ctx context.Context, orch orchestrator.OrchestratorService) error {
			return orch.CostAnomalies(ctx, days)
		})
	},
}

func init() {
	forecastCmd.Flags().Int("months", 1, "number of months to forecast")
	anomaliesCmd.Flags().Int("days", 30, "lookback window in days")

	rootCmd.AddCommand(costsCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(anomaliesCmd)
}

func runWorkflow(cmd *cobra.Command, workflow func(context.Context, orchestrator.OrchestratorService) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	utils.StartSpinner()
	defer utils.StopSpinner()

	orch, err := buildOrchestrator(ctx, cmd)
	if err != nil {
		utils.StopSpinner()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := workflow(ctx, orch); err != nil {
		utils.StopSpinner()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
