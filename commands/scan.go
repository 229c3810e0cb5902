package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/elC0mpa/finops-doctor/model"
	"github.com/elC0mpa/finops-doctor/service/orchestrator"
)

var scanCmd = &cobra.Command{
	Use:   "scan <resource-type>",
	Short: "Scan one resource type for waste",
	Long: `Scans the resources of one type and classifies each as wasteful or
not. Supported resource types: ` + supportedTypes() + `.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		resourceType := model.ResourceType(args[0])
		if !resourceType.Valid() {
			fmt.Fprintf(os.Stderr, "Error: unsupported resource type %q (supported: %s)\n", args[0], supportedTypes())
			os.Exit(1)
		}

		runWorkflow(cmd, func(ctx context.Context, orch orchestrator.OrchestratorService) error {
			return orch.ScanResourceType(ctx, resourceType)
		})
	},
}

var wasteCmd = &cobra.Command{
	Use:   "waste",
	Short: "Scan every resource type and summarize the monthly waste",
	Run: func(cmd *cobra.Command, args []string) {
		runWorkflow(cmd, func(ctx context.Context, orch orchestrator.OrchestratorService) error {
			return orch.WasteReport(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(wasteCmd)
}

func supportedTypes() string {
	names := make([]string, 0, len(model.ScannableResourceTypes))
	for _, rt := range model.ScannableResourceTypes {
		names = append(names, string(rt))
	}
	return strings.Join(names, ", ")
}
