package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/elC0mpa/finops-doctor/config"
	"github.com/elC0mpa/finops-doctor/internal/logging"
	awsconfig "github.com/elC0mpa/finops-doctor/service/aws/config"
	awscostexplorer "github.com/elC0mpa/finops-doctor/service/aws/costexplorer"
	awselb "github.com/elC0mpa/finops-doctor/service/aws/elb"
	awsinventory "github.com/elC0mpa/finops-doctor/service/aws/inventory"
	awssts "github.com/elC0mpa/finops-doctor/service/aws/sts"
	awstelemetry "github.com/elC0mpa/finops-doctor/service/aws/telemetry"
	"github.com/elC0mpa/finops-doctor/service/orchestrator"
	"github.com/elC0mpa/finops-doctor/service/scanner"
	"github.com/elC0mpa/finops-doctor/utils"
)

var rootCmd = &cobra.Command{
	Use:   "finops-doctor",
	Short: "finops-doctor diagnoses cloud spend and resource waste",
	Long:  `finops-doctor inspects an AWS account for billing trends, cost anomalies and wasteful resources such as idle instances, unattached volumes and orphaned snapshots.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	utils.DrawBanner()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("region", "r", "", "AWS region")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "AWS shared config profile")
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to a YAML configuration file")
}

// buildOrchestrator assembles the full service graph from the resolved
// configuration. Flags override the configuration file.
func buildOrchestrator(ctx context.Context, cmd *cobra.Command) (orchestrator.OrchestratorService, error) {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if region, _ := cmd.Flags().GetString("region"); region != "" {
		cfg.Region = region
	}
	if profile, _ := cmd.Flags().GetString("profile"); profile != "" {
		cfg.Profile = profile
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		return nil, err
	}

	awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, cfg.Region, cfg.Profile)
	if err != nil {
		return nil, err
	}

	identityService := awssts.NewService(awsCfg)
	costService := awscostexplorer.NewService(awsCfg)
	inventoryService := awsinventory.NewService(awsCfg)
	telemetryService := awstelemetry.NewService(awsCfg)
	loadBalancerService := awselb.NewService(awsCfg)

	scanService := scanner.NewService(inventoryService, telemetryService, cfg.Pricing)

	return orchestrator.NewService(
		identityService,
		costService,
		scanService,
		loadBalancerService,
		cfg.Scan,
	), nil
}
