package utils

import (
	"fmt"
	"time"

	"github.com/elC0mpa/finops-doctor/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// DrawScanTable renders one scan report. Wasteful findings come first
// and are colored red; resources with unknown utilization stay yellow.
func DrawScanTable(accountId string, report *model.ScanReport) {
	fmt.Printf("\n %s scan for account %s\n", text.FgHiWhite.Sprint(string(report.ResourceType)), text.FgBlue.Sprint(accountId))

	tw := table.Table{}
	tw.AppendHeader(table.Row{
		"Resource",
		"State",
		"Wasteful",
		"Reason",
		"Est. Monthly Cost",
	})

	for _, finding := range sortFindings(report.Findings) {
		tw.AppendRow(findingRow(finding))
	}

	tw.AppendFooter(table.Row{
		"",
		"",
		fmt.Sprintf("%d / %d", report.WastefulCount, report.TotalResources),
		"Total waste",
		text.FgHiRed.Sprintf("%.2f USD", report.TotalEstimatedMonthlyCost),
	})

	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	fmt.Println(tw.Render())
}

// DrawWasteSummary renders the all-types report plus the orphaned load
// balancer list.
func DrawWasteSummary(summary model.WasteSummary) {
	fmt.Printf("\n %s\n", text.FgHiWhite.Sprint(" 🏥  FINOPS DOCTOR WASTE REPORT"))
	fmt.Printf(" Account ID: %s\n", text.FgBlue.Sprint(summary.AccountID))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	tw := table.Table{}
	tw.AppendHeader(table.Row{
		"Resource Type",
		"Scanned",
		"Wasteful",
		"Est. Monthly Waste",
	})

	for _, report := range summary.Reports {
		row := table.Row{
			string(report.ResourceType),
			report.TotalResources,
			report.WastefulCount,
			fmt.Sprintf("%.2f USD", report.TotalEstimatedMonthlyCost),
		}
		if report.WastefulCount > 0 {
			row[0] = text.FgRed.Sprintf("%s", string(report.ResourceType))
			row[3] = text.FgRed.Sprintf("%.2f USD", report.TotalEstimatedMonthlyCost)
		}
		tw.AppendRow(row)
	}

	tw.AppendFooter(table.Row{
		"Total",
		"",
		"",
		text.FgHiRed.Sprintf("%.2f USD", summary.TotalEstimatedMonthlyCost),
	})

	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	fmt.Println(tw.Render())

	drawOrphanedLoadBalancers(summary.OrphanedLoadBalancers)
}

func drawOrphanedLoadBalancers(orphaned []model.OrphanedLoadBalancer) {
	if len(orphaned) == 0 {
		fmt.Println(" No orphaned load balancers found")
		return
	}

	tw := table.Table{}
	tw.AppendHeader(table.Row{"Orphaned Load Balancer", "Type", "ARN"})

	for _, lb := range orphaned {
		tw.AppendRow(table.Row{
			text.FgRed.Sprintf("%s", lb.Name),
			lb.Type,
			lb.ARN,
		})
	}

	tw.SetStyle(table.StyleRounded)
	fmt.Println(tw.Render())
}

func findingRow(finding model.WasteFinding) table.Row {
	name := finding.Resource.Name()
	reason := finding.Reason

	// Stopped instances show how long they have been down when the
	// provider includes the transition timestamp in the state reason.
	if finding.Resource.State == model.StateStopped && finding.Resource.StateReason != "" {
		if transition, err := ParseTransitionDate(finding.Resource.StateReason); err == nil {
			days := int(time.Since(transition).Hours() / 24)
			reason = fmt.Sprintf("%s, stopped %d days", reason, days)
		}
	}

	cost := fmt.Sprintf("%.2f USD", finding.EstimatedMonthlyCost)

	if finding.Wasteful {
		return table.Row{
			text.FgRed.Sprintf("%s", name),
			finding.Resource.State,
			text.FgRed.Sprint("yes"),
			reason,
			text.FgRed.Sprintf("%s", cost),
		}
	}

	if finding.Reason == model.ReasonUtilizationUnknown {
		return table.Row{
			text.FgYellow.Sprintf("%s", name),
			finding.Resource.State,
			text.FgYellow.Sprint("unknown"),
			reason,
			cost,
		}
	}

	return table.Row{
		text.FgGreen.Sprintf("%s", name),
		finding.Resource.State,
		"no",
		reason,
		cost,
	}
}

// sortFindings orders wasteful findings first, then unknown, then
// healthy, preserving the collector order inside each group.
func sortFindings(findings []model.WasteFinding) []model.WasteFinding {
	ordered := make([]model.WasteFinding, 0, len(findings))

	for _, f := range findings {
		if f.Wasteful {
			ordered = append(ordered, f)
		}
	}
	for _, f := range findings {
		if !f.Wasteful && f.Reason == model.ReasonUtilizationUnknown {
			ordered = append(ordered, f)
		}
	}
	for _, f := range findings {
		if !f.Wasteful && f.Reason != model.ReasonUtilizationUnknown {
			ordered = append(ordered, f)
		}
	}

	return ordered
}
