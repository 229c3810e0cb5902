package utils

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/elC0mpa/finops-doctor/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func DrawCostTable(accountId string, lastTotalCost, currentTotalCost string, lastMonthGroups, currentMonthGroups *model.CostInfo) {
	currentMonthHeader := fmt.Sprintf("Current Month\n(%s\n%s)", *currentMonthGroups.Start, *currentMonthGroups.End)
	lastMonthHeader := fmt.Sprintf("Last Month\n(%s\n%s)", *lastMonthGroups.Start, *lastMonthGroups.End)

	rowHeader := table.Row{
		"Account ID",
		"Service",
		lastMonthHeader,
		currentMonthHeader,
		"Difference",
	}

	tw := table.Table{}

	tw.AppendHeader(rowHeader)
	var rows []table.Row

	rows = append(rows, populateTotalsRow(lastTotalCost, currentTotalCost))

	orderedServicesCosts := orderCostServices(&currentMonthGroups.CostGroup)

	for _, group := range orderedServicesCosts {
		rows = append(rows, populateServiceRow(*lastMonthGroups, group))
	}

	halfRow := len(rows) / 2
	rows[halfRow][0] = text.FgBlue.Sprintf("%s", accountId)
	tw.AppendRows(rows)
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{
			Number:       1,
			VAlignHeader: text.VAlignMiddle,
		},
		{
			Number:       2,
			VAlignHeader: text.VAlignMiddle,
		},
		{
			Number: 3,
			Align:  text.AlignRight,
		},
		{
			Number: 4,
			Align:  text.AlignRight,
		},
		{
			Number:       5,
			Align:        text.AlignRight,
			VAlignHeader: text.VAlignMiddle,
		},
	})
	fmt.Println(tw.Render())
}

func DrawForecastTable(accountId string, forecast *model.CostForecast) {
	tw := table.Table{}

	tw.AppendHeader(table.Row{
		"Account ID",
		"Forecast Period",
		"Projected Spend",
		"80% Interval",
	})

	period := fmt.Sprintf("%s to %s", derefOr(forecast.Start, "?"), derefOr(forecast.End, "?"))
	interval := fmt.Sprintf("%.2f - %.2f %s", forecast.LowerBound, forecast.UpperBound, forecast.Unit)

	tw.AppendRow(table.Row{
		text.FgBlue.Sprintf("%s", accountId),
		period,
		text.FgHiYellow.Sprintf("%.2f %s", forecast.Amount, forecast.Unit),
		interval,
	})

	tw.SetStyle(table.StyleRounded)
	fmt.Println(tw.Render())
}

func DrawAnomalyTable(accountId string, anomalies []model.CostAnomaly) {
	if len(anomalies) == 0 {
		fmt.Printf("\n No cost anomalies detected for account %s\n", text.FgBlue.Sprint(accountId))
		return
	}

	tw := table.Table{}

	tw.AppendHeader(table.Row{
		"Account ID",
		"Service",
		"Total Impact",
		"Max Impact",
		"Start",
		"End",
	})

	for i, anomaly := range anomalies {
		account := ""
		if i == len(anomalies)/2 {
			account = text.FgBlue.Sprintf("%s", accountId)
		}
		tw.AppendRow(table.Row{
			account,
			text.FgRed.Sprintf("%s", anomaly.Service),
			fmt.Sprintf("%.2f", anomaly.TotalImpact),
			fmt.Sprintf("%.2f", anomaly.MaxImpact),
			anomaly.StartDate,
			anomaly.EndDate,
		})
	}

	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	fmt.Println(tw.Render())
}

func orderCostServices(costGroups *model.CostGroup) []model.ServiceCost {
	sortedServices := make([]model.ServiceCost, 0, len(*costGroups))
	for key, group := range *costGroups {
		sortedServices = append(sortedServices, model.ServiceCost{
			Name:   key,
			Amount: group.Amount,
			Unit:   group.Unit,
		})
	}

	sort.Slice(sortedServices, func(i, j int) bool {
		return sortedServices[i].Amount > sortedServices[j].Amount
	})

	return sortedServices
}

func populateTotalsRow(lastTotalCost, currentTotalCost string) table.Row {
	currentTotalAmount, currentUnit := splitCostString(currentTotalCost)
	lastTotalAmount, _ := splitCostString(lastTotalCost)

	difference := currentTotalAmount - lastTotalAmount

	row := make(table.Row, 5)
	row[0] = ""
	row[1] = text.FgHiGreen.Sprint("Total Costs")
	row[2] = text.FgHiYellow.Sprintf("%s", lastTotalCost)
	row[3] = text.FgHiGreen.Sprintf("%s", currentTotalCost)
	row[4] = text.FgHiGreen.Sprintf("%.2f %s", difference, currentUnit)

	if difference > 0 {
		row[3] = text.FgHiRed.Sprintf("%s", currentTotalCost)
		row[1] = text.FgHiRed.Sprintf("Total Costs")
		row[4] = text.FgHiRed.Sprintf("%.2f %s", difference, currentUnit)
	}

	return row
}

func populateServiceRow(lastMonthGroups model.CostInfo, currentMonthGroup model.ServiceCost) table.Row {
	row := make(table.Row, 5)

	serviceName := currentMonthGroup.Name
	lastMonthGroup := lastMonthGroups.CostGroup[serviceName]

	currentServiceCost := fmt.Sprintf("%.2f %s", currentMonthGroup.Amount, currentMonthGroup.Unit)
	lastServiceCost := fmt.Sprintf("%.2f %s", lastMonthGroup.Amount, lastMonthGroup.Unit)

	difference := currentMonthGroup.Amount - lastMonthGroup.Amount

	row[0] = ""
	row[1] = text.FgGreen.Sprintf("%s", serviceName)
	row[2] = text.FgYellow.Sprintf("%s", lastServiceCost)
	row[3] = text.FgGreen.Sprintf("%s", currentServiceCost)
	row[4] = text.FgGreen.Sprintf("%.2f %s", difference, currentMonthGroup.Unit)

	if difference > 0 {
		row[1] = text.FgRed.Sprintf("%s", serviceName)
		row[3] = text.FgRed.Sprintf("%s", currentServiceCost)
		row[4] = text.FgRed.Sprintf("%.2f %s", difference, currentMonthGroup.Unit)
	}

	return row
}

// splitCostString parses strings like "123.45 USD". Unparseable totals
// render as zero rather than aborting the table.
func splitCostString(cost string) (float64, string) {
	parts := strings.SplitN(cost, " ", 2)

	amount, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, ""
	}

	unit := ""
	if len(parts) > 1 {
		unit = parts[1]
	}

	return amount, unit
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
