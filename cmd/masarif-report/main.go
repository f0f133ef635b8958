// masarif-report renders a one-shot report from local CSV exports: ranked
// category totals per table plus the merged monthly income/expense view.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"masarif/internal/core"
	"masarif/internal/normalize"
	"masarif/internal/report"
	"masarif/internal/services"
	"masarif/internal/source/csvfile"
)

func main() {
	_ = godotenv.Load()

	expensesPath := flag.String("expenses", "", "path to the expenses CSV export")
	incomePath := flag.String("income", "", "path to the income CSV export")
	year := flag.Int("year", 0, "filter to a year (0 = all)")
	month := flag.Int("month", 0, "filter to a month, requires -year")
	day := flag.Int("day", 0, "filter to a day, requires -month (0 = whole month)")
	minYear := flag.Int("min-year", 0, "drop rows before this year (0 = keep all)")
	byExpenses := flag.String("by", "البند", "expenses category column")
	byIncome := flag.String("by-income", "المصدر", "income category column")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if *expensesPath == "" || *incomePath == "" {
		fmt.Fprintln(os.Stderr, "both -expenses and -income CSV paths are required")
		flag.Usage()
		os.Exit(2)
	}
	if *month != 0 && *year == 0 {
		fmt.Fprintln(os.Stderr, "-month requires -year")
		os.Exit(2)
	}

	ctx := context.Background()
	reader := csvfile.New(map[core.Role]string{
		core.Expenses: *expensesPath,
		core.Income:   *incomePath,
	})
	normalizer := normalize.New(normalize.Options{MinYear: *minYear})
	dashboard := services.NewDashboard(reader, normalizer, map[core.Role]string{
		core.Expenses: *byExpenses,
		core.Income:   *byIncome,
	})

	filter := services.Filter{Year: *year, Month: *month, Day: *day}

	expenses, income, err := dashboard.Datasets(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load: %v\n", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	printTotals(w, filter.Apply(expenses), *byExpenses)
	printTotals(w, filter.Apply(income), *byIncome)
	printMonthly(w, income, expenses)
	w.Flush()
}

func printTotals(w *tabwriter.Writer, ds core.Dataset, by string) {
	fmt.Fprintf(w, "== %s (%d rows, %d dropped)\n", ds.Role, len(ds.Records), ds.Dropped)
	rows, err := report.GroupSum(ds, by)
	if err != nil {
		fmt.Fprintf(w, "  %v\n", err)
		return
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%.2f\n", row.Category, row.Total)
	}
	fmt.Fprintf(w, "total\t%.2f\n\n", ds.GrandTotal())
}

func printMonthly(w *tabwriter.Writer, income, expenses core.Dataset) {
	fmt.Fprintln(w, "== monthly summary")
	fmt.Fprintln(w, "period\tincome\texpenses\tnet")
	for _, row := range report.MonthlySummary(income, expenses) {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\n", row.PeriodKey, row.Income, row.Expense, row.Net)
	}
}
