package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"sgsalary/adapters/export"
	"sgsalary/domain/market"
	"sgsalary/internal/analytics"
	"sgsalary/internal/config"
	"sgsalary/internal/errors"
	"sgsalary/internal/pipeline"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "report",
		Short: "Static salary benchmarking report over a job postings dataset",
	}

	rootCmd.AddCommand(newRunCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var datasetFile string
	var exportPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compute and print the market benchmark tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if datasetFile == "" {
				datasetFile = cfg.Data.DatasetFile
			}

			result, err := pipeline.LoadAndClean(datasetFile, pipeline.Options{
				SalaryBandMin: cfg.Pipeline.SalaryBandMin,
				SalaryBandMax: cfg.Pipeline.SalaryBandMax,
			})
			if err != nil {
				return err
			}

			engine := analytics.NewEngine(result.Postings, analytics.Options{
				MinSampleSize:  cfg.Pipeline.MinSampleSize,
				DemandMinCount: cfg.Pipeline.DemandMinCount,
			})

			if err := printReport(cmd.OutOrStdout(), engine, result.Report); err != nil {
				return err
			}

			if exportPath != "" {
				writer := export.NewReportWriter(engine)
				reportID, err := writer.Write(exportPath, nil)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nWorkbook written to %s (report %s)\n", exportPath, reportID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&datasetFile, "dataset", "", "path to the postings CSV/XLSX (defaults to DATASET_FILE)")
	cmd.Flags().StringVar(&exportPath, "export", "", "write an XLSX workbook of the tables to this path")
	return cmd
}

func printReport(out io.Writer, engine *analytics.Engine, report pipeline.Report) error {
	summary, err := engine.Summarize(nil)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Singapore Salary Benchmark\n")
	fmt.Fprintf(out, "==========================\n\n")
	fmt.Fprintf(out, "Rows: %d loaded, %d kept, %d dropped (%d without salary)\n\n",
		report.RowsIn, report.RowsKept, report.Dropped(), report.MissingSalary)
	fmt.Fprintf(out, "Median salary:    $%.0f\n", summary.MedianSalary)
	fmt.Fprintf(out, "Mean salary:      $%.0f\n", summary.MeanSalary)
	fmt.Fprintf(out, "Middle half:      $%.0f - $%.0f\n\n", summary.P25Salary, summary.P75Salary)

	if corr, err := engine.ExperienceSalaryCorrelation(nil); err == nil {
		fmt.Fprintf(out, "Experience-salary correlation: %.3f (%s), ~$%.0f per additional year\n\n",
			corr.Coefficient, corr.Strength, corr.Slope)
	} else if errors.GetCode(err) == errors.CodeInsufficientData {
		fmt.Fprintf(out, "Experience-salary correlation: not enough data\n\n")
	}

	if err := printAggregateTable(out, engine, "By position level", market.GroupByLevel); err != nil {
		return err
	}
	if err := printAggregateTable(out, engine, "By experience bracket", market.GroupByBracket); err != nil {
		return err
	}

	outliers := engine.DetectOutliersFiltered(nil)
	fmt.Fprintf(out, "Outliers (IQR rule): %d postings outside $%.0f - $%.0f\n",
		len(outliers.Outliers), outliers.LowerFence, outliers.UpperFence)

	return nil
}

func printAggregateTable(out io.Writer, engine *analytics.Engine, title string, dim market.GroupDim) error {
	views, err := engine.Aggregate([]market.GroupDim{dim}, nil)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s\n", title)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Group\tMedian\tMean\tP25\tP75\tCount\t")
	for _, v := range views {
		label := v.Category
		if label == "" {
			label = string(v.Level)
		}
		if label == "" {
			label = string(v.Bracket)
		}
		flag := ""
		if v.LowConfidence {
			flag = " *"
		}
		fmt.Fprintf(tw, "%s%s\t$%.0f\t$%.0f\t$%.0f\t$%.0f\t%d\t\n",
			label, flag, v.Median, v.Mean, v.P25, v.P75, v.Count)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "(* below minimum sample size)\n\n")
	return nil
}
