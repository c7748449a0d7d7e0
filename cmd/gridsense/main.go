package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gridsense/adapters/excel"
	"gridsense/adapters/markdown"
	"gridsense/domain/structure"
	"gridsense/internal"
	"gridsense/internal/analysis"
	"gridsense/internal/config"
	"gridsense/ui"
)

func main() {
	// .env is optional; real env vars win either way
	godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "gridsense",
		Short: "Structural inference for schema-free spreadsheets",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var quick bool
	var asJSON bool
	var sheetName string

	cmd := &cobra.Command{
		Use:   "analyze [workbook]",
		Short: "Infer the structure of a spreadsheet file",
		Long: `Analyze a .xlsx, .xlsm or .csv file and report each sheet's header
position, data region, and field types.

Example: gridsense analyze sales.xlsx --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], sheetName, quick, asJSON)
		},
	}

	cmd.Flags().BoolVar(&quick, "quick", false, "Use the reduced scan window for large files")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the raw StructureReport JSON instead of Markdown")
	cmd.Flags().StringVar(&sheetName, "sheet", "", "Analyze a single named sheet")

	return cmd
}

func runAnalyze(cmd *cobra.Command, path, sheetName string, quick, asJSON bool) error {
	appCfg, err := config.Load()
	if err != nil {
		return err
	}

	workbook, err := excel.OpenWorkbook(path)
	if err != nil {
		return err
	}
	defer workbook.Close()

	cfg := appCfg.ToAnalysisConfig()
	if quick {
		cfg = structure.QuickConfig().Normalize()
	}

	engine := analysis.NewEngine(structure.DefaultHeuristics(), internal.NewLogger(appCfg.LogLevel))

	var reports []*structure.StructureReport
	if sheetName != "" {
		sheet, err := workbook.Sheet(sheetName)
		if err != nil {
			return err
		}
		report, err := engine.AnalyzeSheet(cmd.Context(), sheet, cfg)
		if err != nil {
			return err
		}
		reports = append(reports, report)
	} else {
		reports, err = engine.AnalyzeWorkbook(cmd.Context(), workbook, cfg)
		if err != nil {
			return err
		}
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	renderer := markdown.NewRenderer()
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderMarkdown(reports, path))
	return nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP analysis service",
		Long: `Start the web server exposing POST /api/analyze for workbook uploads.

The port comes from the PORT environment variable (default 8080).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			appCfg, err := config.Load()
			if err != nil {
				return err
			}

			engine := analysis.NewEngine(structure.DefaultHeuristics(), internal.NewLogger(appCfg.LogLevel))
			app := ui.NewApp(appCfg, engine, markdown.NewRenderer())
			return app.Start()
		},
	}
}
