package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "channelpulse",
		Short: "Analyze a YouTube channel's content performance",
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	root.AddCommand(fetchCmd())
	root.AddCommand(analyzeCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(serveCmd())

	return root
}

func fetchCmd() *cobra.Command {
	var src string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the channel catalog into the local store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(src)
		},
	}

	cmd.Flags().StringVar(&src, "source", "api", "catalog source: api or feed")
	return cmd
}

func analyzeCmd() *cobra.Command {
	var (
		jsonOutput bool
		outFile    string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full analysis over the stored catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(jsonOutput, outFile)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON to stdout")
	cmd.Flags().StringVar(&outFile, "out", "", "also write full report JSON to this file")
	return cmd
}

func exportCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the analysis-ready table as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(outFile)
		},
	}

	cmd.Flags().StringVar(&outFile, "out", "", "output path (default: stdout)")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "server port (default: from config)")
	return cmd
}
