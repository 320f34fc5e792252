package advisor

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/opnlabs/advisor/pkg/analyzer"
	"github.com/opnlabs/advisor/pkg/models"
	"github.com/opnlabs/advisor/pkg/utils"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	pipelineFilePath string
	jsonOutput       bool
	outputDir        string
	maxJobsPerStage  int
)

var rootCmd = &cobra.Command{
	Use:   "advisor [files...]",
	Short: "Advisor analyzes Azure Pipelines definitions",
	Long: `Advisor parses Azure Pipelines YAML definitions ( default azure-pipelines.yml ),
computes structural metrics and prints recommendations based on a fixed set of
heuristics. Multiple files are analyzed concurrently.`,

	Run: func(cmd *cobra.Command, args []string) {
		paths := args
		if len(paths) == 0 {
			paths = []string{pipelineFilePath}
		}
		analyze(paths)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&pipelineFilePath, "pipeline-file-path", "f", "azure-pipelines.yml", "Path to the pipeline definition.")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print results as JSON.")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Write a JSON report per input file to this directory.")
	rootCmd.Flags().IntVar(&maxJobsPerStage, "max-jobs-per-stage", analyzer.DefaultMaxJobsPerStage, "Job count above which a stage is flagged for splitting.")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func analyze(paths []string) {
	a := analyzer.New(analyzer.WithMaxJobsPerStage(maxJobsPerStage))

	results := make([]models.AnalysisResult, len(paths))
	var eg errgroup.Group
	for i, path := range paths {
		func(i int, path string) {
			eg.Go(func() error {
				contents, err := os.ReadFile(filepath.Clean(path))
				if err != nil {
					return err
				}

				result, err := a.Analyze(string(contents))
				if err != nil {
					return fmt.Errorf("%s: %v", path, err)
				}
				results[i] = result
				return nil
			})
		}(i, path)
	}
	if err := eg.Wait(); err != nil {
		log.Fatal(err)
	}

	printer := utils.NewResultPrinter(os.Stdout)
	for i, path := range paths {
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(results[i]); err != nil {
				log.Fatal(err)
			}
		} else {
			printer.Print(path, results[i])
		}

		if outputDir != "" {
			reportPath, err := utils.WriteReport(outputDir, path, results[i])
			if err != nil {
				log.Fatal(err)
			}
			log.Printf("report written to %s", reportPath)
		}
	}
}
