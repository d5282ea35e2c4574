// Command prepline runs the text preprocessing pipeline over a file of
// records, one record per line.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/textkit/prepline/pkg/prepline/config"
	"github.com/textkit/prepline/pkg/prepline/pipeline"
)

var (
	cfgFile  string
	outFile  string
	useModel bool
)

var rootCmd = &cobra.Command{
	Use:   "prepline",
	Short: "Prepline - configuration-driven text preprocessing pipeline",
	Long: `Prepline turns a column of raw free-text records into a normalized,
filtered, phrase-aware token stream suitable for vocabulary extraction
or model training.

Filters (lowercasing, synonym mapping, punctuation/numeric stripping,
stopword removal, short-word stripping, lemmatization) and phrase
detection are enabled per configuration file.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("prepline v0.1.0")
	},
}

var preprocessCmd = &cobra.Command{
	Use:   "preprocess <input-file>",
	Short: "Preprocess records and print the transformed strings",
	Long: `Read records (one per line) from the input file, apply the configured
filter chain and phrase detection, and write one processed string per
record. With --use-model the persisted phrase model is applied instead
of training a new one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Open(cfgFile)
		if err != nil {
			return err
		}

		records, err := readLines(args[0])
		if err != nil {
			return err
		}

		p := pipeline.New(pipeline.Options{Settings: settings})
		processed, err := p.Preprocess(cmd.Context(), records, useModel)
		if err != nil {
			return err
		}

		return writeLines(outFile, processed)
	},
}

var vocabCmd = &cobra.Command{
	Use:   "vocab <processed-file>",
	Short: "Print the vocabulary of already-processed records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		processed, err := readLines(args[0])
		if err != nil {
			return err
		}
		return writeLines(outFile, pipeline.Vocabulary(processed))
	},
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input %s: %w", path, err)
	}
	return lines, nil
}

func writeLines(path string, lines []string) (err error) {
	out := os.Stdout
	if path != "" {
		out, err = os.Create(path)
		if err != nil {
			return fmt.Errorf("create output %s: %w", path, err)
		}
		defer func() {
			if closeErr := out.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close output: %w", closeErr)
			}
		}()
	}

	w := bufio.NewWriter(out)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return w.Flush()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "configuration file")
	rootCmd.PersistentFlags().StringVar(&outFile, "out", "", "output file (default: stdout)")

	preprocessCmd.Flags().BoolVar(&useModel, "use-model", false, "apply the persisted phrase model instead of training")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(preprocessCmd)
	rootCmd.AddCommand(vocabCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
