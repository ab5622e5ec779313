package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"langtrends/domain/langreport"
	"langtrends/internal/config"
	"langtrends/internal/container"
	"langtrends/internal/errors"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	var file string

	rootCmd := &cobra.Command{
		Use:   "langtrends",
		Short: "Reshape the language popularity report and derive yearly rankings",
	}
	rootCmd.PersistentFlags().StringVarP(&file, "file", "f", "", "Report workbook or CSV (overrides REPORT_FILE)")

	rootCmd.AddCommand(
		newRunCmd(&file),
		newColumnsCmd(&file),
		newTidyCmd(&file),
		newTopCmd(&file),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(file string) (*config.Config, error) {
	_ = godotenv.Load()
	if file != "" {
		if err := os.Setenv("REPORT_FILE", file); err != nil {
			return nil, fmt.Errorf("set REPORT_FILE: %w", err)
		}
	}
	return config.Load()
}

// loadContainer wires every exporter, including the export database when configured
func loadContainer(ctx context.Context, file string, tune func(*config.Config)) (*container.Container, error) {
	cfg, err := loadConfig(file)
	if err != nil {
		return nil, err
	}
	if tune != nil {
		tune(cfg)
	}
	return container.New(ctx, cfg)
}

// loadReader wires only the source, for commands that never export
func loadReader(file string) (*container.Container, error) {
	cfg, err := loadConfig(file)
	if err != nil {
		return nil, err
	}
	return container.NewReadOnly(cfg)
}

func newRunCmd(file *string) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline and write every configured output",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContainer(cmd.Context(), *file, func(cfg *config.Config) {
				if outputDir != "" {
					cfg.Output.Dir = outputDir
				}
			})
			if err != nil {
				return err
			}
			defer c.Close()

			result, err := c.ReportService.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(result.String())
			for _, out := range result.Manifest.Outputs {
				fmt.Printf("  %-8s %s\n", out.Exporter, out.Location)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "out", "o", "", "Output directory (overrides OUTPUT_DIR)")
	return cmd
}

func newColumnsCmd(file *string) *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "Show how each header of the data sheet is classified",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadReader(*file)
			if err != nil {
				return err
			}
			defer c.Close()

			wb, err := c.Source.Load(cmd.Context())
			if err != nil {
				return err
			}
			cols := langreport.ClassifyColumns(wb.Data.Headers)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "INDEX\tCOLUMN\tRANK\tYEAR")
			for _, m := range cols.Matched {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", m.Index, m.Name, m.Spec.Label(), m.Spec.Year)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("\n%d rank columns, slots %v\n", len(cols.Matched), cols.Slots())
			fmt.Printf("Passed through: %v\n", cols.Unmatched)
			return nil
		},
	}
}

func newTidyCmd(file *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tidy",
		Short: "Print the long-format table (country, year, slot, language)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadReader(*file)
			if err != nil {
				return err
			}
			defer c.Close()

			_, rep, err := c.ReportService.Transform(cmd.Context())
			if err != nil {
				return err
			}
			tidy := langreport.SortTidy(rep.Tidy)

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(tidy)
			}

			w := csv.NewWriter(os.Stdout)
			if err := w.Write([]string{"country", "year", "pop_slot", "language"}); err != nil {
				return err
			}
			for _, r := range tidy {
				if err := w.Write([]string{r.Country, strconv.Itoa(r.Year), langreport.SlotLabel(r.Slot), r.Language}); err != nil {
					return err
				}
			}
			w.Flush()
			return w.Error()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of CSV")
	return cmd
}

func newTopCmd(file *string) *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "List the most widespread languages with their yearly series",
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 0 {
				return errors.InvalidInput(fmt.Sprintf("-n must be 0 or more, got %d", n))
			}
			c, err := loadReader(*file)
			if err != nil {
				return err
			}
			defer c.Close()

			_, rep, err := c.ReportService.Transform(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprint(w, "RANK\tLANGUAGE\tTOTAL")
			for _, y := range langreport.Years() {
				fmt.Fprintf(w, "\t%d", y)
			}
			fmt.Fprintln(w)

			for i, lc := range rep.Overall.Ranked() {
				if n > 0 && i >= n {
					break
				}
				fmt.Fprintf(w, "%d\t%s\t%d", i+1, lc.Language, lc.Count)
				for _, v := range rep.ByYear.Series(lc.Language) {
					fmt.Fprintf(w, "\t%d", v)
				}
				fmt.Fprintln(w)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&n, "n", "n", config.DefaultTopN, "Number of languages to list (0 for all)")
	return cmd
}
