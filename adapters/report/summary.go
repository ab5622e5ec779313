package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"langtrends/domain/langreport"
	"langtrends/internal"
	"langtrends/ports"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const title = "Language Learning Report 2020-2025"

// Summary writes a Markdown run summary and its HTML rendering
type Summary struct {
	outputDir string
	log       *internal.Logger
}

// NewSummary creates a summary exporter writing under outputDir
func NewSummary(outputDir string, logger *internal.Logger) *Summary {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Summary{outputDir: outputDir, log: logger.With("summary")}
}

// Name implements ports.Exporter
func (s *Summary) Name() string { return "summary" }

// Export implements ports.Exporter
func (s *Summary) Export(ctx context.Context, bundle *ports.ReportBundle) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	md := Markdown(bundle)
	mdPath := filepath.Join(s.outputDir, "summary.md")
	if err := os.WriteFile(mdPath, md, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", mdPath, err)
	}

	htmlPath := filepath.Join(s.outputDir, "summary.html")
	if err := os.WriteFile(htmlPath, ToHTML(md), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", htmlPath, err)
	}

	s.log.Info("Wrote %s and %s", mdPath, htmlPath)
	return []string{mdPath, htmlPath}, nil
}

// ToHTML renders Markdown as a complete HTML page
func ToHTML(md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: title,
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.ToHTML(md, p, renderer)
}

// Markdown builds the summary document
func Markdown(bundle *ports.ReportBundle) []byte {
	rep := bundle.Report
	var b bytes.Buffer

	fmt.Fprintf(&b, "# %s\n\n", title)
	if bundle.RunID != "" {
		fmt.Fprintf(&b, "- Run: `%s`\n", bundle.RunID)
	}
	if bundle.Source != "" {
		fmt.Fprintf(&b, "- Source: `%s`\n", bundle.Source)
	}
	fmt.Fprintf(&b, "- Countries read: %d\n", rep.Stats.RawRows)
	fmt.Fprintf(&b, "- Rank columns: %d (%d other columns ignored)\n", rep.Stats.MatchedColumns, rep.Stats.UnmatchedColumns)
	fmt.Fprintf(&b, "- Observations: %d (%d blank cells skipped)\n\n", rep.Stats.TidyRows, rep.Stats.BlankCells)

	b.WriteString("## Most taught languages\n\n")
	b.WriteString("| Rank | Language | Observations |\n|---:|---|---:|\n")
	for i, lc := range rep.Overall.Ranked() {
		if len(bundle.Top) > 0 && i >= len(bundle.Top) {
			break
		}
		fmt.Fprintf(&b, "| %d | %s | %d |\n", i+1, escape(lc.Language), lc.Count)
	}
	b.WriteString("\n")

	if len(bundle.Trends) > 0 {
		b.WriteString("## Trends\n\n")
		b.WriteString("| Language |")
		for _, y := range langreport.Years() {
			b.WriteString(" " + strconv.Itoa(y) + " |")
		}
		b.WriteString(" Slope | Direction |\n|---|")
		b.WriteString(strings.Repeat("---:|", len(langreport.Years())+1))
		b.WriteString("---|\n")
		for _, tr := range bundle.Trends {
			fmt.Fprintf(&b, "| %s |", escape(tr.Language))
			for _, n := range tr.Counts {
				fmt.Fprintf(&b, " %d |", n)
			}
			fmt.Fprintf(&b, " %+.2f | %s |\n", tr.Slope, tr.Direction)
		}
		b.WriteString("\n")
	}

	if ov := bundle.Overview; ov != nil && len(ov.Headers) > 0 {
		b.WriteString("## Overview\n\n")
		writeTable(&b, ov.Headers, ov.Rows)
	}

	return b.Bytes()
}

func writeTable(b *bytes.Buffer, headers []string, rows [][]string) {
	b.WriteString("|")
	for _, h := range headers {
		b.WriteString(" " + escape(h) + " |")
	}
	b.WriteString("\n|" + strings.Repeat("---|", len(headers)) + "\n")
	for _, row := range rows {
		b.WriteString("|")
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(" " + escape(cell) + " |")
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
