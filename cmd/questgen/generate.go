package main

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/questgen/internal/config"
	"github.com/dgallion1/questgen/internal/export"
	"github.com/dgallion1/questgen/internal/parser"
	"github.com/dgallion1/questgen/internal/questions"
	"github.com/spf13/cobra"
)

type generateOutput struct {
	File      string   `json:"file"`
	Language  string   `json:"language"`
	KeyPoints int      `json:"key_points"`
	Questions []string `json:"questions"`
}

func newGenerateCmd() *cobra.Command {
	cfg := config.Load()

	cmd := &cobra.Command{
		Use:   "generate FILE",
		Short: "Print questions generated from a document",
		Args:  cobra.ExactArgs(1),
		RunE:  runGenerate,
	}
	cmd.Flags().IntP("count", "n", cfg.DefaultQuestionCount, "Maximum number of questions")
	cmd.Flags().StringP("language", "l", cfg.DefaultLanguage, "Language profile")
	cmd.Flags().Uint64("seed", 0, "Seed for a reproducible question order")
	cmd.Flags().String("pdf", "", "Also write a printable worksheet to this path")
	cmd.Flags().Bool("json", false, "Print JSON instead of a numbered list")
	cmd.Flags().Bool("pdftotext", cfg.PDFFallbackPdftotext, "Retry unreadable PDFs with pdftotext")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := logger(cmd)
	path := args[0]

	count, _ := cmd.Flags().GetInt("count")
	language, _ := cmd.Flags().GetString("language")
	pdfPath, _ := cmd.Flags().GetString("pdf")
	asJSON, _ := cmd.Flags().GetBool("json")
	fallback, _ := cmd.Flags().GetBool("pdftotext")

	catalog, err := questions.CatalogFor(language)
	if err != nil {
		return err
	}

	rng := questions.NewRand()
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetUint64("seed")
		rng = questions.NewSeededRand(seed)
	}

	start := time.Now()
	text, err := parser.ExtractFile(path, parser.Options{PDFFallbackPdftotext: fallback})
	if err != nil {
		return err
	}
	log.Debug("extracted text", "file", path, "chars", len(text), "duration", time.Since(start))

	qs, err := generate(catalog, text, count, rng)
	if err != nil {
		return err
	}
	log.Debug("generated questions", "count", len(qs))

	if pdfPath != "" {
		if err := writeWorksheet(pdfPath, path, catalog.Language, qs); err != nil {
			return err
		}
		log.Info("wrote worksheet", "path", pdfPath)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(generateOutput{
			File:      filepath.Base(path),
			Language:  catalog.Language,
			KeyPoints: questions.CountKeyPoints(text),
			Questions: qs,
		})
	}
	for i, q := range qs {
		fmt.Fprintf(out, "%d. %s\n", i+1, q)
	}
	return nil
}

func generate(catalog *questions.Catalog, text string, count int, rng *rand.Rand) ([]string, error) {
	return questions.NewGenerator(catalog, rng).Generate(text, count)
}

func writeWorksheet(dst, source, language string, qs []string) error {
	name := filepath.Base(source)
	data, err := export.WorksheetPDF(export.Worksheet{
		Title:     strings.TrimSuffix(name, filepath.Ext(name)),
		Source:    name,
		Language:  language,
		Questions: qs,
		Date:      time.Now(),
	})
	if err != nil {
		return fmt.Errorf("render worksheet: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("write worksheet: %w", err)
	}
	return nil
}
