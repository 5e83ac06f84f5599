// Copyright (c) 2026 MangaList. All rights reserved.

// Command import-catalog bulk-loads manga records from a CSV file into the
// catalogue.
//
// # CSV Layout
//
// One header row, then one record per line:
//
//	title,description,year,tags,cover
//
// The tags cell holds a comma-separated list inside the quoted cell. Titles
// that already exist in the catalogue are skipped, so re-running the import
// against the same file is safe.
//
// # Usage
//
//	DATABASE_URL=postgres://... import-catalog -file data/seed/manga.csv
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mangalist/api/internal/catalog"
	"github.com/mangalist/api/internal/platform/apperr"
	pgstore "github.com/mangalist/api/internal/platform/postgres"
)

func main() {
	filePath := flag.String("file", "", "path to the catalogue CSV file")
	databaseURL := flag.String("dsn", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("app", "import-catalog"))

	if *filePath == "" {
		log.Error("missing -file argument")
		os.Exit(2)
	}
	if *databaseURL == "" {
		log.Error("missing DATABASE_URL (or -dsn)")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, *databaseURL, log)
	if err != nil {
		log.Error("connect to postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	service := catalog.NewService(catalog.NewPostgresRepository(pool), log)

	file, err := os.Open(*filePath)
	if err != nil {
		log.Error("open csv file", slog.Any("error", err))
		os.Exit(1)
	}
	defer file.Close()

	imported, skipped, failed := importRecords(ctx, service, file, log)

	log.Info("import_finished",
		slog.Int("imported", imported),
		slog.Int("skipped", skipped),
		slog.Int("failed", failed),
	)
	if failed > 0 {
		os.Exit(1)
	}
}

// importRecords streams the CSV and creates one manga per row. Rows with a
// title already present in the catalogue count as skipped, malformed rows as
// failed. The import never aborts on a single bad row.
func importRecords(ctx context.Context, service *catalog.Service, source io.Reader, log *slog.Logger) (imported, skipped, failed int) {
	reader := csv.NewReader(source)
	reader.FieldsPerRecord = 5

	// Discard the header row.
	if _, err := reader.Read(); err != nil {
		log.Error("read csv header", slog.Any("error", err))
		return 0, 0, 1
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			return imported, skipped, failed
		}
		if err != nil {
			log.Warn("malformed_row", slog.Int("line", line), slog.Any("error", err))
			failed++
			continue
		}

		input, err := parseRecord(record)
		if err != nil {
			log.Warn("invalid_row", slog.Int("line", line), slog.Any("error", err))
			failed++
			continue
		}

		if _, err := service.CreateManga(ctx, input); err != nil {
			if appErr := apperr.As(err); appErr != nil && appErr.Code == "CONFLICT" {
				skipped++
				continue
			}
			log.Warn("import_row_failed",
				slog.Int("line", line),
				slog.String("title", input.Title),
				slog.Any("error", err),
			)
			failed++
			continue
		}
		imported++
	}
}

// parseRecord maps one CSV row (title, description, year, tags, cover) to a
// catalogue input. Empty cells become absent fields.
func parseRecord(record []string) (catalog.MangaInput, error) {
	input := catalog.MangaInput{Title: strings.TrimSpace(record[0])}

	if description := strings.TrimSpace(record[1]); description != "" {
		input.Description = &description
	}

	if yearCell := strings.TrimSpace(record[2]); yearCell != "" {
		year, err := strconv.Atoi(yearCell)
		if err != nil {
			return catalog.MangaInput{}, err
		}
		input.Year = &year
	}

	if tagsCell := strings.TrimSpace(record[3]); tagsCell != "" {
		input.Tags = strings.Split(tagsCell, ",")
	}

	if cover := strings.TrimSpace(record[4]); cover != "" {
		input.CoverURL = &cover
	}

	return input, nil
}
