package storage

import (
	"catalog-scraper/models"
	"catalog-scraper/utils"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

var csvHeader = []string{"Name", "Current_price", "Initial_price", "Discount", "Reviews", "Stars", "URL"}

// CSVWriter saves products to <dir>/<destination>.csv.
type CSVWriter struct {
	dir string
}

func NewCSVWriter(dir string) *CSVWriter {
	return &CSVWriter{dir: dir}
}

// Path returns the file a destination is written to.
func (w *CSVWriter) Path(destination string) string {
	return filepath.Join(w.dir, destination+".csv")
}

// Write replaces the destination file. An empty slice still produces a file
// with only the header row. Missing prices are written as empty cells.
func (w *CSVWriter) Write(products []models.Product, destination string) error {
	if destination == "" {
		return fmt.Errorf("csv destination is empty")
	}
	path := w.Path(destination)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create output dir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("csv write error: %w", err)
	}

	for _, p := range products {
		row := []string{
			p.Name,
			formatCSVPrice(p.CurrentPrice),
			formatCSVPrice(p.InitialPrice),
			p.Discount,
			p.Reviews,
			p.Stars,
			p.URL,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("csv write error: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("csv write error: %w", err)
	}

	utils.Success("Data saved to '%s' (%d products)", path, len(products))
	return nil
}

func formatCSVPrice(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
