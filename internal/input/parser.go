// Package input parses company list files into descriptors.
package input

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"VentureScanner/internal/domain"
)

// ParseCompanyFile reads a company list from disk. CSV files need a
// company_name column and may carry an optional homepage column; TXT
// files hold one company name per line, with #-prefixed lines skipped.
func ParseCompanyFile(path string) ([]domain.CompanyDescriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("input file %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return parseCSV(f)
	case ".txt", ".text":
		return parseTXT(f)
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", domain.ErrInvalidInput, ext)
	}
}

func parseCSV(f *os.File) ([]domain.CompanyDescriptor, error) {
	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	nameCol, homeCol := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "company_name":
			nameCol = i
		case "homepage":
			homeCol = i
		}
	}
	if nameCol < 0 {
		return nil, fmt.Errorf("%w: csv must have a company_name column", domain.ErrInvalidInput)
	}

	var companies []domain.CompanyDescriptor
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: malformed csv: %v", domain.ErrInvalidInput, err)
		}
		name := strings.TrimSpace(row[nameCol])
		if name == "" {
			continue
		}
		d := domain.CompanyDescriptor{Name: name}
		if homeCol >= 0 && homeCol < len(row) {
			d.Homepage = strings.TrimSpace(row[homeCol])
		}
		companies = append(companies, d)
	}
	return companies, nil
}

func parseTXT(f *os.File) ([]domain.CompanyDescriptor, error) {
	var companies []domain.CompanyDescriptor
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" || strings.HasPrefix(name, "#") {
			continue
		}
		companies = append(companies, domain.CompanyDescriptor{Name: name})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	return companies, nil
}
