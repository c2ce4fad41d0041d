package dataview

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"timelanes/internal/config"
)

// LoadCSV reads a CSV file into a DataView, annotating columns with roles
// by matching header names against the configured role mapping
// (case-insensitive).
func LoadCSV(filename string, roles config.Roles) (*DataView, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer file.Close()

	return ReadCSV(file, roles)
}

// ReadCSV parses CSV content from r. The first row is the header; every
// following row becomes a table row.
func ReadCSV(r io.Reader, roles config.Roles) (*DataView, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}

	roleByName := map[string]string{
		strings.ToLower(strings.TrimSpace(roles.Title)):       RoleTitle,
		strings.ToLower(strings.TrimSpace(roles.Description)): RoleDescription,
		strings.ToLower(strings.TrimSpace(roles.StartDate)):   RoleStartDate,
		strings.ToLower(strings.TrimSpace(roles.EndDate)):     RoleEndDate,
		strings.ToLower(strings.TrimSpace(roles.CompanyLink)): RoleCompanyLink,
		strings.ToLower(strings.TrimSpace(roles.HeaderImage)): RoleHeaderImage,
		strings.ToLower(strings.TrimSpace(roles.FooterImage)): RoleFooterImage,
	}
	delete(roleByName, "")

	columns := make([]Column, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		columns[i] = Column{Name: strings.TrimSpace(name), Role: roleByName[key]}
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, record)
	}

	return New(columns, rows), nil
}
