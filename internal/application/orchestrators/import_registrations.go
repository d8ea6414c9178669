package orchestrators

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	registrationStore "raknong/internal/adapters/storage/registration"
	domain "raknong/internal/domain/registration"
)

// ImportRegistrationsInput carries the parsed CSV reader and import options.
// PRE: Reader is a valid CSV stream with a header row.
// POST: Returns aggregate counts and per-row errors; writes are skipped when DryRun=true.
// INVARIANT: Existing rows are never deleted; student ids key upserts.
type ImportRegistrationsInput struct {
	Reader io.Reader
	DryRun bool
}

// ImportRegistrationsResult holds aggregate counts and per-row errors from an import run.
type ImportRegistrationsResult struct {
	Total    int
	Imported int
	Skipped  int
	Errors   []ImportRowError
	DryRun   bool
}

// ImportRowError describes a validation or processing error for a single CSV row.
type ImportRowError struct {
	Row     int
	Message string
}

// ImportRegistrationsDeps holds external dependencies for the import orchestrator.
type ImportRegistrationsDeps struct {
	RegistrationStore registrationStore.Store
}

// ExecuteImportRegistrations parses a CSV stream and upserts registration rows.
// Expected columns: STDID, NAME, NICKNAME, FACULTY, DIEREQ, PH, FOODALG, EMAIL, GRP.
// PRE: Input.Reader contains a valid CSV with at least STDID, NAME and EMAIL columns.
// POST: rows upserted keyed by student id; counts and per-row errors returned
// INVARIANT: When DryRun=true no writes occur
func ExecuteImportRegistrations(ctx context.Context, input ImportRegistrationsInput, deps ImportRegistrationsDeps) (ImportRegistrationsResult, error) {
	cr := csv.NewReader(input.Reader)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return ImportRegistrationsResult{}, err
	}

	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"STDID", "NAME", "EMAIL"} {
		if _, ok := colIdx[required]; !ok {
			return ImportRegistrationsResult{}, fmt.Errorf("CSV missing required column: %s", required)
		}
	}

	getCol := func(row []string, col string) string {
		i, ok := colIdx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	result := ImportRegistrationsResult{DryRun: input.DryRun}
	rowNum := 1

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: err.Error()})
			result.Skipped++
			continue
		}
		result.Total++

		group := 0
		if g := getCol(row, "GRP"); g != "" {
			group, err = strconv.Atoi(g)
			if err != nil {
				result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: "GRP must be a number"})
				result.Skipped++
				continue
			}
		}

		reg := domain.Registration{
			StudentID:   getCol(row, "STDID"),
			Name:        getCol(row, "NAME"),
			Nickname:    getCol(row, "NICKNAME"),
			Faculty:     getCol(row, "FACULTY"),
			DietaryReq:  getCol(row, "DIEREQ"),
			Medical:     getCol(row, "PH"),
			FoodAllergy: getCol(row, "FOODALG"),
			Email:       getCol(row, "EMAIL"),
			Group:       group,
		}
		if err := reg.Validate(); err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: err.Error()})
			result.Skipped++
			continue
		}

		if input.DryRun {
			result.Imported++
			continue
		}
		if err := deps.RegistrationStore.Save(ctx, reg); err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Message: err.Error()})
			result.Skipped++
			continue
		}
		result.Imported++
	}

	slog.Info("registrations_imported",
		"total", result.Total,
		"imported", result.Imported,
		"skipped", result.Skipped,
		"dry_run", result.DryRun,
	)
	return result, nil
}
