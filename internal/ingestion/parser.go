package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/shipregistry/internal/domain/models"
)

const prodDateLayout = "2006-01-02"

// expectedHeaders enforces strict column ordering for fleet files.
// If the header doesn't match EXACTLY (order + count), the import fails.
var expectedHeaders = []string{
	"name",
	"planet",
	"shipType",
	"prodDate",
	"isUsed",
	"speed",
	"crewSize",
}

// LineError locates a failure inside an import file.
type LineError struct {
	File string
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s line %d: %v", e.File, e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// parseFile opens and validates one fleet file and hands every row to emit.
// It fails on:
//   - header not matching expected order/length
//   - a row with the wrong column count or an unparseable cell
//   - the first error returned by emit
//
// Returns the number of rows emitted.
func parseFile(ctx context.Context, path, name string, emit func(models.ShipPatch) error) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = -1 // checked explicitly for better messages
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, &LineError{File: name, Line: 1, Err: errors.New("empty file")}
		}
		return 0, &LineError{File: name, Line: 1, Err: fmt.Errorf("read header: %w", err)}
	}
	if err := checkHeader(header); err != nil {
		return 0, &LineError{File: name, Line: 1, Err: err}
	}

	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			line := 0
			if errors.As(err, &pe) {
				line = pe.Line
			}
			return total, &LineError{File: name, Line: line, Err: err}
		}
		line, _ := r.FieldPos(0)
		if len(rec) != len(expectedHeaders) {
			return total, &LineError{File: name, Line: line,
				Err: fmt.Errorf("invalid column count: expected %d got %d", len(expectedHeaders), len(rec))}
		}

		patch, err := recordToPatch(rec)
		if err != nil {
			return total, &LineError{File: name, Line: line, Err: err}
		}
		if err := emit(patch); err != nil {
			return total, &LineError{File: name, Line: line, Err: err}
		}
		total++
	}
	return total, nil
}

func checkHeader(header []string) error {
	if len(header) != len(expectedHeaders) {
		return fmt.Errorf("invalid header length: expected %d, got %d", len(expectedHeaders), len(header))
	}
	for i, h := range header {
		// a UTF-8 BOM is common in files exported from spreadsheets
		h = strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
		if h != expectedHeaders[i] {
			return fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, expectedHeaders[i], h)
		}
	}
	return nil
}

// recordToPatch converts a single CSV record (already validated length) into
// a models.ShipPatch. Empty cells become absent fields, so the service reports
// them like a missing JSON field. Range checks are left to the service.
//
// Column order:
//
//	0 name      → Name (string)
//	1 planet    → Planet (string)
//	2 shipType  → ShipType (TRANSPORT | MILITARY | MERCHANT)
//	3 prodDate  → ProdDate (DATE, "2006-01-02", UTC)
//	4 isUsed    → IsUsed (bool, empty → false)
//	5 speed     → Speed (float, comma or dot decimal separator)
//	6 crewSize  → CrewSize (int)
func recordToPatch(rec []string) (models.ShipPatch, error) {
	var p models.ShipPatch

	if s := strings.TrimSpace(rec[0]); s != "" {
		p.Name = &s
	}
	if s := strings.TrimSpace(rec[1]); s != "" {
		p.Planet = &s
	}
	if s := strings.TrimSpace(rec[2]); s != "" {
		t, err := models.ParseShipType(s)
		if err != nil {
			return p, fmt.Errorf("invalid shipType: %w", err)
		}
		p.ShipType = &t
	}
	if s := strings.TrimSpace(rec[3]); s != "" {
		d, err := time.ParseInLocation(prodDateLayout, s, time.UTC)
		if err != nil {
			return p, fmt.Errorf("invalid prodDate: %w", err)
		}
		p.ProdDate = &d
	}
	if s := strings.TrimSpace(rec[4]); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return p, fmt.Errorf("invalid isUsed: %w", err)
		}
		p.IsUsed = &b
	}
	if s := strings.TrimSpace(rec[5]); s != "" {
		v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err != nil {
			return p, fmt.Errorf("invalid speed: %w", err)
		}
		p.Speed = &v
	}
	if s := strings.TrimSpace(rec[6]); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return p, fmt.Errorf("invalid crewSize: %w", err)
		}
		p.CrewSize = &v
	}
	return p, nil
}
