package rentroll

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	enc "github.com/mohammadr7204/nyc-rental-platform-sub002/internal/encoding"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease"
)

// Parser reads landlord rent-roll CSV exports into lease rows keyed by
// application id. It detects the encoding, the field separator and the
// column layout.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Result is a parsed rent roll.
type Result struct {
	Profile string
	Charset enc.Charset
	Rows    []lease.BatchRow
}

var separators = []rune{',', ';', '\t'}

func (p *Parser) Parse(r io.Reader) (*Result, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read rent roll: %w", err)
	}

	for _, sep := range separators {
		records, err := readCSV(data, sep)
		if err != nil {
			continue
		}

		profile, cols, headerIdx, ok := detectProfile(records)
		if !ok {
			continue
		}

		rows, err := parseRows(cols, records[headerIdx+1:])
		if err != nil {
			return nil, err
		}

		return &Result{Profile: profile.Name, Charset: charset, Rows: rows}, nil
	}

	return nil, fmt.Errorf("no known rent-roll layout found: need application, start and end date columns")
}

// record is a CSV row with its 1-based line number in the file.
type record struct {
	line  int
	cells []string
}

func readCSV(data []byte, sep rune) ([]record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records []record

	for {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}

		if err != nil {
			return nil, err
		}

		line, _ := reader.FieldPos(0)
		records = append(records, record{line: line, cells: cells})
	}
}

func detectProfile(records []record) (*Profile, columns, int, bool) {
	for idx, rec := range records {
		for i := range profiles {
			if cols, ok := profiles[i].match(rec.cells); ok {
				return &profiles[i], cols, idx, true
			}
		}
	}

	return nil, columns{}, 0, false
}

func parseRows(cols columns, records []record) ([]lease.BatchRow, error) {
	var out []lease.BatchRow

	for _, rec := range records {
		row, rowNum := rec.cells, rec.line

		idCell := cellValue(row, cols.application)
		if idCell == "" {
			// Blank lines and totals footers.
			continue
		}

		appID, err := uuid.Parse(idCell)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid application id %q", rowNum, idCell)
		}

		start, err := parseDate(cellValue(row, cols.start))
		if err != nil {
			return nil, fmt.Errorf("row %d: start date: %w", rowNum, err)
		}

		end, err := parseDate(cellValue(row, cols.end))
		if err != nil {
			return nil, fmt.Errorf("row %d: end date: %w", rowNum, err)
		}

		rent, err := parseAmount(cellValue(row, cols.rent))
		if err != nil {
			return nil, fmt.Errorf("row %d: rent: %w", rowNum, err)
		}

		deposit, err := parseAmount(cellValue(row, cols.deposit))
		if err != nil {
			return nil, fmt.Errorf("row %d: deposit: %w", rowNum, err)
		}

		out = append(out, lease.BatchRow{
			Row:           rowNum,
			ApplicationID: appID,
			Params: lease.CreateParams{
				StartDate:       start,
				EndDate:         end,
				MonthlyRent:     rent,
				SecurityDeposit: deposit,
				Terms:           lease.Terms{Kind: lease.TermsStandard, Notes: cellValue(row, cols.notes)},
			},
		})
	}

	return out, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
