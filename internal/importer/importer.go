// Package importer turns item spreadsheets exported as CSV into item create
// params. Header layouts are described by profiles and detected from the
// file unless the caller names one.
package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/daileit/wedding-planner/internal/domain"
	"github.com/daileit/wedding-planner/internal/encoding"
	"github.com/daileit/wedding-planner/internal/item"
)

const (
	// maxPriority mirrors the item priority range.
	maxPriority = 100
	sniffLines  = 10
)

// Result is a parsed spreadsheet.
type Result struct {
	Profile string
	Charset string
	Items   []item.CreateParams
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Parse reads r and returns one item per non-blank row. An empty profile
// name means auto-detection. Malformed files and rows are reported as a
// *domain.ValidationError whose fields name the offending line.
func (s *Service) Parse(r io.Reader, profile string) (*Result, error) {
	candidates := profiles

	if profile != "" {
		p, ok := findProfile(profile)
		if !ok {
			return nil, domain.NewValidationError("profile", "must be one of "+strings.Join(Profiles(), ", "))
		}

		candidates = []Profile{p}
	}

	utf8r, charset, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	records, err := readRecords(data)
	if err != nil {
		return nil, domain.NewValidationError("file", "is not valid CSV: "+err.Error())
	}

	p, cols, headerIdx := detectProfile(candidates, records)
	if p == nil {
		return nil, domain.NewValidationError("file", "has no header row for profile "+strings.Join(profileNames(candidates), " or "))
	}

	items, err := parseRows(p, cols, records[headerIdx+1:])
	if err != nil {
		return nil, err
	}

	return &Result{Profile: p.Name, Charset: charset, Items: items}, nil
}

// record is a CSV row with the file line it started on.
type record struct {
	line  int
	cells []string
}

func readRecords(data []byte) ([]record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
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

// sniffDelimiter picks ';' when the leading lines carry more semicolons than
// commas. Spreadsheets in locales with a decimal comma export that way.
func sniffDelimiter(data []byte) rune {
	var semicolons, commas int

	sc := bufio.NewScanner(bytes.NewReader(data))
	for n := 0; n < sniffLines && sc.Scan(); n++ {
		line := sc.Text()
		semicolons += strings.Count(line, ";")
		commas += strings.Count(line, ",")
	}

	if semicolons > commas {
		return ';'
	}

	return ','
}

// colIndex maps folded header names to their position in the row.
type colIndex map[string]int

func detectProfile(candidates []Profile, records []record) (*Profile, colIndex, int) {
	for rowIdx, rec := range records {
		cols := make(colIndex)

		for i, cell := range rec.cells {
			if key := headerKey(cell); key != "" {
				cols[key] = i
			}
		}

		for i := range candidates {
			if matchesProfile(&candidates[i], cols) {
				return &candidates[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[headerKey(name)]; !ok {
			return false
		}
	}

	return true
}

func (c colIndex) of(name string) int {
	if name == "" {
		return -1
	}

	if i, ok := c[headerKey(name)]; ok {
		return i
	}

	return -1
}

func parseRows(p *Profile, cols colIndex, records []record) ([]item.CreateParams, error) {
	var (
		nameIdx     = cols.of(p.NameCol)
		costIdx     = cols.of(p.CostCol)
		priorityIdx = cols.of(p.PriorityCol)
		notesIdx    = cols.of(p.NotesCol)
		linkIdx     = cols.of(p.LinkCol)
	)

	verr := &domain.ValidationError{}
	items := []item.CreateParams{}

	for _, rec := range records {
		if blank(rec.cells) {
			continue
		}

		fail := func(field, reason string) {
			verr.Fields = append(verr.Fields, domain.FieldError{
				Field:  fmt.Sprintf("rows[%d].%s", rec.line, field),
				Reason: reason,
			})
		}

		params := item.CreateParams{Name: cellValue(rec.cells, nameIdx)}
		if params.Name == "" {
			fail("name", "is required")
		}

		if s := cellValue(rec.cells, costIdx); s != "" {
			cost, err := ParseAmount(s)

			switch {
			case err != nil:
				fail("estimated_cost", "must be an amount")
			case cost.Sign() < 0:
				fail("estimated_cost", "must not be negative")
			default:
				params.EstimatedCost = &cost
			}
		}

		if s := cellValue(rec.cells, priorityIdx); s != "" {
			n, err := strconv.Atoi(s)

			switch {
			case err != nil:
				fail("priority", "must be a whole number")
			case n < 0 || n > maxPriority:
				fail("priority", fmt.Sprintf("must be between 0 and %d", maxPriority))
			default:
				params.Priority = &n
			}
		}

		params.Notes = optional(cellValue(rec.cells, notesIdx))
		params.VendorLink = optional(cellValue(rec.cells, linkIdx))

		items = append(items, params)
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}

	if len(items) == 0 {
		return nil, domain.NewValidationError("file", "contains no items")
	}

	return items, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func profileNames(ps []Profile) []string {
	names := make([]string, 0, len(ps))
	for _, p := range ps {
		names = append(names, p.Name)
	}

	return names
}
