package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"titanicdash/internal/models"
)

// Dataset column names, in the order they appear in the published file
const (
	ColClass    = "pclass"
	ColSurvived = "survived"
	ColName     = "name"
	ColSex      = "sex"
	ColAge      = "age"
	ColSibSp    = "sibsp"
	ColParch    = "parch"
	ColTicket   = "ticket"
	ColFare     = "fare"
	ColCabin    = "cabin"
	ColEmbarked = "embarked"
	ColBoat     = "boat"
	ColBody     = "body"
	ColHomeDest = "home.dest"
)

// Columns lists every column a dataset file must provide
var Columns = []string{
	ColClass, ColSurvived, ColName, ColSex, ColAge, ColSibSp, ColParch,
	ColTicket, ColFare, ColCabin, ColEmbarked, ColBoat, ColBody, ColHomeDest,
}

// ParseResult holds the typed records and every cell that failed validation.
// Rows with at least one issue are left out of Records.
type ParseResult struct {
	Records []models.Passenger
	Issues  []RowIssue
}

// Err returns a *ParseError when any row failed validation
func (r *ParseResult) Err() error {
	if len(r.Issues) == 0 {
		return nil
	}
	return &ParseError{Issues: r.Issues}
}

// Parse reads comma-separated passenger data with a header row.
// A malformed header or unreadable CSV returns an error; invalid rows are
// reported in the result instead.
func Parse(r io.Reader) (*ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &HeaderError{Missing: Columns}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		line, _ := reader.FieldPos(0)
		row := rowParser{line: line, cells: record, index: index}
		passenger := row.passenger()
		if len(row.issues) > 0 {
			result.Issues = append(result.Issues, row.issues...)
			continue
		}
		result.Records = append(result.Records, passenger)
	}

	return result, nil
}

func indexColumns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &HeaderError{Missing: missing}
	}
	return index, nil
}

// rowParser converts the cells of a single row, collecting issues as it goes
type rowParser struct {
	line   int
	cells  []string
	index  map[string]int
	issues []RowIssue
}

func (p *rowParser) passenger() models.Passenger {
	return models.Passenger{
		Class:    p.integerIn(ColClass, 1, 3),
		Survived: p.integerIn(ColSurvived, 0, 1),
		Name:     p.required(ColName),
		Sex:      p.cell(ColSex),
		Age:      p.optionalFloat(ColAge),
		SibSp:    p.integerIn(ColSibSp, 0, math.MaxInt32),
		Parch:    p.integerIn(ColParch, 0, math.MaxInt32),
		Ticket:   p.cell(ColTicket),
		Fare:     p.optionalFloat(ColFare),
		Cabin:    p.optionalString(ColCabin),
		Embarked: p.cell(ColEmbarked),
		Boat:     p.optionalString(ColBoat),
		Body:     p.optionalInteger(ColBody),
		HomeDest: p.optionalString(ColHomeDest),
	}
}

func (p *rowParser) report(column, value, reason string) {
	p.issues = append(p.issues, RowIssue{Line: p.line, Column: column, Value: value, Reason: reason})
}

func (p *rowParser) cell(column string) string {
	i := p.index[column]
	if i >= len(p.cells) {
		return ""
	}
	return strings.TrimSpace(p.cells[i])
}

func (p *rowParser) present(column string) bool {
	if p.index[column] >= len(p.cells) {
		p.report(column, "", "column missing from row")
		return false
	}
	return true
}

func (p *rowParser) required(column string) string {
	if !p.present(column) {
		return ""
	}
	value := p.cell(column)
	if value == "" {
		p.report(column, value, "value is required")
	}
	return value
}

func (p *rowParser) integerIn(column string, min, max int) int {
	if !p.present(column) {
		return 0
	}
	raw := p.cell(column)
	n, ok := parseIntegral(raw)
	if !ok {
		p.report(column, raw, "not an integer")
		return 0
	}
	if n < min || n > max {
		p.report(column, raw, fmt.Sprintf("out of range [%d, %d]", min, max))
		return 0
	}
	return n
}

func (p *rowParser) optionalFloat(column string) *float64 {
	raw := p.cell(column)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.report(column, raw, "not a number")
		return nil
	}
	return &f
}

func (p *rowParser) optionalInteger(column string) *int {
	raw := p.cell(column)
	if raw == "" {
		return nil
	}
	n, ok := parseIntegral(raw)
	if !ok {
		p.report(column, raw, "not an integer")
		return nil
	}
	return &n
}

func (p *rowParser) optionalString(column string) *string {
	value := p.cell(column)
	if value == "" {
		return nil
	}
	return &value
}

// parseIntegral accepts "3" as well as "3.0"
func parseIntegral(raw string) (int, bool) {
	if n, err := strconv.Atoi(raw); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
