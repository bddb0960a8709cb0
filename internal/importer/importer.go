// Package importer loads property records from the spreadsheet exports
// county research teams produce (CSV and XLSX), mapping their columns onto
// the scoring engine's input contract.
package importer

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/deedscope/research-cli/internal/classify"
	"github.com/deedscope/research-cli/internal/model"
)

// Options configures the row parsers.
type Options struct {
	Delimiter rune   // CSV only, default ','
	SheetName string // XLSX only, default first sheet
}

// LoadCSV reads property rows from a CSV file. The first row must be a
// header row.
func LoadCSV(path string, opts Options) ([]model.PropertyData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "importer: open %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1 // allow variable fields

	header, err := reader.Read()
	if err != nil {
		return nil, eris.Wrap(err, "importer: read header")
	}
	cols := indexColumns(header)

	var out []model.PropertyData
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "importer: read row %d", line)
		}
		p, err := parseRow(cols, record)
		if err != nil {
			return nil, eris.Wrapf(err, "importer: row %d", line)
		}
		out = append(out, p)
	}
	return out, nil
}

// LoadXLSX reads property rows from an XLSX file. The first row of the
// selected sheet must be a header row.
func LoadXLSX(path string, opts Options) ([]model.PropertyData, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "importer: open %s", path)
	}

	sheet, err := pickSheet(f, opts.SheetName)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, eris.Errorf("importer: sheet %q is empty", sheet.Name)
	}

	cols := indexColumns(rowToStrings(sheet.Rows[0]))

	var out []model.PropertyData
	for i, row := range sheet.Rows[1:] {
		cells := rowToStrings(row)
		if isBlank(cells) {
			continue
		}
		p, err := parseRow(cols, cells)
		if err != nil {
			return nil, eris.Wrapf(err, "importer: row %d", i+2)
		}
		out = append(out, p)
	}
	return out, nil
}

func pickSheet(f *xlsx.File, name string) (*xlsx.Sheet, error) {
	if name != "" {
		sheet, ok := f.Sheet[name]
		if !ok {
			return nil, eris.Errorf("importer: sheet %q not found", name)
		}
		return sheet, nil
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("importer: workbook has no sheets")
	}
	return f.Sheets[0], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		cells[i] = c.String()
	}
	return cells
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// columnAliases maps export column names (normalized) onto canonical keys.
// County exports are inconsistent about naming, so common variants are
// folded together here.
var columnAliases = map[string]string{
	"parcel_id":       "id",
	"parcel":          "id",
	"property_id":     "id",
	"latitude":        "lat",
	"longitude":       "lng",
	"lon":             "lng",
	"zoning":          "zoning_code",
	"building_sqft":   "building_area_sqft",
	"bldg_sqft":       "building_area_sqft",
	"lot_acres":       "lot_size_acres",
	"acreage":         "lot_size_acres",
	"improvement_val": "improvement_value",
	"vacant":          "is_vacant_lot",
	"mobile_home":     "is_likely_mobile_home",
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		key = strings.ReplaceAll(key, " ", "_")
		if canonical, ok := columnAliases[key]; ok {
			key = canonical
		}
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	return cols
}

func parseRow(cols map[string]int, record []string) (model.PropertyData, error) {
	get := func(key string) string {
		i, ok := cols[key]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	p := model.PropertyData{
		ID:      get("id"),
		Address: get("address"),
		City:    get("city"),
		County:  get("county"),
		State:   strings.ToUpper(get("state")),
	}
	if p.ID == "" {
		return p, eris.New("missing id column value")
	}

	lat, latErr := parseOptFloat(get("lat"))
	lng, lngErr := parseOptFloat(get("lng"))
	if latErr != nil || lngErr != nil {
		return p, eris.Errorf("invalid coordinates for %s", p.ID)
	}
	if lat != nil && lng != nil {
		p.Coords = &model.Coordinate{Lat: *lat, Lng: *lng}
	}

	if raw := get("property_type"); raw != "" {
		p.Signals.PropertyType = string(classify.NormalizePropertyType(raw))
	}
	p.Signals.ZoningCode = get("zoning_code")
	p.Signals.LandUse = get("land_use")

	var err error
	if p.Signals.BuildingAreaSqFt, err = parseOptFloat(get("building_area_sqft")); err != nil {
		return p, eris.Wrapf(err, "building_area_sqft for %s", p.ID)
	}
	if p.Signals.LotSizeAcres, err = parseOptFloat(get("lot_size_acres")); err != nil {
		return p, eris.Wrapf(err, "lot_size_acres for %s", p.ID)
	}
	if p.Signals.ImprovementValue, err = parseOptFloat(get("improvement_value")); err != nil {
		return p, eris.Wrapf(err, "improvement_value for %s", p.ID)
	}
	p.Signals.IsVacantLot = parseBool(get("is_vacant_lot"))
	p.Signals.IsLikelyMobileHome = parseBool(get("is_likely_mobile_home"))

	p.EdgeCase = parseBool(get("edge_case"))
	p.EdgeCaseReason = get("edge_case_reason")

	// Per-category columns: <category>_score becomes a single composite
	// component, <category>_confidence its confidence.
	for _, cat := range model.Categories() {
		scoreRaw := get(string(cat) + "_score")
		if scoreRaw == "" {
			continue
		}
		score, err := strconv.ParseFloat(scoreRaw, 64)
		if err != nil {
			return p, eris.Wrapf(err, "%s_score for %s", cat, p.ID)
		}
		conf := 100.0
		if confRaw := get(string(cat) + "_confidence"); confRaw != "" {
			if conf, err = strconv.ParseFloat(confRaw, 64); err != nil {
				return p, eris.Wrapf(err, "%s_confidence for %s", cat, p.ID)
			}
		}
		if p.Inputs == nil {
			p.Inputs = make(map[model.Category]model.CategoryInput, 5)
		}
		p.Inputs[cat] = model.CategoryInput{
			Components: []model.ComponentScore{{Name: "composite", Score: score}},
			Confidence: conf,
		}
	}

	return p, nil
}

func parseOptFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, eris.Wrapf(err, "parse %q", s)
	}
	return &v, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "t", "yes", "y":
		return true
	default:
		return false
	}
}
