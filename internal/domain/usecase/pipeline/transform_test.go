package pipeline

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"redfin-etl/internal/domain/entity"
)

var baseRow = map[string]string{
	"period_begin":                   "2023-01-01",
	"period_end":                     "2023-03-31",
	"period_duration":                "90",
	"region_type":                    "place",
	"region_type_id":                 "6",
	"table_id":                       "1",
	"is_seasonally_adjusted":         "f",
	"city":                           "Abilene",
	"state":                          "Texas",
	"state_code":                     "TX",
	"property_type":                  "All Residential",
	"property_type_id":               "-1",
	"median_sale_price":              "235000",
	"median_list_price":              "265000",
	"median_ppsf":                    "120.5",
	"median_list_ppsf":               "130.1",
	"homes_sold":                     "125",
	"inventory":                      "400",
	"months_of_supply":               "3.2",
	"median_dom":                     "25",
	"avg_sale_to_list":               "0.98",
	"sold_above_list":                "0.25",
	"parent_metro_region_metro_code": "10180",
	"last_updated":                   "2023-04-05 15:10:05",
}

func sampleRow(overrides map[string]string) []string {
	row := make([]string, 0, len(retainedColumns()))
	for _, name := range retainedColumns() {
		value, ok := overrides[name]
		if !ok {
			value = baseRow[name]
		}
		row = append(row, value)
	}
	return row
}

func buildTSV(header []string, rows ...[]string) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(header, "\t"))
	sb.WriteString("\n")
	for _, row := range rows {
		sb.WriteString(strings.Join(row, "\t"))
		sb.WriteString("\n")
	}
	return sb.String()
}

func parseOutput(t *testing.T, out string) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parsing transform output: %v", err)
	}
	return records
}

func TestTransformKeepsValidRows(t *testing.T) {
	input := buildTSV(retainedColumns(),
		sampleRow(nil),
		sampleRow(map[string]string{"period_begin": "2023-04-01", "period_end": "2023-06-30", "city": "Dallas"}),
	)

	var out bytes.Buffer
	stats, err := NewTransformer(nil, nil).transform(t.Context(), strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("transform returned error: %v", err)
	}

	if stats.RowsRead != 2 || stats.RowsKept != 2 || stats.RowsDropped != 0 {
		t.Errorf("stats = %+v, want 2 read, 2 kept, 0 dropped", *stats)
	}

	records := parseOutput(t, out.String())
	if len(records) != 3 {
		t.Fatalf("output has %d records, want header + 2 rows", len(records))
	}

	header := records[0]
	wantHeader := entity.MarketColumns()
	if len(header) != len(wantHeader) {
		t.Fatalf("output header has %d columns, want %d", len(header), len(wantHeader))
	}
	for i, name := range wantHeader {
		if header[i] != name {
			t.Errorf("header[%d] = %q, want %q", i, header[i], name)
		}
	}

	first := records[1]
	if len(first) != 28 {
		t.Fatalf("row has %d cells, want 28", len(first))
	}
	if first[0] != "2023-01-01" || first[7] != "Abilene" {
		t.Errorf("unexpected retained cells: period_begin=%q city=%q", first[0], first[7])
	}
	derived := first[24:]
	want := []string{"2023", "2023", "January", "March"}
	for i, cell := range derived {
		if cell != want[i] {
			t.Errorf("derived cell %d = %q, want %q", i, cell, want[i])
		}
	}
}

func TestTransformHandlesShuffledSourceColumns(t *testing.T) {
	// Source header in a different order, with an extra column the output ignores
	header := append([]string{"noise_column"}, retainedColumns()...)
	for i, j := 1, len(header)-1; i < j; i, j = i+1, j-1 {
		header[i], header[j] = header[j], header[i]
	}

	position := make(map[string]int, len(header))
	for i, name := range header {
		position[name] = i
	}
	row := make([]string, len(header))
	row[position["noise_column"]] = "ignored"
	for name, value := range baseRow {
		row[position[name]] = value
	}

	var out bytes.Buffer
	stats, err := NewTransformer(nil, nil).transform(t.Context(), strings.NewReader(buildTSV(header, row)), &out)
	if err != nil {
		t.Fatalf("transform returned error: %v", err)
	}
	if stats.RowsKept != 1 {
		t.Fatalf("RowsKept = %d, want 1", stats.RowsKept)
	}

	records := parseOutput(t, out.String())
	kept := records[1]
	if kept[7] != "Abilene" || kept[9] != "TX" {
		t.Errorf("cells not remapped by name: city=%q state_code=%q", kept[7], kept[9])
	}
}

func TestTransformDropsIncompleteRows(t *testing.T) {
	input := buildTSV(retainedColumns(),
		sampleRow(nil),
		sampleRow(map[string]string{"city": ""}),
		sampleRow(map[string]string{"median_sale_price": " "}),
		sampleRow(map[string]string{"period_begin": "01/15/2023"}),
		sampleRow(map[string]string{"period_end": "not-a-date"}),
	)

	var out bytes.Buffer
	stats, err := NewTransformer(nil, nil).transform(t.Context(), strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("transform returned error: %v", err)
	}

	if stats.RowsRead != 5 {
		t.Errorf("RowsRead = %d, want 5", stats.RowsRead)
	}
	if stats.RowsKept != 1 {
		t.Errorf("RowsKept = %d, want 1", stats.RowsKept)
	}
	if stats.RowsDropped != 4 {
		t.Errorf("RowsDropped = %d, want 4", stats.RowsDropped)
	}
}

func TestTransformFiltersPeriodBegin(t *testing.T) {
	from := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, time.June, 30, 0, 0, 0, 0, time.UTC)

	input := buildTSV(retainedColumns(),
		sampleRow(map[string]string{"period_begin": "2022-12-31"}),
		sampleRow(map[string]string{"period_begin": "2023-01-01"}),
		sampleRow(map[string]string{"period_begin": "2023-06-30"}),
		sampleRow(map[string]string{"period_begin": "2023-07-01"}),
	)

	var out bytes.Buffer
	stats, err := NewTransformer(&from, &to).transform(t.Context(), strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("transform returned error: %v", err)
	}

	if stats.RowsKept != 2 {
		t.Errorf("RowsKept = %d, want 2 (bounds are inclusive)", stats.RowsKept)
	}
	if stats.RowsDropped != 2 {
		t.Errorf("RowsDropped = %d, want 2", stats.RowsDropped)
	}
}

func TestTransformFailsOnMissingSourceColumn(t *testing.T) {
	header := make([]string, 0, len(retainedColumns())-1)
	for _, name := range retainedColumns() {
		if name == "city" {
			continue
		}
		header = append(header, name)
	}

	var out bytes.Buffer
	_, err := NewTransformer(nil, nil).transform(t.Context(), strings.NewReader(buildTSV(header)), &out)
	if err == nil {
		t.Fatal("expected error for missing source column")
	}
	if !strings.Contains(err.Error(), "city") {
		t.Errorf("error %q does not name the missing column", err.Error())
	}
}

func TestTransformFileWritesOutput(t *testing.T) {
	dir := t.TempDir()
	rawPath := filepath.Join(dir, "snapshot.tsv")
	outPath := filepath.Join(dir, "snapshot.csv")

	input := buildTSV(retainedColumns(), sampleRow(nil))
	if err := os.WriteFile(rawPath, []byte(input), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	stats, err := NewTransformer(nil, nil).TransformFile(t.Context(), rawPath, outPath)
	if err != nil {
		t.Fatalf("TransformFile returned error: %v", err)
	}
	if stats.RowsKept != 1 {
		t.Errorf("RowsKept = %d, want 1", stats.RowsKept)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	records := parseOutput(t, string(data))
	if len(records) != 2 {
		t.Errorf("output has %d records, want header + 1 row", len(records))
	}
}

func TestTransformFileRemovesPartialOutputOnFailure(t *testing.T) {
	dir := t.TempDir()
	rawPath := filepath.Join(dir, "snapshot.tsv")
	outPath := filepath.Join(dir, "snapshot.csv")

	// Header lacks every retained column
	if err := os.WriteFile(rawPath, []byte("bogus\theader\n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := NewTransformer(nil, nil).TransformFile(t.Context(), rawPath, outPath); err == nil {
		t.Fatal("expected error for unusable snapshot")
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Errorf("partial output file was left behind: %v", err)
	}
}
