package pipeline

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"redfin-etl/internal/domain/entity"
)

// Stats summarizes one transform pass
type Stats struct {
	RowsRead    int64
	RowsKept    int64
	RowsDropped int64
}

// Transformer reshapes the raw snapshot into the warehouse CSV: retained
// columns selected by header name, drop rules applied, period columns derived.
type Transformer struct {
	periodBeginFrom *time.Time
	periodBeginTo   *time.Time
}

func NewTransformer(periodBeginFrom, periodBeginTo *time.Time) *Transformer {
	return &Transformer{
		periodBeginFrom: periodBeginFrom,
		periodBeginTo:   periodBeginTo,
	}
}

// retainedColumns are the output columns read from the source snapshot.
// The final four of MarketColumns are derived, they never appear in the source.
func retainedColumns() []string {
	cols := entity.MarketColumns()
	return cols[:len(cols)-4]
}

// TransformFile reads the TSV snapshot at rawPath and writes the transformed
// CSV to outPath. The partial output file is removed on failure.
func (t *Transformer) TransformFile(ctx context.Context, rawPath, outPath string) (*Stats, error) {
	in, err := os.Open(rawPath)
	if err != nil {
		return nil, fmt.Errorf("opening raw snapshot %s: %w", rawPath, err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("creating transform output %s: %w", outPath, err)
	}

	stats, err := t.transform(ctx, in, out)
	if closeErr := out.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("closing transform output %s: %w", outPath, closeErr)
	}
	if err != nil {
		os.Remove(outPath)
		return nil, err
	}
	return stats, nil
}

func (t *Transformer) transform(ctx context.Context, r io.Reader, w io.Writer) (*Stats, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading snapshot header: %w", err)
	}

	index, err := sourceColumnIndex(header)
	if err != nil {
		return nil, err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(entity.MarketColumns()); err != nil {
		return nil, fmt.Errorf("writing output header: %w", err)
	}

	stats := &Stats{}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading snapshot row %d: %w", stats.RowsRead+2, err)
		}

		stats.RowsRead++

		record, keep := t.buildRecord(row, index)
		if !keep {
			stats.RowsDropped++
			continue
		}

		if err := writer.Write(record.Row()); err != nil {
			return nil, fmt.Errorf("writing output row: %w", err)
		}
		stats.RowsKept++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flushing output: %w", err)
	}
	return stats, nil
}

// sourceColumnIndex maps each retained column to its position in the source
// header. A retained column missing from the source is a hard error.
func sourceColumnIndex(header []string) (map[string]int, error) {
	position := make(map[string]int, len(header))
	for i, name := range header {
		position[strings.TrimSpace(name)] = i
	}

	index := make(map[string]int, len(retainedColumns()))
	for _, name := range retainedColumns() {
		pos, ok := position[name]
		if !ok {
			return nil, fmt.Errorf("snapshot is missing required column %q", name)
		}
		index[name] = pos
	}
	return index, nil
}

// buildRecord converts one source row into a MarketRecord. The second return
// reports whether the row is kept: rows with an empty retained value, an
// unparseable period date or a period_begin outside the filter are dropped.
func (t *Transformer) buildRecord(row []string, index map[string]int) (*entity.MarketRecord, bool) {
	values := make(map[string]string, len(index))
	for name, pos := range index {
		if pos >= len(row) {
			return nil, false
		}
		value := strings.TrimSpace(row[pos])
		if value == "" {
			return nil, false
		}
		values[name] = value
	}

	periodBegin, err := time.Parse(entity.DateLayout, values["period_begin"])
	if err != nil {
		return nil, false
	}
	periodEnd, err := time.Parse(entity.DateLayout, values["period_end"])
	if err != nil {
		return nil, false
	}

	if t.periodBeginFrom != nil && periodBegin.Before(*t.periodBeginFrom) {
		return nil, false
	}
	if t.periodBeginTo != nil && periodBegin.After(*t.periodBeginTo) {
		return nil, false
	}

	record := &entity.MarketRecord{
		PeriodBegin:          periodBegin,
		PeriodEnd:            periodEnd,
		PeriodDuration:       values["period_duration"],
		RegionType:           values["region_type"],
		RegionTypeID:         values["region_type_id"],
		TableID:              values["table_id"],
		IsSeasonallyAdjusted: values["is_seasonally_adjusted"],

		City:           values["city"],
		State:          values["state"],
		StateCode:      values["state_code"],
		PropertyType:   values["property_type"],
		PropertyTypeID: values["property_type_id"],

		MedianSalePrice: values["median_sale_price"],
		MedianListPrice: values["median_list_price"],
		MedianPpsf:      values["median_ppsf"],
		MedianListPpsf:  values["median_list_ppsf"],
		HomesSold:       values["homes_sold"],
		Inventory:       values["inventory"],
		MonthsOfSupply:  values["months_of_supply"],
		MedianDom:       values["median_dom"],
		AvgSaleToList:   values["avg_sale_to_list"],
		SoldAboveList:   values["sold_above_list"],

		ParentMetroRegionMetroCode: values["parent_metro_region_metro_code"],
		LastUpdated:                values["last_updated"],
	}
	record.DerivePeriodColumns()
	return record, true
}
