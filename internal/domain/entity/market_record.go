package entity

import (
	"strconv"
	"time"
)

// DateLayout is the date format of the snapshot period columns.
const DateLayout = "2006-01-02"

// MarketRecord is one row of the city market tracker output: the retained
// snapshot columns plus the derived period columns.
type MarketRecord struct {
	PeriodBegin          time.Time
	PeriodEnd            time.Time
	PeriodDuration       string
	RegionType           string
	RegionTypeID         string
	TableID              string
	IsSeasonallyAdjusted string

	City           string
	State          string
	StateCode      string
	PropertyType   string
	PropertyTypeID string

	MedianSalePrice string
	MedianListPrice string
	MedianPpsf      string
	MedianListPpsf  string
	HomesSold       string
	Inventory       string
	MonthsOfSupply  string
	MedianDom       string
	AvgSaleToList   string
	SoldAboveList   string

	ParentMetroRegionMetroCode string
	LastUpdated                string

	PeriodBeginInYears  string
	PeriodEndInYears    string
	PeriodBeginInMonths string
	PeriodEndInMonths   string
}

// MarketColumns returns the output column names in order. The transform
// header and the warehouse table definition both follow this list.
func MarketColumns() []string {
	return []string{
		"period_begin",
		"period_end",
		"period_duration",
		"region_type",
		"region_type_id",
		"table_id",
		"is_seasonally_adjusted",
		"city",
		"state",
		"state_code",
		"property_type",
		"property_type_id",
		"median_sale_price",
		"median_list_price",
		"median_ppsf",
		"median_list_ppsf",
		"homes_sold",
		"inventory",
		"months_of_supply",
		"median_dom",
		"avg_sale_to_list",
		"sold_above_list",
		"parent_metro_region_metro_code",
		"last_updated",
		"period_begin_in_years",
		"period_end_in_years",
		"period_begin_in_months",
		"period_end_in_months",
	}
}

// DerivePeriodColumns fills the derived year and month columns from the
// period dates. Month values are English month names.
func (r *MarketRecord) DerivePeriodColumns() {
	r.PeriodBeginInYears = strconv.Itoa(r.PeriodBegin.Year())
	r.PeriodEndInYears = strconv.Itoa(r.PeriodEnd.Year())
	r.PeriodBeginInMonths = r.PeriodBegin.Month().String()
	r.PeriodEndInMonths = r.PeriodEnd.Month().String()
}

// Row returns the record cells in MarketColumns order.
func (r *MarketRecord) Row() []string {
	return []string{
		r.PeriodBegin.Format(DateLayout),
		r.PeriodEnd.Format(DateLayout),
		r.PeriodDuration,
		r.RegionType,
		r.RegionTypeID,
		r.TableID,
		r.IsSeasonallyAdjusted,
		r.City,
		r.State,
		r.StateCode,
		r.PropertyType,
		r.PropertyTypeID,
		r.MedianSalePrice,
		r.MedianListPrice,
		r.MedianPpsf,
		r.MedianListPpsf,
		r.HomesSold,
		r.Inventory,
		r.MonthsOfSupply,
		r.MedianDom,
		r.AvgSaleToList,
		r.SoldAboveList,
		r.ParentMetroRegionMetroCode,
		r.LastUpdated,
		r.PeriodBeginInYears,
		r.PeriodEndInYears,
		r.PeriodBeginInMonths,
		r.PeriodEndInMonths,
	}
}
