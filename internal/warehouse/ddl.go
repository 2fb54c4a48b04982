package warehouse

// columnDefs pairs each warehouse column with its Snowflake type, in the
// exact order the transformed CSV writes them.
var columnDefs = [][2]string{
	{"period_begin", "DATE"},
	{"period_end", "DATE"},
	{"period_duration", "INT"},
	{"region_type", "STRING"},
	{"region_type_id", "INT"},
	{"table_id", "INT"},
	{"is_seasonally_adjusted", "STRING"},
	{"city", "STRING"},
	{"state", "STRING"},
	{"state_code", "STRING"},
	{"property_type", "STRING"},
	{"property_type_id", "INT"},
	{"median_sale_price", "FLOAT"},
	{"median_list_price", "FLOAT"},
	{"median_ppsf", "FLOAT"},
	{"median_list_ppsf", "FLOAT"},
	{"homes_sold", "FLOAT"},
	{"inventory", "FLOAT"},
	{"months_of_supply", "FLOAT"},
	{"median_dom", "FLOAT"},
	{"avg_sale_to_list", "FLOAT"},
	{"sold_above_list", "FLOAT"},
	{"parent_metro_region_metro_code", "STRING"},
	{"last_updated", "DATETIME"},
	{"period_begin_in_years", "STRING"},
	{"period_end_in_years", "STRING"},
	{"period_begin_in_months", "STRING"},
	{"period_end_in_months", "STRING"},
}
