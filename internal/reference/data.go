package reference

// defaultVersion stamps the bundled dataset. It is propagated into every
// composite result so a stored assessment can be traced back to the constants
// that produced it.
const defaultVersion = "2025-12"

// Category names used by Lookup.
const (
	CategoryEducation      = "education"
	CategoryLabor          = "labor"
	CategorySocialPrograms = "social_programs"
	CategoryIncarceration  = "incarceration"
	CategoryCrime          = "crime"
	CategoryEnvironment    = "environment"
	CategoryMultipliers    = "multipliers"
	CategoryMacro          = "macro"
	CategoryScoring        = "scoring"
)

// defaultValues is the bundled economic/social dataset. Monetary amounts are
// in local currency (BRL) per unit unless the key says otherwise; rates are
// dimensionless fractions.
var defaultValues = map[string]map[string]float64{
	CategoryEducation: {
		"dropout_cost_avoided":     50000.00,
		"dropout_cost_avoided_max": 80000.00,
		"dropout_value_share":      0.10,
	},
	CategoryLabor: {
		"tax_yield_one_wage_year":    5004.00,
		"tax_yield_five_wages_year":  21804.00,
		"tax_yield_ten_wages_year":   49420.00,
		"avg_formal_worker_tax_year": 15000.00,
	},
	CategorySocialPrograms: {
		"family_subsidy_cost_year":    8196.00,
		"family_subsidy_benefit_month": 683.00,
	},
	CategoryIncarceration: {
		"state_inmate_cost_year":   27978.00,
		"federal_inmate_cost_year": 489600.00,
		"incarceration_share":      0.30,
		"savings_horizon_cap":      5,
	},
	CategoryCrime: {
		"homicide_cost":           1000000.00,
		"robbery_cost":            114000.00,
		"theft_cost":              5000.00,
		"trafficking_cost":        100000.00,
		"other_crime_cost":        20000.00,
		"homicide_health_cost":    50000.00,
		"minor_crime_health_cost": 5000.00,
		"security_overhead_rate":  0.15,
		"urban_involvement_rate":  0.05,
		"rural_involvement_rate":  0.03,
		"reduction_effectiveness": 0.70,
		"homicide_share":          0.02,
		"robbery_share":           0.15,
		"theft_share":             0.25,
		"trafficking_share":       0.10,
		"other_share":             0.48,
	},
	CategoryEnvironment: {
		"restoration_cost_amazon":                2000.00,
		"restoration_cost_atlantic_forest":       2100.00,
		"restoration_cost_cerrado":               3000.00,
		"restoration_cost_caatinga":              1800.00,
		"restoration_cost_pantanal":              2200.00,
		"restoration_cost_pampa":                 1900.00,
		"restoration_cost_natural_regeneration":  800.00,
		"restoration_cost_assisted_regeneration": 1200.00,
		"restoration_cost_full_planting":         2500.00,
		"sequestration_tons_per_hectare_year":    10.0,
		"carbon_price_usd":                       25.00,
		"pes_per_hectare_year_min":               500.00,
		"pes_per_hectare_year_max":               1850.00,
		"biodiversity_per_hectare_year":          500.00,
	},
	CategoryMultipliers: {
		"family":    3.5,
		"community": 2.0,
	},
	CategoryMacro: {
		"usd_fx_rate":              5.75,
		"avg_crime_cost":           150000.00,
		"avg_hospitalization_cost": 3500.00,
	},
	CategoryScoring: {
		"sroi_floor_multiplier":   0.5,
		"sroi_ceiling_multiplier": 1.5,
		"tier_a_threshold":        20.0,
		"tier_b_threshold":        12.0,
		"tier_c_threshold":        6.0,
		"tokenization_threshold":  5000,
	},
}

// categoryDefaults is the documented default returned when a key is missing
// from its category. Categories not listed fall back to zero.
var categoryDefaults = map[string]float64{
	CategoryCrime:       50000.00, // generic per-crime cost
	CategoryEnvironment: 2500.00,  // full-planting restoration cost
}

// defaultSROIRanges holds reference SROI bands per project type.
var defaultSROIRanges = map[string]SROIRange{
	"education":           {Min: 1.5, Max: 3.5, Mid: 2.5},
	"vocational_training": {Min: 3.5, Max: 6.8, Mid: 5.0},
	"early_childhood":     {Min: 7.0, Max: 13.0, Mid: 10.0},
	"preventive_health":   {Min: 2.0, Max: 4.0, Mid: 3.0},
	"environment":         {Min: 1.5, Max: 4.0, Mid: 2.5},
	"resocialization":     {Min: 2.0, Max: 5.0, Mid: 3.5},
	"sports_culture":      {Min: 1.2, Max: 2.5, Mid: 1.8},
}

// fallbackSROIRange applies to unrecognized project types.
var fallbackSROIRange = SROIRange{Min: 1.0, Max: 3.0, Mid: 2.0}
