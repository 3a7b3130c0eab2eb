// Package extract implements the two-pass POI and address extraction
// pipeline over an OSM PBF element stream.
package extract

// Category constants.
const (
	CategoryFood           = "food"
	CategoryEntertainment  = "entertainment"
	CategoryHealthcare     = "healthcare"
	CategoryFinancial      = "financial"
	CategoryTransportation = "transportation"
	CategoryEducation      = "education"
	CategoryShopping       = "shopping"
	CategoryAccommodation  = "accommodation"
)

// rule maps the values of one tag key to categories.
type rule struct {
	key    string
	values map[string]string
}

// categoryRules is evaluated in order; the first rule whose key is
// present and whose value is a known one wins. The order is fixed so
// that elements matching more than one rule classify the same way on
// every run.
var categoryRules = []rule{
	{key: "amenity", values: map[string]string{
		"restaurant":       CategoryFood,
		"cafe":             CategoryFood,
		"fast_food":        CategoryFood,
		"bar":              CategoryFood,
		"pub":              CategoryFood,
		"food_court":       CategoryFood,
		"ice_cream":        CategoryFood,
		"biergarten":       CategoryFood,
		"cinema":           CategoryEntertainment,
		"theatre":          CategoryEntertainment,
		"nightclub":        CategoryEntertainment,
		"casino":           CategoryEntertainment,
		"arts_centre":      CategoryEntertainment,
		"community_centre": CategoryEntertainment,
		"hospital":         CategoryHealthcare,
		"clinic":           CategoryHealthcare,
		"doctors":          CategoryHealthcare,
		"dentist":          CategoryHealthcare,
		"pharmacy":         CategoryHealthcare,
		"veterinary":       CategoryHealthcare,
		"bank":             CategoryFinancial,
		"atm":              CategoryFinancial,
		"bureau_de_change": CategoryFinancial,
		"fuel":             CategoryTransportation,
		"parking":          CategoryTransportation,
		"car_rental":       CategoryTransportation,
		"bicycle_rental":   CategoryTransportation,
		"bus_station":      CategoryTransportation,
		"taxi":             CategoryTransportation,
		"school":           CategoryEducation,
		"university":       CategoryEducation,
		"college":          CategoryEducation,
		"library":          CategoryEducation,
		"kindergarten":     CategoryEducation,
	}},
	{key: "shop", values: map[string]string{
		"supermarket":      CategoryShopping,
		"convenience":      CategoryShopping,
		"clothes":          CategoryShopping,
		"mall":             CategoryShopping,
		"department_store": CategoryShopping,
		"electronics":      CategoryShopping,
		"furniture":        CategoryShopping,
		"books":            CategoryShopping,
		"bakery":           CategoryShopping,
		"butcher":          CategoryShopping,
		"florist":          CategoryShopping,
		"hardware":         CategoryShopping,
	}},
	{key: "tourism", values: map[string]string{
		"hotel":       CategoryAccommodation,
		"motel":       CategoryAccommodation,
		"hostel":      CategoryAccommodation,
		"guest_house": CategoryAccommodation,
		"attraction":  CategoryEntertainment,
		"museum":      CategoryEntertainment,
		"gallery":     CategoryEntertainment,
		"viewpoint":   CategoryEntertainment,
	}},
	{key: "leisure", values: map[string]string{
		"park":           CategoryEntertainment,
		"sports_centre":  CategoryEntertainment,
		"playground":     CategoryEntertainment,
		"stadium":        CategoryEntertainment,
		"swimming_pool":  CategoryEntertainment,
		"fitness_centre": CategoryEntertainment,
		"golf_course":    CategoryEntertainment,
	}},
	{key: "office", values: map[string]string{
		"educational_institution": CategoryEducation,
		"university":              CategoryEducation,
	}},
	{key: "education", values: map[string]string{
		"school":     CategoryEducation,
		"university": CategoryEducation,
		"college":    CategoryEducation,
	}},
	{key: "building", values: map[string]string{
		"college":    CategoryEducation,
		"university": CategoryEducation,
		"school":     CategoryEducation,
	}},
}

// Classify returns the category and subcategory for an element's tag
// set, or ok=false when no rule matches. The subcategory is the
// matching tag value. Deterministic: depends only on the tags and the
// fixed rule order.
func Classify(tags map[string]string) (category, subcategory string, ok bool) {
	for _, r := range categoryRules {
		v, present := tags[r.key]
		if !present {
			continue
		}
		if cat, known := r.values[v]; known {
			return cat, v, true
		}
	}
	return "", "", false
}
