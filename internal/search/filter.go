package search

import (
	"math"
	"strconv"
	"strings"
)

// AllValue is the "no preference" choice of the search form selects
const AllValue = "all"

// RawFilter is a search request exactly as it arrives from the query string
// or the search form. Every field may be empty.
type RawFilter struct {
	Location     string `form:"location" json:"location"`
	PropertyType string `form:"propertyType" json:"propertyType"`
	PriceType    string `form:"priceType" json:"priceType"`
	Bedrooms     string `form:"bedrooms" json:"bedrooms"`
	Bathrooms    string `form:"bathrooms" json:"bathrooms"`
	PriceMin     string `form:"priceMin" json:"priceMin"`
	PriceMax     string `form:"priceMax" json:"priceMax"`
}

// Count is a room count constraint. OrMore marks an open-ended bucket
// such as "5+".
type Count struct {
	N      int
	OrMore bool
}

// String renders the count the way the search form does
func (c Count) String() string {
	if c.OrMore {
		return strconv.Itoa(c.N) + "+"
	}
	return strconv.Itoa(c.N)
}

// Filter is the normalized search request. Zero values mean "no constraint".
type Filter struct {
	Location     string
	PropertyType string
	PriceType    string
	Bedrooms     *Count
	Bathrooms    *Count
	PriceMin     *float64
	PriceMax     *float64

	// Ignored lists the keys whose values could not be parsed and were dropped
	Ignored []string
}

// Normalize converts raw input into a Filter. It never fails: a value that
// cannot be parsed is dropped and its key recorded in Ignored.
func (r RawFilter) Normalize() Filter {
	f := Filter{
		Location:     text(r.Location),
		PropertyType: text(r.PropertyType),
		PriceType:    text(r.PriceType),
	}

	if v := text(r.Bedrooms); v != "" {
		if c, ok := ParseCount(v); ok {
			f.Bedrooms = &c
		} else {
			f.Ignored = append(f.Ignored, "bedrooms")
		}
	}
	if v := text(r.Bathrooms); v != "" {
		if c, ok := ParseCount(v); ok {
			f.Bathrooms = &c
		} else {
			f.Ignored = append(f.Ignored, "bathrooms")
		}
	}
	if v := text(r.PriceMin); v != "" {
		if n, ok := parseNumber(v); ok {
			f.PriceMin = &n
		} else {
			f.Ignored = append(f.Ignored, "priceMin")
		}
	}
	if v := text(r.PriceMax); v != "" {
		if n, ok := parseNumber(v); ok {
			f.PriceMax = &n
		} else {
			f.Ignored = append(f.Ignored, "priceMax")
		}
	}

	return f
}

// ParseCount parses "3" or "3+". Negative and non-integer values are rejected.
func ParseCount(s string) (Count, bool) {
	s = strings.TrimSpace(s)
	c := Count{}
	if strings.HasSuffix(s, "+") {
		c.OrMore = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "+"))
	}
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Count{}, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return Count{}, false
	}
	c.N = n
	return c, true
}

// IsEmpty reports whether the filter carries no constraint at all
func (f Filter) IsEmpty() bool {
	return f.Location == "" && f.PropertyType == "" && f.PriceType == "" &&
		f.Bedrooms == nil && f.Bathrooms == nil &&
		f.PriceMin == nil && f.PriceMax == nil
}

// Params returns the canonical, non-empty constraints keyed by their query
// string names. Two filters with the same constraints yield the same map.
func (f Filter) Params() map[string]string {
	params := make(map[string]string)
	if f.Location != "" {
		params["location"] = f.Location
	}
	if f.PropertyType != "" {
		params["propertyType"] = f.PropertyType
	}
	if f.PriceType != "" {
		params["priceType"] = f.PriceType
	}
	if f.Bedrooms != nil {
		params["bedrooms"] = f.Bedrooms.String()
	}
	if f.Bathrooms != nil {
		params["bathrooms"] = f.Bathrooms.String()
	}
	if f.PriceMin != nil {
		params["priceMin"] = strconv.FormatFloat(*f.PriceMin, 'f', -1, 64)
	}
	if f.PriceMax != nil {
		params["priceMax"] = strconv.FormatFloat(*f.PriceMax, 'f', -1, 64)
	}
	return params
}

// text trims the value and maps the "all" sentinel to empty
func text(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, AllValue) {
		return ""
	}
	return s
}

func parseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
