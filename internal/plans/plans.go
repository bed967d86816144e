package plans

import (
	"fmt"
	"strconv"
	"strings"
)

// Currency is the currency every catalog price is quoted in.
const Currency = "NPR"

// ID identifies a subscription tier.
type ID = string

const (
	Free     ID = "free"
	Pro      ID = "pro"
	Ultimate ID = "ultimate"
)

// Plan is a subscription tier. Price is the display string ("1,500"), not a number;
// use GetPlanNumericPrice for arithmetic.
type Plan struct {
	ID          ID       `json:"id"`
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Features    []string `json:"features"`
	Color       string   `json:"color"`
	Highlighted bool     `json:"highlighted"`
}

// IsFree reports whether the plan costs nothing.
func (p Plan) IsFree() bool {
	return p.Price == "0"
}

// catalog is ordered for display. The first entry is the default tier.
var catalog = []Plan{
	{
		ID:    Free,
		Name:  "Free",
		Price: "0",
		Features: []string{
			"Up to 50 guests",
			"1 event",
			"Basic RSVP tracking",
		},
		Color: "gray",
	},
	{
		ID:    Pro,
		Name:  "Pro",
		Price: "1,500",
		Features: []string{
			"Up to 500 guests",
			"Unlimited events",
			"Guest categories",
			"Custom fields",
			"CSV import and export",
		},
		Color:       "blue",
		Highlighted: true,
	},
	{
		ID:    Ultimate,
		Name:  "Ultimate",
		Price: "5,000",
		Features: []string{
			"Unlimited guests",
			"Everything in Pro",
			"WhatsApp invitations",
			"Priority support",
		},
		Color: "purple",
	},
}

func init() {
	if err := validate(catalog); err != nil {
		panic(err)
	}
}

// All returns the catalog in display order. The returned slice is a copy.
func All() []Plan {
	out := make([]Plan, len(catalog))
	for i, p := range catalog {
		out[i] = p.clone()
	}
	return out
}

// GetPlanByID returns the plan whose id matches exactly. Unknown ids resolve to the
// free tier instead of failing; use IsKnown to tell the two apart.
func GetPlanByID(id string) Plan {
	for _, p := range catalog {
		if p.ID == id {
			return p.clone()
		}
	}
	return catalog[0].clone()
}

// IsKnown reports whether id names a catalog entry.
func IsKnown(id string) bool {
	for _, p := range catalog {
		if p.ID == id {
			return true
		}
	}
	return false
}

// GetPlanNumericPrice returns the plan price as an integer amount in Currency.
// Unknown ids are priced as the free tier.
func GetPlanNumericPrice(id string) int {
	p := GetPlanByID(id)
	if p.Price == "0" {
		return 0
	}
	// catalog prices are checked at init
	n, _ := parsePrice(p.Price)
	return n
}

func parsePrice(price string) (int, error) {
	return strconv.Atoi(strings.ReplaceAll(price, ",", ""))
}

func (p Plan) clone() Plan {
	p.Features = append([]string(nil), p.Features...)
	return p
}

func validate(plans []Plan) error {
	if len(plans) == 0 {
		return fmt.Errorf("plan catalog is empty")
	}
	if plans[0].Price != "0" {
		return fmt.Errorf("first plan %q must be free, has price %q", plans[0].ID, plans[0].Price)
	}
	seen := make(map[ID]bool, len(plans))
	for _, p := range plans {
		if seen[p.ID] {
			return fmt.Errorf("duplicate plan id %q", p.ID)
		}
		seen[p.ID] = true
		n, err := parsePrice(p.Price)
		if err != nil {
			return fmt.Errorf("plan %q has malformed price %q: %w", p.ID, p.Price, err)
		}
		if n < 0 {
			return fmt.Errorf("plan %q has negative price %q", p.ID, p.Price)
		}
	}
	return nil
}
