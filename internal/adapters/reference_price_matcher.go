package adapters

import (
	estports "estimate_backend/internal/estimates/ports"
	pbservice "estimate_backend/internal/pricebook/service"
)

// ReferencePriceMatcher adapts the pricebook matcher to the estimates
// module's PriceMatcher port.
type ReferencePriceMatcher struct {
	matcher *pbservice.Matcher
}

// Compile-time check that the adapter satisfies the port.
var _ estports.PriceMatcher = (*ReferencePriceMatcher)(nil)

// NewReferencePriceMatcher creates a matcher adapter.
func NewReferencePriceMatcher(matcher *pbservice.Matcher) *ReferencePriceMatcher {
	return &ReferencePriceMatcher{matcher: matcher}
}

// Match returns the catalog subset relevant to the description, translated
// into the estimates module's reference types.
func (a *ReferencePriceMatcher) Match(description string) ([]estports.ReferenceGroup, error) {
	groups, err := a.matcher.Match(description)
	if err != nil {
		return nil, err
	}

	out := make([]estports.ReferenceGroup, 0, len(groups))
	for _, g := range groups {
		group := estports.ReferenceGroup{Category: g.Category}
		for _, e := range g.Entries {
			group.Prices = append(group.Prices, estports.ReferencePrice{
				Code:        e.Code,
				Description: e.Description,
				Unit:        e.Unit,
				UnitPrice:   e.UnitPrice,
			})
		}
		out = append(out, group)
	}
	return out, nil
}
