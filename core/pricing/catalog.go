package pricing

import "github.com/shopspring/decimal"

// catalogRequest is the wire shape the pricing catalog expects (spec §6).
type catalogRequest struct {
	ServiceCode string           `json:"ServiceCode"`
	Filters     []catalogFilter  `json:"Filters"`
	MaxResults  int              `json:"MaxResults"`
}

type catalogFilter struct {
	Type  string `json:"Type"`
	Field string `json:"Field"`
	Value string `json:"Value"`
}

// catalogResponse is the subset of the AWS Price List API response shape
// this client understands, grounded on the same terms.OnDemand.*.priceDimensions.*
// structure the teacher's offer-file ingestion pipeline decodes.
type catalogResponse struct {
	PriceList []priceListEntry `json:"PriceList"`
}

type priceListEntry struct {
	Product priceListProduct `json:"product"`
	Terms   priceListTerms   `json:"terms"`
}

type priceListProduct struct {
	ProductFamily string            `json:"productFamily"`
	Attributes    map[string]string `json:"attributes"`
}

type priceListTerms struct {
	OnDemand map[string]map[string]priceListTerm `json:"OnDemand"`
}

type priceListTerm struct {
	PriceDimensions map[string]priceDimension `json:"priceDimensions"`
}

type priceDimension struct {
	Unit         string            `json:"unit"`
	PricePerUnit map[string]string `json:"pricePerUnit"`
}

// firstOnDemandUSDPrice decodes the first on-demand price dimension's USD
// pricePerUnit from a catalog response. It returns (0, false) for any shape
// the spec calls out as "unsupported" (no terms.OnDemand, no
// priceDimensions, no USD unit) rather than erroring — those are null
// signals, not failures (spec §4.3).
func firstOnDemandUSDPrice(resp catalogResponse) (decimal.Decimal, bool) {
	if len(resp.PriceList) == 0 {
		return decimal.Zero, false
	}

	for _, entry := range resp.PriceList {
		for _, termsBySKU := range entry.Terms.OnDemand {
			for _, term := range termsBySKU {
				for _, dim := range term.PriceDimensions {
					usd, ok := dim.PricePerUnit["USD"]
					if !ok {
						continue
					}
					value, err := parseUSD(usd)
					if err != nil {
						continue
					}
					return value, true
				}
			}
		}
	}
	return decimal.Zero, false
}
