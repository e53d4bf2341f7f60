package domain

// Product is a single catalog entry. Prices are whole yen.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     int64           `json:"price"`
	Image     string          `json:"image"`
	Stock     int             `json:"stock"`
	Options   *ProductOptions `json:"options,omitempty"`
	DetailURL string          `json:"detailUrl,omitempty"`
	Order     *int            `json:"order,omitempty"`
}

// ProductOptions describes a single variant axis, e.g. Size with 16cm/18cm.
// A nil *ProductOptions on a Product means the product has no variants.
type ProductOptions struct {
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// HasValue reports whether value is one of the selectable option values.
func (o *ProductOptions) HasValue(value string) bool {
	if o == nil {
		return false
	}
	for _, v := range o.Values {
		if v == value {
			return true
		}
	}
	return false
}
