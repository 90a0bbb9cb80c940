package enum

import "encoding/json"

// DiscountType represents how a discount value is interpreted at checkout
type DiscountType int

const (
	DiscountNone       DiscountType = 0
	DiscountPercentage DiscountType = 1
	DiscountFlatAmount DiscountType = 2
)

func (d DiscountType) String() string {
	names := [...]string{"None", "Percentage", "FlatAmount"}
	if int(d) < 0 || int(d) >= len(names) {
		return "None"
	}
	return names[d]
}

func (d DiscountType) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DiscountType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*d = DiscountType(i)
		return nil
	}
	*d = ParseDiscountType(str)
	return nil
}

// ParseDiscountType maps a request string to a DiscountType.
// Unknown values fall back to DiscountNone.
func ParseDiscountType(s string) DiscountType {
	switch s {
	case "Percentage", "percentage":
		return DiscountPercentage
	case "FlatAmount", "flat_amount", "flat":
		return DiscountFlatAmount
	default:
		return DiscountNone
	}
}
