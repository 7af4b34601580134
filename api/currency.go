package api

import (
	"fmt"
)

const currencyFactor = 100

// Currency is a fixed-point monetary amount in cents. All premium and
// coverage amounts travel through the API in this form.
type Currency int

// String formats the amount with two fractional digits, e.g. 643500 -> "6435.00"
func (c Currency) String() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/currencyFactor, c%currencyFactor)
}
