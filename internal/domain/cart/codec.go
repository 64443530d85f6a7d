package cart

import (
	"encoding/json"
)

// Encode serialises the cart as a JSON array of line items, the slot format
// shared with the storefront pages: [{"id","name","price","images","quantity"}].
func Encode(c Cart) ([]byte, error) {
	items := c.Items()
	for i := range items {
		if items[i].Images == nil {
			items[i].Images = []string{}
		}
	}
	return json.Marshal(items)
}

// Decode parses a slot value. Callers treat any error as an empty cart.
func Decode(data []byte) (Cart, error) {
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return Cart{}, err
	}
	return New(items...), nil
}
