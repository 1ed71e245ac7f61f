package models

// CartItem is one line of a cart, authenticated or guest. Lines are unique
// per (book id, language): the Urdu and English editions of the same title
// are distinct purchases and never aggregate into one line.
type CartItem struct {
	BookID   string `json:"book_id"`
	Name     string `json:"name"`
	Author   string `json:"author,omitempty"`
	Price    Price  `json:"price"`
	Quantity int    `json:"quantity"`
	Language string `json:"language,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// SameLine reports whether two items belong to the same cart line.
func (i CartItem) SameLine(other CartItem) bool {
	return i.BookID == other.BookID && i.Language == other.Language
}

//
// --- CART MUTATIONS ---
//
// Pure functions shared by the authenticated and guest cart handlers. Every
// mutation returns the full resulting cart; callers persist and return it
// verbatim so the client can replace its local copy wholesale.
//

// AddItem merges an item into the cart: an existing line gets its quantity
// incremented by the new item's quantity, otherwise the item is appended.
// Non-positive quantities leave the cart untouched.
func AddItem(cart []CartItem, item CartItem) []CartItem {
	if item.Quantity <= 0 {
		return cart
	}
	for idx := range cart {
		if cart[idx].SameLine(item) {
			cart[idx].Quantity += item.Quantity
			return cart
		}
	}
	return append(cart, item)
}

// SetQuantity sets a line's quantity directly (not incrementally).
// Quantity 0 removes the line; no zero-quantity row is ever kept.
// Negative quantities are treated as 0.
func SetQuantity(cart []CartItem, bookID, language string, quantity int) []CartItem {
	if quantity <= 0 {
		return RemoveItem(cart, bookID, language)
	}
	for idx := range cart {
		if cart[idx].BookID == bookID && cart[idx].Language == language {
			cart[idx].Quantity = quantity
			break
		}
	}
	return cart
}

// RemoveItem drops the matching line. An empty language matches only
// lines with no language selected.
func RemoveItem(cart []CartItem, bookID, language string) []CartItem {
	out := make([]CartItem, 0, len(cart))
	for _, item := range cart {
		if item.BookID == bookID && item.Language == language {
			continue
		}
		out = append(out, item)
	}
	return out
}

// LineQuantity returns the units the (book, language) line already
// holds, or 0 when the cart has no such line.
func LineQuantity(cart []CartItem, bookID, language string) int {
	for _, item := range cart {
		if item.BookID == bookID && item.Language == language {
			return item.Quantity
		}
	}
	return 0
}

// CartTotal is the sum of price × quantity over the cart.
func CartTotal(cart []CartItem) float64 {
	var total float64
	for _, item := range cart {
		total += item.Price.Float64() * float64(item.Quantity)
	}
	return total
}

// CartTotalItems is the sum of quantities over the cart.
func CartTotalItems(cart []CartItem) int {
	var n int
	for _, item := range cart {
		n += item.Quantity
	}
	return n
}
