package models

import "testing"

func line(bookID, language string, qty int, price float64) CartItem {
	return CartItem{BookID: bookID, Language: language, Quantity: qty, Price: Price(price)}
}

func TestAddItemMergesSameLine(t *testing.T) {
	cart := AddItem(nil, line("b1", "english", 2, 100))
	cart = AddItem(cart, line("b1", "english", 3, 100))

	if len(cart) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart))
	}
	if cart[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", cart[0].Quantity)
	}
}

func TestAddItemKeepsLanguagesSeparate(t *testing.T) {
	cart := AddItem(nil, line("b1", "english", 1, 100))
	cart = AddItem(cart, line("b1", "urdu", 1, 100))

	if len(cart) != 2 {
		t.Fatalf("expected 2 lines for distinct editions, got %d", len(cart))
	}
}

func TestAddItemIgnoresNonPositiveQuantity(t *testing.T) {
	cart := AddItem(nil, line("b1", "", 0, 100))
	cart = AddItem(cart, line("b2", "", -3, 100))
	if len(cart) != 0 {
		t.Errorf("expected empty cart, got %d lines", len(cart))
	}
}

func TestLineQuantityCountsWhatTheCartHolds(t *testing.T) {
	cart := AddItem(nil, line("b1", "english", 2, 100))
	cart = AddItem(cart, line("b1", "urdu", 1, 100))

	if got := LineQuantity(cart, "b1", "english"); got != 2 {
		t.Errorf("expected 2 english units, got %d", got)
	}
	if got := LineQuantity(cart, "b1", "urdu"); got != 1 {
		t.Errorf("expected 1 urdu unit, got %d", got)
	}
	if got := LineQuantity(cart, "b2", ""); got != 0 {
		t.Errorf("expected 0 for an absent line, got %d", got)
	}

	// repeated adds against a 3-unit shelf: the merged quantity is what
	// the stock check has to see, not just the increment
	const stock = 3
	add := 2
	if held := LineQuantity(cart, "b1", "english"); held+add <= stock {
		t.Errorf("fixture broken: %d held + %d added should exceed stock %d", held, add, stock)
	}
}

func TestSetQuantity(t *testing.T) {
	cart := AddItem(nil, line("b1", "english", 2, 100))
	cart = AddItem(cart, line("b2", "", 1, 50))

	cart = SetQuantity(cart, "b1", "english", 7)
	if cart[0].Quantity != 7 {
		t.Errorf("expected quantity 7, got %d", cart[0].Quantity)
	}

	// zero removes the line, never keeps a zero-quantity row
	cart = SetQuantity(cart, "b1", "english", 0)
	if len(cart) != 1 || cart[0].BookID != "b2" {
		t.Errorf("expected only b2 to remain, got %+v", cart)
	}

	// negative behaves like zero
	cart = SetQuantity(cart, "b2", "", -1)
	if len(cart) != 0 {
		t.Errorf("expected empty cart, got %+v", cart)
	}
}

func TestRemoveItemMatchesLanguage(t *testing.T) {
	cart := AddItem(nil, line("b1", "english", 1, 100))
	cart = AddItem(cart, line("b1", "urdu", 1, 100))

	cart = RemoveItem(cart, "b1", "urdu")
	if len(cart) != 1 || cart[0].Language != "english" {
		t.Errorf("expected english line to survive, got %+v", cart)
	}

	// no-op on an absent line
	cart = RemoveItem(cart, "b9", "")
	if len(cart) != 1 {
		t.Errorf("expected no change, got %+v", cart)
	}
}

func TestCartTotals(t *testing.T) {
	cart := []CartItem{
		line("b1", "english", 2, 100),
		line("b2", "", 3, 49.5),
	}

	if got := CartTotal(cart); got != 348.5 {
		t.Errorf("CartTotal = %v, want 348.5", got)
	}
	if got := CartTotalItems(cart); got != 5 {
		t.Errorf("CartTotalItems = %d, want 5", got)
	}
	if got := CartTotal(nil); got != 0 {
		t.Errorf("CartTotal(nil) = %v, want 0", got)
	}
}
