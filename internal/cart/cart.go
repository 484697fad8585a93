// Package cart implements the storefront cart as a pure reducer: every
// mutation takes a state and an action and returns a new state, leaving
// the input untouched. Derived fields (item count, total) are recomputed
// from the line items on every transition so they can never drift.
package cart

import (
	"strings"

	"github.com/google/uuid"

	"luxelush/internal/domain"
)

// Item is one cart line, uniquely keyed by product, variant, size and
// personalization. Price is the unit price captured at add time
// (base price plus variant adjustment) and is deliberately not
// recomputed if catalog prices change later.
type Item struct {
	ID              string `json:"id"`
	ProductID       string `json:"productId"`
	ProductName     string `json:"productName"`
	VariantID       string `json:"variantId"`
	Color           string `json:"color,omitempty"`
	Image           string `json:"image,omitempty"`
	Size            string `json:"size,omitempty"`
	Personalization string `json:"personalization,omitempty"`
	Quantity        int    `json:"quantity"`
	Price           int64  `json:"price"`
}

// State is a full cart snapshot. ItemCount and Total are derived from
// Items; IsOpen is a UI-only flag with no effect on pricing.
type State struct {
	Items     []Item `json:"items"`
	ItemCount int    `json:"itemCount"`
	Total     int64  `json:"total"`
	IsOpen    bool   `json:"isOpen"`
}

// Empty returns the empty cart state.
func Empty() State {
	return State{Items: []Item{}}
}

type ActionType string

const (
	AddItem        ActionType = "ADD_ITEM"
	UpdateQuantity ActionType = "UPDATE_QUANTITY"
	RemoveItem     ActionType = "REMOVE_ITEM"
	ClearCart      ActionType = "CLEAR_CART"
	ToggleCart     ActionType = "TOGGLE_CART"
)

// Action is the tagged union consumed by Apply. Which fields are read
// depends on Type: AddItem uses Product/VariantID/Quantity/Size/
// Personalization, UpdateQuantity uses ItemID/Quantity, RemoveItem uses
// ItemID.
type Action struct {
	Type            ActionType
	Product         *domain.Product
	VariantID       string
	ItemID          string
	Quantity        int
	Size            string
	Personalization string
}

// Apply runs one state transition. Unknown item ids on update/remove are
// a no-op rather than an error, since double-clicks and stale UI state
// are expected. A ValidationError is returned only for structurally
// impossible adds (no such variant, variant out of stock).
func Apply(state State, action Action) (State, error) {
	switch action.Type {
	case AddItem:
		return applyAdd(state, action)
	case UpdateQuantity:
		if action.Quantity <= 0 {
			return removeItem(state, action.ItemID), nil
		}
		return updateQuantity(state, action.ItemID, action.Quantity), nil
	case RemoveItem:
		return removeItem(state, action.ItemID), nil
	case ClearCart:
		out := Empty()
		out.IsOpen = state.IsOpen
		return out, nil
	case ToggleCart:
		out := cloneState(state)
		out.IsOpen = !state.IsOpen
		return out, nil
	default:
		return state, domain.Validationf("unknown cart action %q", action.Type)
	}
}

func applyAdd(state State, action Action) (State, error) {
	if action.Product == nil {
		return state, domain.Validationf("product required")
	}
	variant := action.Product.VariantByID(action.VariantID)
	if variant == nil {
		return state, domain.Validationf("variant %q not found on product %q", action.VariantID, action.Product.ID)
	}
	if variant.Stock == 0 {
		return state, domain.Validationf("variant %q is out of stock", action.VariantID)
	}

	qty := action.Quantity
	if qty <= 0 {
		qty = 1
	}
	personalization := strings.TrimSpace(action.Personalization)

	out := cloneState(state)
	for i, item := range out.Items {
		if item.ProductID == action.Product.ID &&
			item.VariantID == variant.ID &&
			item.Size == action.Size &&
			item.Personalization == personalization {
			out.Items[i].Quantity += qty
			return Recompute(out), nil
		}
	}

	image := ""
	if len(variant.Images) > 0 {
		image = variant.Images[0]
	}
	out.Items = append(out.Items, Item{
		ID:              uuid.NewString(),
		ProductID:       action.Product.ID,
		ProductName:     action.Product.Name,
		VariantID:       variant.ID,
		Color:           variant.Color,
		Image:           image,
		Size:            action.Size,
		Personalization: personalization,
		Quantity:        qty,
		Price:           action.Product.BasePrice + variant.Price,
	})
	return Recompute(out), nil
}

func updateQuantity(state State, itemID string, quantity int) State {
	out := cloneState(state)
	for i, item := range out.Items {
		if item.ID == itemID {
			out.Items[i].Quantity = quantity
			return Recompute(out)
		}
	}
	return state
}

func removeItem(state State, itemID string) State {
	found := false
	for _, item := range state.Items {
		if item.ID == itemID {
			found = true
			break
		}
	}
	if !found {
		return state
	}

	out := State{Items: make([]Item, 0, len(state.Items)-1), IsOpen: state.IsOpen}
	for _, item := range state.Items {
		if item.ID != itemID {
			out.Items = append(out.Items, item)
		}
	}
	return Recompute(out)
}

func cloneState(state State) State {
	out := state
	out.Items = make([]Item, len(state.Items))
	copy(out.Items, state.Items)
	return out
}

// Recompute derives ItemCount and Total from the line items, discarding
// whatever values the snapshot carried. Callers holding a snapshot that
// crossed a trust boundary must run it through here before reading the
// derived fields.
func Recompute(state State) State {
	state.ItemCount = 0
	state.Total = 0
	for _, item := range state.Items {
		state.ItemCount += item.Quantity
		state.Total += item.Price * int64(item.Quantity)
	}
	return state
}
