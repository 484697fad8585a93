package cart

import (
	"errors"
	"testing"

	"luxelush/internal/domain"
)

func testProduct() *domain.Product {
	return &domain.Product{
		ID:        "prod-1",
		Name:      "Gold Band Ring",
		BasePrice: 2999,
		Sizes:     []string{"S", "M", "L"},
		Variants: []domain.Variant{
			{ID: "var-red", Color: "Rose Gold", Stock: 5, Price: 0},
			{ID: "var-white", Color: "White Gold", Stock: 3, Price: 500},
			{ID: "var-out", Color: "Platinum", Stock: 0, Price: 1500},
		},
	}
}

func TestApplyAddNewItem(t *testing.T) {
	state, err := Apply(Empty(), Action{
		Type:      AddItem,
		Product:   testProduct(),
		VariantID: "var-red",
		Quantity:  1,
		Size:      "M",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(state.Items))
	}
	if state.ItemCount != 1 || state.Total != 2999 {
		t.Fatalf("unexpected totals count=%d total=%d", state.ItemCount, state.Total)
	}
	if state.Items[0].ID == "" {
		t.Fatalf("expected generated item id")
	}
}

func TestApplyAddMergesSameLine(t *testing.T) {
	p := testProduct()
	state, err := Apply(Empty(), Action{Type: AddItem, Product: p, VariantID: "var-red", Quantity: 1, Size: "M"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state, err = Apply(state, Action{Type: AddItem, Product: p, VariantID: "var-red", Quantity: 2, Size: "M"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Items) != 1 {
		t.Fatalf("expected merged line, got %d items", len(state.Items))
	}
	if state.Items[0].Quantity != 3 || state.ItemCount != 3 || state.Total != 3*2999 {
		t.Fatalf("unexpected merge result %+v", state)
	}
}

func TestApplyAddDistinctVariantsStayDistinct(t *testing.T) {
	p := testProduct()
	state, _ := Apply(Empty(), Action{Type: AddItem, Product: p, VariantID: "var-red", Size: "M"})
	state, err := Apply(state, Action{Type: AddItem, Product: p, VariantID: "var-white", Size: "M"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(state.Items))
	}
	if state.Total != 2999+3499 {
		t.Fatalf("expected variant adjustment in total, got %d", state.Total)
	}
}

func TestApplyAddPersonalizationAbsentEqualsEmpty(t *testing.T) {
	p := testProduct()
	state, _ := Apply(Empty(), Action{Type: AddItem, Product: p, VariantID: "var-red", Size: "M", Personalization: "  "})
	state, err := Apply(state, Action{Type: AddItem, Product: p, VariantID: "var-red", Size: "M"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Items) != 1 || state.Items[0].Quantity != 2 {
		t.Fatalf("expected blank personalization to merge, got %+v", state.Items)
	}
}

func TestApplyAddValidation(t *testing.T) {
	p := testProduct()

	_, err := Apply(Empty(), Action{Type: AddItem, Product: p, VariantID: "nope"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for unknown variant, got %v", err)
	}

	_, err = Apply(Empty(), Action{Type: AddItem, Product: p, VariantID: "var-out"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for zero stock, got %v", err)
	}

	_, err = Apply(Empty(), Action{Type: AddItem})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for nil product, got %v", err)
	}
}

func TestApplyAddDefaultsQuantityToOne(t *testing.T) {
	state, err := Apply(Empty(), Action{Type: AddItem, Product: testProduct(), VariantID: "var-red", Size: "M"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Items[0].Quantity != 1 {
		t.Fatalf("expected default quantity 1, got %d", state.Items[0].Quantity)
	}
}

func TestApplyUpdateQuantity(t *testing.T) {
	state, _ := Apply(Empty(), Action{Type: AddItem, Product: testProduct(), VariantID: "var-red", Size: "M"})
	id := state.Items[0].ID

	state, err := Apply(state, Action{Type: UpdateQuantity, ItemID: id, Quantity: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Items[0].Quantity != 4 || state.ItemCount != 4 || state.Total != 4*2999 {
		t.Fatalf("unexpected state after update %+v", state)
	}
}

func TestApplyUpdateQuantityZeroRemoves(t *testing.T) {
	state, _ := Apply(Empty(), Action{Type: AddItem, Product: testProduct(), VariantID: "var-red", Size: "M"})
	id := state.Items[0].ID

	state, err := Apply(state, Action{Type: UpdateQuantity, ItemID: id, Quantity: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Items) != 0 || state.ItemCount != 0 || state.Total != 0 {
		t.Fatalf("expected empty cart, got %+v", state)
	}
}

func TestApplyUpdateUnknownIDIsNoop(t *testing.T) {
	state, _ := Apply(Empty(), Action{Type: AddItem, Product: testProduct(), VariantID: "var-red", Size: "M"})

	after, err := Apply(state, Action{Type: UpdateQuantity, ItemID: "missing", Quantity: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(after.Items) != 1 || after.Items[0].Quantity != state.Items[0].Quantity {
		t.Fatalf("expected no-op, got %+v", after)
	}

	after, err = Apply(state, Action{Type: RemoveItem, ItemID: "missing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(after.Items) != 1 {
		t.Fatalf("expected no-op remove, got %+v", after)
	}
}

func TestApplyRemoveItem(t *testing.T) {
	p := testProduct()
	state, _ := Apply(Empty(), Action{Type: AddItem, Product: p, VariantID: "var-red", Size: "M"})
	state, _ = Apply(state, Action{Type: AddItem, Product: p, VariantID: "var-white", Size: "L"})
	id := state.Items[0].ID

	state, err := Apply(state, Action{Type: RemoveItem, ItemID: id})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Items) != 1 || state.Items[0].VariantID != "var-white" {
		t.Fatalf("unexpected items after remove %+v", state.Items)
	}
	if state.Total != 3499 || state.ItemCount != 1 {
		t.Fatalf("totals not recomputed after remove %+v", state)
	}
}

func TestApplyClearCart(t *testing.T) {
	p := testProduct()
	state, _ := Apply(Empty(), Action{Type: AddItem, Product: p, VariantID: "var-red", Size: "M", Quantity: 3})
	state, _ = Apply(state, Action{Type: ToggleCart})

	state, err := Apply(state, Action{Type: ClearCart})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Items) != 0 || state.ItemCount != 0 || state.Total != 0 {
		t.Fatalf("expected empty state, got %+v", state)
	}
	if !state.IsOpen {
		t.Fatalf("clear should not touch the open flag")
	}
}

func TestApplyToggleLeavesItemsAlone(t *testing.T) {
	state, _ := Apply(Empty(), Action{Type: AddItem, Product: testProduct(), VariantID: "var-red", Size: "M"})

	toggled, err := Apply(state, Action{Type: ToggleCart})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !toggled.IsOpen || toggled.Total != state.Total || len(toggled.Items) != 1 {
		t.Fatalf("toggle changed cart contents %+v", toggled)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	p := testProduct()
	state, _ := Apply(Empty(), Action{Type: AddItem, Product: p, VariantID: "var-red", Size: "M"})
	before := state.Items[0].Quantity

	if _, err := Apply(state, Action{Type: AddItem, Product: p, VariantID: "var-red", Size: "M", Quantity: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Items[0].Quantity != before {
		t.Fatalf("input state mutated: quantity %d -> %d", before, state.Items[0].Quantity)
	}
}

func TestApplyUnknownAction(t *testing.T) {
	_, err := Apply(Empty(), Action{Type: ActionType("NOPE")})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
