package services

import (
	"testing"

	"github.com/punkyalice/Foodprep/models"
)

func uintPtr(v uint) *uint { return &v }

// Component normalization is validation-only for FREE components and
// for RECIPE components with explicit calories, so no database is
// needed here.
func TestNormalizeComponents(t *testing.T) {
	svc := &SetService{}

	t.Run("invalid rows silently dropped", func(t *testing.T) {
		got := svc.normalizeComponents([]ComponentInput{
			{ComponentType: "", SourceType: "FREE", FreeText: strPtr("rice"), KcalTotal: intPtr(200)},
			{ComponentType: "SIDE", SourceType: "GUESS", FreeText: strPtr("rice"), KcalTotal: intPtr(200)},
			{ComponentType: "SIDE", SourceType: "FREE", KcalTotal: intPtr(200)},
			{ComponentType: "SIDE", SourceType: "FREE", FreeText: strPtr("  ")},
			{ComponentType: "SIDE", SourceType: "FREE", FreeText: strPtr("rice")}, // kcal required for FREE
			{ComponentType: "RECIPE_ROLE", SourceType: "RECIPE"},                  // recipe id required
			{ComponentType: "SIDE", SourceType: "FREE", FreeText: strPtr("rice"), KcalTotal: intPtr(200)},
		})
		if len(got) != 1 {
			t.Fatalf("kept %d components, want 1", len(got))
		}
		if got[0].ComponentType != "SIDE" || *got[0].KcalTotal != 200 {
			t.Errorf("unexpected surviving component: %+v", got[0])
		}
	})

	t.Run("sort order stays dense after drops", func(t *testing.T) {
		got := svc.normalizeComponents([]ComponentInput{
			{ComponentType: "PROTEIN", SourceType: "FREE", FreeText: strPtr("chicken"), KcalTotal: intPtr(400)},
			{ComponentType: "SIDE", SourceType: "FREE"}, // dropped
			{ComponentType: "SAUCE", SourceType: "free", FreeText: strPtr("pesto"), KcalTotal: intPtr(90)},
		})
		if len(got) != 2 {
			t.Fatalf("kept %d components, want 2", len(got))
		}
		if got[0].SortOrder != 0 || got[1].SortOrder != 1 {
			t.Errorf("sort orders = %d,%d, want dense 0,1", got[0].SortOrder, got[1].SortOrder)
		}
		if got[1].SourceType != models.SourceFree {
			t.Errorf("source type not normalized: %s", got[1].SourceType)
		}
	})

	t.Run("explicit recipe kcal is never overridden", func(t *testing.T) {
		got := svc.normalizeComponents([]ComponentInput{
			{ComponentType: "MEAL", SourceType: "RECIPE", RecipeID: uintPtr(4), KcalTotal: intPtr(640)},
		})
		if len(got) != 1 {
			t.Fatalf("kept %d components, want 1", len(got))
		}
		if got[0].RecipeID == nil || *got[0].RecipeID != 4 {
			t.Errorf("recipe id lost: %+v", got[0])
		}
		if got[0].KcalTotal == nil || *got[0].KcalTotal != 640 {
			t.Errorf("explicit kcal changed: %+v", got[0].KcalTotal)
		}
	})

	t.Run("amount text trimmed and capped", func(t *testing.T) {
		long := make([]byte, 150)
		for i := range long {
			long[i] = 'a'
		}
		got := svc.normalizeComponents([]ComponentInput{
			{ComponentType: "SIDE", SourceType: "FREE", FreeText: strPtr("rice"),
				KcalTotal: intPtr(200), AmountText: strPtr(string(long))},
		})
		if len(got) != 1 {
			t.Fatalf("kept %d components, want 1", len(got))
		}
		if got[0].AmountText == nil || len(*got[0].AmountText) != 100 {
			t.Errorf("amount text not capped at 100 runes")
		}
	})
}
