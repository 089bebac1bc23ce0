package services

import (
	"testing"
	"time"

	"github.com/punkyalice/Foodprep/models"
)

func day(offset int) time.Time {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func req(role string, count int, veggie bool) models.MealSetRequirement {
	return models.MealSetRequirement{RequiredType: role, RequiredCount: count, RequireVeggie: veggie}
}

// candidateStore fakes the per-role candidate query. It records which
// roles were loaded so short-circuiting can be asserted.
type candidateStore struct {
	byRole      map[string][]AvailableItem
	veggieOnly  map[string][]AvailableItem
	loadedRoles []string
}

func (cs *candidateStore) load(role string, requireVeggie bool) ([]AvailableItem, error) {
	cs.loadedRoles = append(cs.loadedRoles, role)
	if requireVeggie {
		return cs.veggieOnly[role], nil
	}
	return cs.byRole[role], nil
}

func item(id uint, code string, frozenDaysAgo int) AvailableItem {
	return AvailableItem{
		ID:                 id,
		IDCode:             code,
		FrozenAt:           day(-frozenDaysAgo),
		ComputedBestBefore: day(90),
	}
}

func TestSelectCompleteMeals_TwoProteinOneSauce(t *testing.T) {
	// three proteins frozen 10, 5 and 3 days ago, one sauce:
	// exactly one complete meal, built from the two oldest proteins
	cs := &candidateStore{byRole: map[string][]AvailableItem{
		"PROTEIN": {item(3, "P003", 10), item(1, "P001", 5), item(2, "P002", 3)},
		"SAUCE":   {item(7, "S001", 4)},
	}}
	reqs := []models.MealSetRequirement{req("PROTEIN", 2, false), req("SAUCE", 1, false)}

	complete, selected, err := selectCompleteMeals(reqs, false, cs.load)
	if err != nil {
		t.Fatalf("selectCompleteMeals: %v", err)
	}
	if complete != 1 {
		t.Fatalf("complete = %d, want 1", complete)
	}

	var codes []string
	for _, it := range selected {
		codes = append(codes, it.IDCode)
	}
	want := []string{"P003", "P001", "S001"}
	if len(codes) != len(want) {
		t.Fatalf("selected %v, want %v", codes, want)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("selected[%d] = %s, want %s", i, codes[i], want[i])
		}
	}
}

func TestSelectCompleteMeals_MinimumAcrossRoles(t *testing.T) {
	cs := &candidateStore{byRole: map[string][]AvailableItem{
		"PROTEIN": {item(1, "P001", 9), item(2, "P002", 8), item(3, "P003", 7), item(4, "P004", 6), item(5, "P005", 5)},
		"SIDE":    {item(10, "B001", 9), item(11, "B002", 2)},
	}}
	reqs := []models.MealSetRequirement{req("PROTEIN", 1, false), req("SIDE", 1, false)}

	complete, selected, err := selectCompleteMeals(reqs, false, cs.load)
	if err != nil {
		t.Fatalf("selectCompleteMeals: %v", err)
	}
	if complete != 2 {
		t.Fatalf("complete = %d, want 2", complete)
	}
	// never more than complete x required per role, even though the
	// protein role alone could fill five meals
	proteins := 0
	for _, it := range selected {
		if it.IDCode[0] == 'P' {
			proteins++
		}
	}
	if proteins != 2 {
		t.Errorf("selected %d proteins, want 2", proteins)
	}
	if len(selected) != 4 {
		t.Errorf("selected %d items, want 4", len(selected))
	}
}

func TestSelectCompleteMeals_ZeroRoleShortCircuits(t *testing.T) {
	cs := &candidateStore{byRole: map[string][]AvailableItem{
		"PROTEIN": {item(1, "P001", 5)},
		"SAUCE":   {},
		"SIDE":    {item(9, "B001", 3)},
	}}
	reqs := []models.MealSetRequirement{req("PROTEIN", 1, false), req("SAUCE", 1, false), req("SIDE", 1, false)}

	complete, selected, err := selectCompleteMeals(reqs, false, cs.load)
	if err != nil {
		t.Fatalf("selectCompleteMeals: %v", err)
	}
	if complete != 0 {
		t.Errorf("complete = %d, want 0", complete)
	}
	if len(selected) != 0 {
		t.Errorf("selected %d items, want none", len(selected))
	}
	// the SIDE role must never have been queried
	for _, role := range cs.loadedRoles {
		if role == "SIDE" {
			t.Error("role after the zero role was still loaded")
		}
	}
}

func TestSelectCompleteMeals_RequiredCountFloors(t *testing.T) {
	cs := &candidateStore{byRole: map[string][]AvailableItem{
		"PROTEIN": {item(1, "P001", 5), item(2, "P002", 4), item(3, "P003", 3)},
	}}
	reqs := []models.MealSetRequirement{req("PROTEIN", 2, false)}

	complete, selected, err := selectCompleteMeals(reqs, false, cs.load)
	if err != nil {
		t.Fatalf("selectCompleteMeals: %v", err)
	}
	if complete != 1 {
		t.Fatalf("complete = %d, want floor(3/2) = 1", complete)
	}
	if len(selected) != 2 {
		t.Errorf("selected %d items, want 2 (whole meals only)", len(selected))
	}
}

func TestSelectCompleteMeals_VeggieFilterSwitchesCandidates(t *testing.T) {
	cs := &candidateStore{
		byRole: map[string][]AvailableItem{
			"PROTEIN": {item(1, "P001", 5), item(2, "P002", 4)},
		},
		veggieOnly: map[string][]AvailableItem{
			"PROTEIN": {item(2, "P002", 4)},
		},
	}
	reqs := []models.MealSetRequirement{req("PROTEIN", 2, false)}

	complete, _, err := selectCompleteMeals(reqs, true, cs.load)
	if err != nil {
		t.Fatalf("selectCompleteMeals: %v", err)
	}
	if complete != 0 {
		t.Errorf("complete = %d, want 0 under veggie filter", complete)
	}

	complete, _, err = selectCompleteMeals(reqs, false, cs.load)
	if err != nil {
		t.Fatalf("selectCompleteMeals: %v", err)
	}
	if complete != 1 {
		t.Errorf("complete = %d, want 1 without veggie filter", complete)
	}
}

func TestAggregateFlags(t *testing.T) {
	now := day(0)

	veggie := func(id uint, vegan bool, bestBefore time.Time) AvailableItem {
		return AvailableItem{ID: id, IsVeggie: true, IsVegan: vegan, ComputedBestBefore: bestBefore}
	}

	t.Run("all veggie one vegan", func(t *testing.T) {
		flags := aggregateFlags([]AvailableItem{
			veggie(1, true, day(30)),
			veggie(2, false, day(30)),
		}, now)
		if !flags.veggie {
			t.Error("veggie should hold when every item is veggie")
		}
		if flags.vegan {
			t.Error("vegan must not hold when one item is not vegan")
		}
		if flags.expiring {
			t.Error("nothing expires within 7 days")
		}
	})

	t.Run("one non-veggie breaks the meal flag", func(t *testing.T) {
		flags := aggregateFlags([]AvailableItem{
			veggie(1, true, day(30)),
			{ID: 2, ComputedBestBefore: day(30)},
		}, now)
		if flags.veggie || flags.vegan {
			t.Error("meal-level flags must require every item")
		}
	})

	t.Run("single expiring item marks the meal", func(t *testing.T) {
		flags := aggregateFlags([]AvailableItem{
			veggie(1, true, day(30)),
			veggie(2, true, day(7)), // boundary inclusive
		}, now)
		if !flags.expiring {
			t.Error("item at the 7-day boundary should mark the meal expiring")
		}
	})
}
