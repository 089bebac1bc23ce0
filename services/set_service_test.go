package services

import (
	"errors"
	"testing"

	"github.com/punkyalice/Foodprep/models"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func componentMap(kcals map[uint]*int) map[uint]*models.SetComponent {
	m := make(map[uint]*models.SetComponent, len(kcals))
	for id, kcal := range kcals {
		m[id] = &models.SetComponent{ID: id, KcalTotal: kcal}
	}
	return m
}

func realRef(id uint) ContainerRef { return ContainerRef{Kind: RefContainer, ID: id} }

func TestNormalizeBoxes_DuplicateContainer(t *testing.T) {
	comps := componentMap(map[uint]*int{1: intPtr(100)})

	boxes := []BoxInput{
		{Container: realRef(5), BoxType: "PROTEIN", PortionText: strPtr("1x"), ComponentIDs: []uint{1}},
		{Container: realRef(5), BoxType: "SAUCE", PortionText: strPtr("1x"), ComponentIDs: []uint{1}},
	}
	if _, err := normalizeBoxes(boxes, comps); !errors.Is(err, ErrDuplicateContainer) {
		t.Errorf("err = %v, want duplicate_container", err)
	}

	// order must not matter
	boxes[0], boxes[1] = boxes[1], boxes[0]
	if _, err := normalizeBoxes(boxes, comps); !errors.Is(err, ErrDuplicateContainer) {
		t.Errorf("reversed order: err = %v, want duplicate_container", err)
	}
}

func TestNormalizeBoxes_BagsNeverCollide(t *testing.T) {
	comps := componentMap(map[uint]*int{1: intPtr(100)})

	boxes := []BoxInput{
		{Container: ContainerRef{Kind: RefFreezerBag}, BoxType: "PROTEIN", PortionText: strPtr("1x"), ComponentIDs: []uint{1}},
		{Container: ContainerRef{Kind: RefFreezerBag}, BoxType: "SAUCE", PortionText: strPtr("1x"), ComponentIDs: []uint{1}},
		{Container: ContainerRef{Kind: RefVacuumBag}, BoxType: "SIDE", PortionText: strPtr("1x"), ComponentIDs: []uint{1}},
	}
	normalized, err := normalizeBoxes(boxes, comps)
	if err != nil {
		t.Fatalf("normalizeBoxes: %v", err)
	}
	if len(normalized) != 3 {
		t.Fatalf("normalized %d boxes, want 3", len(normalized))
	}
	if normalized[0].storageType != models.StorageFreezerBag {
		t.Errorf("storage = %s, want FREEZER_BAG", normalized[0].storageType)
	}
	if normalized[2].storageType != models.StorageVacuumBag {
		t.Errorf("storage = %s, want VACUUM_BAG", normalized[2].storageType)
	}
	for _, box := range normalized {
		if box.containerID != nil {
			t.Error("bag box must not carry a container id")
		}
	}
}

func TestNormalizeBoxes_PortionMissing(t *testing.T) {
	comps := componentMap(map[uint]*int{1: intPtr(100)})
	boxes := []BoxInput{
		{Container: realRef(5), BoxType: "PROTEIN", ComponentIDs: []uint{1}},
	}
	if _, err := normalizeBoxes(boxes, comps); !errors.Is(err, ErrPortionMissing) {
		t.Errorf("err = %v, want portion_missing", err)
	}

	// whitespace-only portion text counts as absent
	boxes[0].PortionText = strPtr("   ")
	if _, err := normalizeBoxes(boxes, comps); !errors.Is(err, ErrPortionMissing) {
		t.Errorf("blank portion text: err = %v, want portion_missing", err)
	}

	boxes[0].PortionFactor = floatPtr(0.5)
	if _, err := normalizeBoxes(boxes, comps); err != nil {
		t.Errorf("portion factor alone should satisfy: %v", err)
	}
}

func TestNormalizeBoxes_InvalidComponent(t *testing.T) {
	comps := componentMap(map[uint]*int{1: intPtr(100)})
	boxes := []BoxInput{
		{Container: realRef(5), BoxType: "PROTEIN", PortionText: strPtr("1x"), ComponentIDs: []uint{99}},
	}
	if _, err := normalizeBoxes(boxes, comps); !errors.Is(err, ErrInvalidComponent) {
		t.Errorf("err = %v, want invalid_component", err)
	}
}

func TestNormalizeBoxes_SkipsIncompleteRows(t *testing.T) {
	comps := componentMap(map[uint]*int{1: intPtr(100)})
	boxes := []BoxInput{
		{Container: realRef(5), BoxType: "", PortionText: strPtr("1x"), ComponentIDs: []uint{1}},
		{Container: realRef(6), BoxType: "PROTEIN", PortionText: strPtr("1x")},
		{Container: realRef(7), BoxType: "protein", PortionText: strPtr("1x"), ComponentIDs: []uint{1, 1}},
	}
	normalized, err := normalizeBoxes(boxes, comps)
	if err != nil {
		t.Fatalf("normalizeBoxes: %v", err)
	}
	if len(normalized) != 1 {
		t.Fatalf("normalized %d boxes, want 1 (two skipped)", len(normalized))
	}
	if normalized[0].boxType != "PROTEIN" {
		t.Errorf("box type = %s, want uppercased PROTEIN", normalized[0].boxType)
	}
	if len(normalized[0].componentIDs) != 1 {
		t.Errorf("component ids not deduplicated: %v", normalized[0].componentIDs)
	}
}

func TestBoxKcal(t *testing.T) {
	comps := componentMap(map[uint]*int{
		1: intPtr(300),
		2: intPtr(150),
		3: nil,
	})

	cases := []struct {
		name   string
		ids    []uint
		factor *float64
		want   *int
	}{
		{"plain sum", []uint{1, 2}, nil, intPtr(450)},
		{"scaled and rounded", []uint{1, 2}, floatPtr(0.5), intPtr(225)},
		{"rounds half up", []uint{1}, floatPtr(0.425), intPtr(128)}, // 127.5
		{"unknown kcal poisons the total", []uint{1, 3}, nil, nil},
		{"unknown kcal with factor stays unknown", []uint{2, 3}, floatPtr(2), nil},
		{"missing component id", []uint{1, 42}, nil, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := boxKcal(c.ids, comps, c.factor)
			switch {
			case c.want == nil && got != nil:
				t.Errorf("kcal = %d, want null", *got)
			case c.want != nil && got == nil:
				t.Errorf("kcal = null, want %d", *c.want)
			case c.want != nil && got != nil && *got != *c.want:
				t.Errorf("kcal = %d, want %d", *got, *c.want)
			}
		})
	}
}
