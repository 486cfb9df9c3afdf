// pkg/component/aggregate.go
package component

import "strconv"

// StatKey identifies one aggregated total. Resource and Trigger are only
// set for kinds they qualify; everything else leaves them zero.
type StatKey struct {
	Kind     AbilityKind
	Resource Resource
	Trigger  Trigger
}

// FuelStorageShortcut is the logical name under which a fuel-kind
// ResourceStorage is additionally counted, for consumers that key on
// capability shortcuts rather than resource-qualified totals.
const FuelStorageShortcut = "FuelStorage"

// Totals is the result of reducing a component pool's abilities into
// per-kind scalars and marker flags.
type Totals struct {
	values    map[StatKey]float64
	present   map[StatKey]bool
	shortcuts map[string]bool
}

// Value returns the combined scalar for a kind with no resource qualifier.
func (t Totals) Value(kind AbilityKind) float64 {
	return t.values[StatKey{Kind: kind}]
}

// ResourceValue returns the combined scalar for a resource-qualified kind.
func (t Totals) ResourceValue(kind AbilityKind, res Resource) float64 {
	return t.values[StatKey{Kind: kind, Resource: res}]
}

// ConsumptionRate returns the combined consumption total for a resource
// and trigger.
func (t Totals) ConsumptionRate(res Resource, trigger Trigger) float64 {
	return t.values[StatKey{Kind: ResourceConsumption, Resource: res, Trigger: trigger}]
}

// Has reports marker presence (or any presence of a numeric kind).
func (t Totals) Has(kind AbilityKind) bool {
	return t.present[StatKey{Kind: kind}]
}

// HasShortcut reports presence of a logical capability shortcut such as
// FuelStorageShortcut.
func (t Totals) HasShortcut(name string) bool {
	return t.shortcuts[name]
}

// Modifier returns the multiplicative total for a to-hit modifier kind,
// with identity 1.0 when no such ability exists.
func (t Totals) Modifier(kind AbilityKind) float64 {
	if v, ok := t.values[StatKey{Kind: kind}]; ok && kind.IsModifier() {
		return v
	}
	return 1.0
}

// Aggregate reduces a component pool's abilities into combined totals.
//
// Within a (kind, stack group) bucket values are redundant and reduce by
// maximum (boolean OR for markers). Across groups of the same kind the
// group maxima sum, except to-hit modifiers which multiply. An ability
// without a stack group forms a group private to its owning component.
//
// The reduction is pure and order-independent aside from float summation
// order.
func Aggregate(comps []*Component) Totals {
	buckets := make(map[StatKey]map[string]float64)

	for ci, c := range comps {
		for i := range c.Abilities {
			a := &c.Abilities[i]
			key := StatKey{Kind: a.Kind}
			switch a.Kind {
			case ResourceStorage, ResourceGeneration:
				key.Resource = a.Resource
			case ResourceConsumption:
				key.Resource = a.Resource
				key.Trigger = a.Trigger
			}

			group := a.StackGroup
			if group == "" {
				group = "#" + strconv.Itoa(ci)
			}

			byGroup := buckets[key]
			if byGroup == nil {
				byGroup = make(map[string]float64)
				buckets[key] = byGroup
			}
			v := a.PrimaryValue()
			if prev, ok := byGroup[group]; !ok || v > prev {
				byGroup[group] = v
			}
		}
	}

	t := Totals{
		values:    make(map[StatKey]float64, len(buckets)),
		present:   make(map[StatKey]bool, len(buckets)),
		shortcuts: make(map[string]bool),
	}

	for key, byGroup := range buckets {
		if key.Kind.IsModifier() {
			product := 1.0
			for _, v := range byGroup {
				product *= v
			}
			t.values[key] = product
		} else {
			sum := 0.0
			for _, v := range byGroup {
				sum += v
			}
			t.values[key] = sum
		}
		t.present[key] = true
		t.present[StatKey{Kind: key.Kind}] = true
	}

	if t.present[StatKey{Kind: ResourceStorage, Resource: Fuel}] {
		t.shortcuts[FuelStorageShortcut] = true
	}

	return t
}
