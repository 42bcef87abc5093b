package weight

import "testing"

func TestMillimetersOrdering(t *testing.T) {
	a, b := Millimeters(100), Millimeters(200)
	if !a.Less(b) {
		t.Errorf("100 should be less than 200")
	}
	if b.Less(a) {
		t.Errorf("200 should not be less than 100")
	}
	if a.Add(b) != Millimeters(300) {
		t.Errorf("Add = %d, want 300", a.Add(b))
	}
}

func TestTravelCostLexicographicOrdering(t *testing.T) {
	cheaper := TravelCost{TimeSeconds: 10, Penalty: 99}
	slower := TravelCost{TimeSeconds: 11, Penalty: 0}
	if !cheaper.Less(slower) {
		t.Errorf("time dominates penalty: %+v should be less than %+v", cheaper, slower)
	}

	sameTimeLowPenalty := TravelCost{TimeSeconds: 10, Penalty: 1}
	sameTimeHighPenalty := TravelCost{TimeSeconds: 10, Penalty: 2}
	if !sameTimeLowPenalty.Less(sameTimeHighPenalty) {
		t.Errorf("penalty breaks ties: %+v should be less than %+v", sameTimeLowPenalty, sameTimeHighPenalty)
	}
}

func TestTravelCostAdd(t *testing.T) {
	sum := TravelCost{TimeSeconds: 10, Penalty: 1}.Add(TravelCost{TimeSeconds: 20, Penalty: 2})
	want := TravelCost{TimeSeconds: 30, Penalty: 3}
	if sum != want {
		t.Errorf("Add = %+v, want %+v", sum, want)
	}
}

// TestZeroValueIsAdditiveIdentity confirms the "var zero W" idiom produces a usable identity
// element for Add, the way callers throughout the module rely on it.
func TestZeroValueIsAdditiveIdentity(t *testing.T) {
	var zero Millimeters
	v := Millimeters(42)
	if zero.Add(v) != v {
		t.Errorf("zero.Add(v) = %d, want %d", zero.Add(v), v)
	}
}
