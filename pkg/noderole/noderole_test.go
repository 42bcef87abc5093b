package noderole

import "testing"

func TestUnionIdempotent(t *testing.T) {
	for _, r := range []NodeRole{Origin, Destination, OriginAndDestination} {
		if got := Union(r, r); got != r {
			t.Errorf("Union(%v, %v) = %v, want %v", r, r, got, r)
		}
	}
}

func TestUnionCombinesOriginAndDestination(t *testing.T) {
	if got := Union(Origin, Destination); got != OriginAndDestination {
		t.Errorf("Union(Origin, Destination) = %v, want OriginAndDestination", got)
	}
	if got := Union(Destination, Origin); got != OriginAndDestination {
		t.Errorf("Union(Destination, Origin) = %v, want OriginAndDestination", got)
	}
}

func TestUnionAbsorbsOriginAndDestination(t *testing.T) {
	if got := Union(OriginAndDestination, Origin); got != OriginAndDestination {
		t.Errorf("Union(OriginAndDestination, Origin) = %v, want OriginAndDestination", got)
	}
}

func TestIsOriginIsDestination(t *testing.T) {
	if !Origin.IsOrigin() || Origin.IsDestination() {
		t.Errorf("Origin: IsOrigin=%v IsDestination=%v, want true/false", Origin.IsOrigin(), Origin.IsDestination())
	}
	if !Destination.IsDestination() || Destination.IsOrigin() {
		t.Errorf("Destination: IsOrigin=%v IsDestination=%v, want false/true", Destination.IsOrigin(), Destination.IsDestination())
	}
	if !OriginAndDestination.IsOrigin() || !OriginAndDestination.IsDestination() {
		t.Errorf("OriginAndDestination should satisfy both IsOrigin and IsDestination")
	}
}
