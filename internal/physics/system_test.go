package physics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestParseOrdering(t *testing.T) {
	tests := []struct {
		in      string
		want    Ordering
		name    string
		wantErr bool
	}{
		{"", Snapshot, "snapshot", false},
		{"snapshot", Snapshot, "snapshot", false},
		{"sequential", Sequential, "sequential", false},
		{"random", 0, "", true},
	}

	for _, tt := range tests {
		got, err := ParseOrdering(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOrdering(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOrdering(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if got.String() != tt.name {
			t.Errorf("String() = %q, want %q", got.String(), tt.name)
		}
	}
}

func threeBodies(t *testing.T) []*Body {
	sun, earth := sunAndEarth(t)
	mars := mustBody(t, BodyParams{
		Name:     "mars",
		Position: r2.Vec{X: -1.524 * AU},
		Velocity: r2.Vec{Y: 24077},
		Mass:     6.39e23,
	})
	return []*Body{sun, earth, mars}
}

func TestSnapshotOrderIndependent(t *testing.T) {
	forward := threeBodies(t)
	reversed := threeBodies(t)
	reversed[0], reversed[2] = reversed[2], reversed[0]
	g := DefaultGravity()

	for i := 0; i < 30; i++ {
		StepAll(forward, g, 86400, Snapshot)
		StepAll(reversed, g, 86400, Snapshot)
	}

	for i, b := range forward {
		other := reversed[len(reversed)-1-i]
		if d := r2.Norm(r2.Sub(b.Pos, other.Pos)); d > 1e-6 {
			t.Errorf("%s diverged by %e m between orderings", b.Name, d)
		}
	}
}

func TestSequentialOrderDependent(t *testing.T) {
	sun1, earth1 := sunAndEarth(t)
	sun2, earth2 := sunAndEarth(t)
	g := DefaultGravity()

	StepAll([]*Body{sun1, earth1}, g, 86400, Sequential)
	StepAll([]*Body{earth2, sun2}, g, 86400, Sequential)

	if earth1.Pos == earth2.Pos {
		t.Error("expected sequential stepping to depend on body order")
	}
}

func TestSnapshotConservesMomentum(t *testing.T) {
	bodies := threeBodies(t)
	g := DefaultGravity()
	p0 := Momentum(bodies)

	for i := 0; i < 365; i++ {
		StepAll(bodies, g, 86400, Snapshot)
	}

	if d := r2.Norm(r2.Sub(Momentum(bodies), p0)); d > 1e-6*r2.Norm(p0) {
		t.Errorf("momentum drifted by %e (initial %e)", d, r2.Norm(p0))
	}
}

func TestEnergyTerms(t *testing.T) {
	sun, earth := sunAndEarth(t)
	bodies := []*Body{sun, earth}
	g := DefaultGravity()

	ke := 0.5 * earthMass * 29783 * 29783
	pe := -G * sunMass * earthMass / AU

	if math.Abs(KineticEnergy(bodies)-ke) > 1e-9*math.Abs(ke) {
		t.Errorf("kinetic energy: got %e, expected %e", KineticEnergy(bodies), ke)
	}
	if math.Abs(PotentialEnergy(bodies, g)-pe) > 1e-9*math.Abs(pe) {
		t.Errorf("potential energy: got %e, expected %e", PotentialEnergy(bodies, g), pe)
	}
	if TotalEnergy(bodies, g) >= 0 {
		t.Error("expected a bound system")
	}
}

func TestAngularMomentumAndCenterOfMass(t *testing.T) {
	sun, earth := sunAndEarth(t)
	bodies := []*Body{sun, earth}

	// r = (-AU, 0), v = (0, 29783): L = m * (-AU * 29783)
	wantL := earthMass * (-AU * 29783)
	if math.Abs(AngularMomentum(bodies)-wantL) > 1e-9*math.Abs(wantL) {
		t.Errorf("angular momentum: got %e, expected %e", AngularMomentum(bodies), wantL)
	}

	com := CenterOfMass(bodies)
	wantX := -AU * earthMass / (earthMass + sunMass)
	if math.Abs(com.X-wantX) > 1e-6 || com.Y != 0 {
		t.Errorf("center of mass: got %v, expected (%e, 0)", com, wantX)
	}
}

func TestAnchor(t *testing.T) {
	sun, earth := sunAndEarth(t)

	if got := Anchor([]*Body{earth, sun}); got != sun {
		t.Errorf("expected sun as anchor, got %v", got)
	}
	if got := Anchor([]*Body{earth}); got != nil {
		t.Errorf("expected no anchor, got %v", got.Name)
	}
}
