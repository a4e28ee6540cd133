package traits

import (
	"testing"

	"github.com/ahtohbi4/nature-simulator/random"
)

func TestSampleWithinScatter(t *testing.T) {
	m := Means{Lifetime: 100, Speed: 10, ViewRadius: 40, ActionRadius: 10, ReproductiveAge: [2]int{14, 90}}
	src := random.New(11)

	for i := 0; i < 500; i++ {
		tr := Sample(src, m, random.DefaultScatter)
		if tr.Lifetime < 80 || tr.Lifetime > 120 {
			t.Fatalf("lifetime %v out of range", tr.Lifetime)
		}
		if tr.Speed < 8 || tr.Speed > 12 {
			t.Fatalf("speed %v out of range", tr.Speed)
		}
		if tr.ViewRadius < 32 || tr.ViewRadius > 48 {
			t.Fatalf("view radius %v out of range", tr.ViewRadius)
		}
		if tr.ReproductiveFrom < 11 || tr.ReproductiveFrom > 17 {
			t.Fatalf("reproductive from %d out of range", tr.ReproductiveFrom)
		}
		if tr.ReproductiveTo < 72 || tr.ReproductiveTo > 108 {
			t.Fatalf("reproductive to %d out of range", tr.ReproductiveTo)
		}
		if want := Postnatal(tr.ViewRadius, tr.Speed); tr.PostnatalPeriod != want {
			t.Fatalf("postnatal = %v, want %v", tr.PostnatalPeriod, want)
		}
	}
}

func TestPostnatal(t *testing.T) {
	tests := []struct {
		view, speed, want float64
	}{
		{40, 10, 40},
		{30, 15, 20},
		{30, 0, 0},
	}
	for _, tt := range tests {
		if got := Postnatal(tt.view, tt.speed); got != tt.want {
			t.Errorf("Postnatal(%v, %v) = %v, want %v", tt.view, tt.speed, got, tt.want)
		}
	}
}

func TestGenderString(t *testing.T) {
	if Female.String() != "female" || Male.String() != "male" {
		t.Errorf("unexpected gender names %q %q", Female, Male)
	}
}
