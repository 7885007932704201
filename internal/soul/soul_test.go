package soul

import "testing"

func TestApplyClampsEveryDimension(t *testing.T) {
  cases := []struct {
    name string
    v    Vector
    d    Delta
    want Vector
  }{
    {
      name: "plain add",
      v:    Default(),
      d:    Delta{Relationship: 5, History: 10, Attitude: 10, Sensitivity: -5, Probability: 20},
      want: Vector{Relationship: 55, History: 60, Attitude: 60, Sensitivity: 45, Probability: 70},
    },
    {
      name: "clamps at upper bound",
      v:    Vector{Relationship: 95, History: 100, Attitude: 90, Sensitivity: 50, Probability: 98},
      d:    Delta{Relationship: 10, History: 20, Attitude: 20, Sensitivity: 0, Probability: 30},
      want: Vector{Relationship: 100, History: 100, Attitude: 100, Sensitivity: 50, Probability: 100},
    },
    {
      name: "clamps at lower bound",
      v:    Vector{Relationship: 10, History: 5, Attitude: 0, Sensitivity: 90, Probability: 15},
      d:    Delta{Relationship: -20, History: -20, Attitude: -20, Sensitivity: 20, Probability: -30},
      want: Vector{Relationship: 0, History: 0, Attitude: 0, Sensitivity: 100, Probability: 0},
    },
    {
      name: "absurd delta is normalized not rejected",
      v:    Default(),
      d:    Delta{Relationship: 10000, History: -10000, Attitude: 10000, Sensitivity: -10000, Probability: 10000},
      want: Vector{Relationship: 100, History: 0, Attitude: 100, Sensitivity: 0, Probability: 100},
    },
  }

  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      got := Apply(tc.v, tc.d)
      if got != tc.want {
        t.Fatalf("Apply(%+v, %+v)=%+v, want %+v", tc.v, tc.d, got, tc.want)
      }
      if got.Relationship < MinScore || got.Relationship > MaxScore ||
        got.History < MinScore || got.History > MaxScore ||
        got.Attitude < MinScore || got.Attitude > MaxScore ||
        got.Sensitivity < MinScore || got.Sensitivity > MaxScore ||
        got.Probability < MinScore || got.Probability > MaxScore {
        t.Fatalf("Apply produced out-of-range vector: %+v", got)
      }
    })
  }
}

func TestApplyZeroDeltaIsIdentity(t *testing.T) {
  vs := []Vector{
    Default(),
    {Relationship: 0, History: 100, Attitude: 37, Sensitivity: 99, Probability: 1},
    {},
  }
  for _, v := range vs {
    if got := Apply(v, ZeroDelta()); got != v {
      t.Fatalf("Apply(%+v, zero)=%+v, want unchanged", v, got)
    }
  }
}

func TestSetDirectResetsUnspecifiedToMidpoint(t *testing.T) {
  rel := 80
  got := SetDirect(Values{Relationship: &rel})
  want := Vector{Relationship: 80, History: 50, Attitude: 50, Sensitivity: 50, Probability: 50}
  if got != want {
    t.Fatalf("SetDirect({relationship:80})=%+v, want %+v", got, want)
  }
}

func TestSetDirectClampsSuppliedFields(t *testing.T) {
  high := 250
  low := -40
  got := SetDirect(Values{History: &high, Probability: &low})
  if got.History != 100 || got.Probability != 0 {
    t.Fatalf("SetDirect did not clamp: %+v", got)
  }
  if got.Relationship != 50 || got.Attitude != 50 || got.Sensitivity != 50 {
    t.Fatalf("SetDirect did not reset unspecified fields: %+v", got)
  }
}

func TestDefaultIsAllMidpoint(t *testing.T) {
  want := Vector{Relationship: 50, History: 50, Attitude: 50, Sensitivity: 50, Probability: 50}
  if got := Default(); got != want {
    t.Fatalf("Default()=%+v, want %+v", got, want)
  }
}
