package replace

import "testing"

func TestApplyNoOverlap(t *testing.T) {
	source := "aaaBBBcccDDDeee"
	out := Apply(source, []Replacement{
		{Start: 3, End: 6, Text: "X"},
		{Start: 9, End: 12, Text: "Y"},
	})
	want := "aaaXcccYeee"
	if out != want {
		t.Fatalf("Apply() = %q, want %q", out, want)
	}
}

func TestApplyEmpty(t *testing.T) {
	source := "unchanged"
	if out := Apply(source, nil); out != source {
		t.Fatalf("Apply(nil) = %q, want unchanged", out)
	}
}

func TestApplyByteLengthInvariant(t *testing.T) {
	source := "0123456789"
	reps := []Replacement{{Start: 2, End: 4, Text: "XYZ"}}
	out := Apply(source, reps)
	wantLen := len(source) + (len("XYZ") - (4 - 2))
	if len(out) != wantLen {
		t.Fatalf("len(out) = %d, want %d", len(out), wantLen)
	}
}
