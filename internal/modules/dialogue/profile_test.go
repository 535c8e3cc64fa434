// README: Profile merge and rejected-set tests.
package dialogue

import (
	"strings"
	"testing"
)

func TestProfileMergeNeverClears(t *testing.T) {
	p := Profile{City: "파리", SpotName: "몽마르트 언덕"}
	got := p.Merge(Profile{SpotName: "", MainAction: "산책하기"})
	if got.City != "파리" || got.SpotName != "몽마르트 언덕" || got.MainAction != "산책하기" {
		t.Fatalf("unexpected merge result %+v", got)
	}
	got = got.Merge(Profile{City: "리스본"})
	if got.City != "리스본" {
		t.Fatalf("expected overwrite with non-empty value, got %q", got.City)
	}
}

func TestProfileGetSetRoundTrip(t *testing.T) {
	var p Profile
	for i, slot := range profileSlots {
		p.Set(slot, string(rune('a'+i)))
	}
	for i, slot := range profileSlots {
		if p.Get(slot) != string(rune('a'+i)) {
			t.Fatalf("slot %s lost its value", slot)
		}
	}
	if !p.Complete() {
		t.Fatal("expected complete profile")
	}
}

func TestProfileSummaryOrder(t *testing.T) {
	p := Profile{City: "파리", ConceptID: ConceptNoir, FilmType: "Portra 400"}
	s := p.Summary()
	if !strings.Contains(s, "누아르 (Noir)") {
		t.Fatalf("expected concept display name, got %q", s)
	}
	if strings.Index(s, "도시") > strings.Index(s, "필름") {
		t.Fatal("summary should follow collection order")
	}
	if strings.Contains(s, "장소") {
		t.Fatal("summary should skip unset fields")
	}
}

func TestRejectedUnionMonotonic(t *testing.T) {
	var r Rejected
	r.Add(SlotCity, "파리")
	r.Add(SlotCity, "파리")
	r.Add(SlotCity, " ")
	if len(r.Cities) != 1 {
		t.Fatalf("expected dedupe, got %v", r.Cities)
	}

	other := Rejected{Cities: []string{"교토", "파리"}, Poses: []string{"점프"}}
	u := r.Union(other)
	if len(u.Cities) != 2 || u.Cities[0] != "파리" || u.Cities[1] != "교토" {
		t.Fatalf("unexpected union cities %v", u.Cities)
	}
	if !u.Contains(SlotPose, "점프") {
		t.Fatal("expected pose carried over")
	}
	if u.Len() < r.Len() || u.Len() < other.Len()-1 {
		t.Fatal("union should never shrink")
	}
	// Union must not alias the receiver.
	u.Cities[0] = "changed"
	if r.Cities[0] != "파리" {
		t.Fatal("union mutated receiver")
	}
}

func TestStateApplyReset(t *testing.T) {
	s := State{
		Step:       StepComplete,
		Profile:    Profile{City: "파리"},
		Rejected:   Rejected{Cities: []string{"교토"}},
		RetryCount: 2,
		Picks:      Picks{SlotCity: 1},
	}
	next := s.Apply(Result{Reset: true, NextStep: StepGreeting})
	if next.Step != StepGreeting || !next.Profile.IsEmpty() || next.Rejected.Len() != 0 || next.RetryCount != 0 {
		t.Fatalf("expected fresh state after reset, got %+v", next)
	}
	if len(next.Picks) != 0 {
		t.Fatalf("expected picks cleared, got %v", next.Picks)
	}
}

func TestStateApplyKeepsStepOnInvalid(t *testing.T) {
	s := State{Step: StepSpot}
	next := s.Apply(Result{NextStep: Step("bogus")})
	if next.Step != StepSpot {
		t.Fatalf("expected step kept, got %s", next.Step)
	}
}
