// README: Travel profile, rejected items and the dialogue state they live in.
package dialogue

import (
	"fmt"
	"strings"
)

// Profile is the travel profile collected over the conversation. Empty strings are unset.
type Profile struct {
	City           string    `json:"city,omitempty"`
	SpotName       string    `json:"spotName,omitempty"`
	MainAction     string    `json:"mainAction,omitempty"`
	ConceptID      ConceptID `json:"conceptId,omitempty"`
	OutfitStyle    string    `json:"outfitStyle,omitempty"`
	PosePreference string    `json:"posePreference,omitempty"`
	FilmType       string    `json:"filmType,omitempty"`
	CameraModel    string    `json:"cameraModel,omitempty"`
}

func (p Profile) Get(slot Slot) string {
	switch slot {
	case SlotCity:
		return p.City
	case SlotSpot:
		return p.SpotName
	case SlotAction:
		return p.MainAction
	case SlotConcept:
		return string(p.ConceptID)
	case SlotOutfit:
		return p.OutfitStyle
	case SlotPose:
		return p.PosePreference
	case SlotFilm:
		return p.FilmType
	case SlotCamera:
		return p.CameraModel
	}
	return ""
}

func (p *Profile) Set(slot Slot, v string) {
	switch slot {
	case SlotCity:
		p.City = v
	case SlotSpot:
		p.SpotName = v
	case SlotAction:
		p.MainAction = v
	case SlotConcept:
		p.ConceptID = ConceptID(v)
	case SlotOutfit:
		p.OutfitStyle = v
	case SlotPose:
		p.PosePreference = v
	case SlotFilm:
		p.FilmType = v
	case SlotCamera:
		p.CameraModel = v
	}
}

// Merge overlays the non-empty fields of delta. A collected value is never cleared by a merge.
func (p Profile) Merge(delta Profile) Profile {
	for _, slot := range profileSlots {
		if v := delta.Get(slot); v != "" {
			p.Set(slot, v)
		}
	}
	return p
}

func (p Profile) IsEmpty() bool {
	return p == Profile{}
}

// Complete reports whether every slot has a value.
func (p Profile) Complete() bool {
	for _, slot := range profileSlots {
		if p.Get(slot) == "" {
			return false
		}
	}
	return true
}

var profileSlots = []Slot{SlotCity, SlotSpot, SlotAction, SlotConcept, SlotOutfit, SlotPose, SlotFilm, SlotCamera}

var slotLabels = map[Slot]string{
	SlotCity:    "도시",
	SlotSpot:    "장소",
	SlotAction:  "하고 싶은 것",
	SlotConcept: "컨셉",
	SlotOutfit:  "의상",
	SlotPose:    "포즈",
	SlotFilm:    "필름",
	SlotCamera:  "카메라",
}

// Summary renders the filled fields as a bullet list in collection order.
func (p Profile) Summary() string {
	var b strings.Builder
	for _, slot := range profileSlots {
		v := p.Get(slot)
		if v == "" {
			continue
		}
		if slot == SlotConcept {
			if c, ok := LookupConcept(p.ConceptID); ok {
				v = fmt.Sprintf("%s (%s)", c.NameKo, c.Name)
			}
		}
		fmt.Fprintf(&b, "- %s: %s\n", slotLabels[slot], v)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Rejected holds the values the user declined, one ordered set per slot.
type Rejected struct {
	Cities   []string `json:"cities"`
	Spots    []string `json:"spots"`
	Actions  []string `json:"actions"`
	Concepts []string `json:"concepts"`
	Outfits  []string `json:"outfits"`
	Poses    []string `json:"poses"`
	Films    []string `json:"films"`
	Cameras  []string `json:"cameras"`
}

func (r *Rejected) list(slot Slot) *[]string {
	switch slot {
	case SlotCity:
		return &r.Cities
	case SlotSpot:
		return &r.Spots
	case SlotAction:
		return &r.Actions
	case SlotConcept:
		return &r.Concepts
	case SlotOutfit:
		return &r.Outfits
	case SlotPose:
		return &r.Poses
	case SlotFilm:
		return &r.Films
	case SlotCamera:
		return &r.Cameras
	}
	return nil
}

func (r Rejected) Items(slot Slot) []string {
	l := r.list(slot)
	if l == nil {
		return nil
	}
	return *l
}

func (r Rejected) Contains(slot Slot, v string) bool {
	for _, item := range r.Items(slot) {
		if item == v {
			return true
		}
	}
	return false
}

// Add appends v to the slot's set unless it is already present.
func (r *Rejected) Add(slot Slot, v string) {
	v = strings.TrimSpace(v)
	if v == "" || r.Contains(slot, v) {
		return
	}
	l := r.list(slot)
	if l == nil {
		return
	}
	*l = append(*l, v)
}

// Union returns r with every item of other added. Existing order is kept.
func (r Rejected) Union(other Rejected) Rejected {
	out := r.Clone()
	for _, slot := range profileSlots {
		for _, v := range other.Items(slot) {
			out.Add(slot, v)
		}
	}
	return out
}

func (r Rejected) Clone() Rejected {
	var out Rejected
	for _, slot := range profileSlots {
		src := r.Items(slot)
		if len(src) == 0 {
			continue
		}
		*out.list(slot) = append([]string(nil), src...)
	}
	return out
}

func (r Rejected) Len() int {
	n := 0
	for _, slot := range profileSlots {
		n += len(r.Items(slot))
	}
	return n
}

// Picks records the last catalog index drawn per slot.
type Picks map[Slot]int

func (p Picks) Clone() Picks {
	out := make(Picks, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// State is everything the engine reads for one turn.
type State struct {
	Step           Step
	Profile        Profile
	Rejected       Rejected
	PendingConfirm Step
	RetryCount     int
	Picks          Picks
}

// NewState is the state of a fresh conversation.
func NewState() State {
	return State{Step: StepGreeting, Picks: Picks{}}
}

// Apply folds a turn result into the state and returns the new state.
func (s State) Apply(r Result) State {
	if r.Reset {
		next := NewState()
		next.Picks = r.Picks.Clone()
		return next
	}
	next := State{
		Step:           r.NextStep,
		Profile:        s.Profile.Merge(r.ProfileDelta),
		Rejected:       s.Rejected.Union(r.RejectedDelta),
		PendingConfirm: r.PendingConfirm,
		RetryCount:     r.RetryCount,
		Picks:          r.Picks.Clone(),
	}
	if !next.Step.Valid() {
		next.Step = s.Step
	}
	return next
}
