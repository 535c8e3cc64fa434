// README: Dialogue step chain and slot definitions.
package dialogue

import "strings"

type Step string

const (
	StepNone     Step = ""
	StepGreeting Step = "greeting"
	StepSpot     Step = "spot"
	StepAction   Step = "action"
	StepConcept  Step = "concept"
	StepOutfit   Step = "outfit"
	StepPose     Step = "pose"
	StepFilm     Step = "film"
	StepConfirm  Step = "confirm"
	StepComplete Step = "complete"
)

// successors is the conversation flow as code; each step knows the one after it.
var successors = map[Step]Step{
	StepGreeting: StepSpot,
	StepSpot:     StepAction,
	StepAction:   StepConcept,
	StepConcept:  StepOutfit,
	StepOutfit:   StepPose,
	StepPose:     StepFilm,
	StepFilm:     StepConfirm,
	StepConfirm:  StepComplete,
}

// Next returns the successor step. complete is terminal and returns itself.
func (s Step) Next() Step {
	if next, ok := successors[s]; ok {
		return next
	}
	return s
}

func (s Step) Valid() bool {
	if s == StepComplete {
		return true
	}
	_, ok := successors[s]
	return ok
}

// Rank is the distance from greeting along the chain, or -1 for unknown steps.
func (s Step) Rank() int {
	cur := StepGreeting
	for i := 0; ; i++ {
		if cur == s {
			return i
		}
		next, ok := successors[cur]
		if !ok {
			return -1
		}
		cur = next
	}
}

// Steps lists the chain in order, starting at greeting.
func Steps() []Step {
	out := []Step{StepGreeting}
	for cur := StepGreeting; ; {
		next, ok := successors[cur]
		if !ok {
			return out
		}
		out = append(out, next)
		cur = next
	}
}

// ParseStep accepts step names as well as the slot names remote agents use ("city", "camera").
func ParseStep(v string) (Step, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case "city", "init":
		return StepGreeting, true
	case "camera":
		return StepConfirm, true
	}
	s := Step(v)
	if !s.Valid() {
		return StepNone, false
	}
	return s, true
}

type Slot string

const (
	SlotNone    Slot = ""
	SlotCity    Slot = "city"
	SlotSpot    Slot = "spot"
	SlotAction  Slot = "action"
	SlotConcept Slot = "concept"
	SlotOutfit  Slot = "outfit"
	SlotPose    Slot = "pose"
	SlotFilm    Slot = "film"
	SlotCamera  Slot = "camera"
)

var stepSlots = map[Step]Slot{
	StepGreeting: SlotCity,
	StepSpot:     SlotSpot,
	StepAction:   SlotAction,
	StepConcept:  SlotConcept,
	StepOutfit:   SlotOutfit,
	StepPose:     SlotPose,
	StepFilm:     SlotFilm,
	StepConfirm:  SlotCamera,
}

// Slot is the profile field a step collects. complete has none.
func (s Step) Slot() Slot {
	return stepSlots[s]
}
