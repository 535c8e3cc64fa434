// README: Dialogue engine; one turn of the slot-filling state machine.
package dialogue

import "strings"

// Result is the outcome of one turn. Apply it with State.Apply.
type Result struct {
	Reply          string
	NextStep       Step
	ProfileDelta   Profile
	RejectedDelta  Rejected
	PendingConfirm Step
	RetryCount     int
	Picks          Picks
	// Navigate asks the caller to hand the finished profile onward.
	Navigate bool
	// Reset clears the profile, rejected items and picks and returns to greeting.
	Reset bool
}

type Engine struct {
	catalog Catalog
}

func NewEngine(catalog Catalog) *Engine {
	if catalog == nil {
		catalog = NewStaticCatalog()
	}
	return &Engine{catalog: catalog}
}

// Advance runs one turn. It never mutates state; state.Picks is copied before drawing.
func (e *Engine) Advance(state State, input string) Result {
	input = strings.TrimSpace(input)
	picks := state.Picks.Clone()
	if state.PendingConfirm != StepNone {
		return e.advancePending(state, input, picks)
	}
	return e.advanceNormal(state, input, picks)
}

func (e *Engine) advancePending(state State, input string, picks Picks) Result {
	step := state.PendingConfirm
	slot := step.Slot()

	switch {
	case IsPositiveConfirmation(input):
		return e.accept(state, step, state.Profile.Get(slot), picks)

	case IsNegativeOrReRecommend(input) || IsRecommendRequest(input):
		res := Result{
			NextStep:       step,
			PendingConfirm: step,
			RetryCount:     state.RetryCount,
			Picks:          picks,
		}
		res.RejectedDelta.Add(slot, state.Profile.Get(slot))
		s := e.pick(step, state.Profile, picks)
		res.ProfileDelta.Set(slot, s.Value)
		res.Reply = alternativeReply(step, s)
		return res
	}

	// Free text while pending is a direct answer for the same slot.
	if Validate(step, input) {
		return e.accept(state, step, input, picks)
	}
	return e.retry(state, step, picks)
}

func (e *Engine) advanceNormal(state State, input string, picks Picks) Result {
	step := state.Step

	switch step {
	case StepGreeting, StepSpot, StepAction, StepOutfit, StepPose:
		if IsRecommendRequest(input) {
			s := e.pick(step, state.Profile, picks)
			res := Result{
				Reply:          recommendReply(step, s),
				NextStep:       step,
				PendingConfirm: step,
				RetryCount:     state.RetryCount,
				Picks:          picks,
			}
			res.ProfileDelta.Set(step.Slot(), s.Value)
			return res
		}
		if !Validate(step, input) {
			return e.retry(state, step, picks)
		}
		return e.accept(state, step, input, picks)

	case StepConcept:
		id, _ := ResolveConcept(input)
		return e.accept(state, step, string(id), picks)

	case StepFilm, StepConfirm:
		if input == "" {
			return Result{
				Reply:      prompt(step, state.Profile),
				NextStep:   step,
				RetryCount: state.RetryCount,
				Picks:      picks,
			}
		}
		return e.accept(state, step, input, picks)

	case StepComplete:
		if IsPositiveConfirmation(input) {
			return Result{
				Reply:    closingReply,
				NextStep: StepComplete,
				Picks:    picks,
				Navigate: true,
			}
		}
	}

	return Result{
		Reply:    greetingReply,
		NextStep: StepGreeting,
		Picks:    Picks{},
		Reset:    true,
	}
}

func (e *Engine) accept(state State, step Step, value string, picks Picks) Result {
	var delta Profile
	delta.Set(step.Slot(), value)
	return Result{
		Reply:        acceptedReply(step, value, state.Profile.Merge(delta)),
		NextStep:     step.Next(),
		ProfileDelta: delta,
		Picks:        picks,
	}
}

func (e *Engine) retry(state State, step Step, picks Picks) Result {
	return Result{
		Reply:      retryReply(step, state.RetryCount),
		NextStep:   step,
		RetryCount: state.RetryCount + 1,
		Picks:      picks,
	}
}

func (e *Engine) pick(step Step, p Profile, picks Picks) Suggestion {
	switch step {
	case StepGreeting:
		return e.catalog.PickCity(picks)
	case StepSpot:
		return e.catalog.PickSpot(p.City, picks)
	case StepAction:
		return e.catalog.PickAction(picks)
	case StepOutfit:
		return e.catalog.PickOutfit(picks)
	case StepPose:
		return e.catalog.PickPose(picks)
	}
	return Suggestion{}
}
