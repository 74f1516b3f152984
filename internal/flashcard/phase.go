package flashcard

import "fmt"

// Phase is the lifecycle stage of a card. It decides which update rule applies.
type Phase int

const (
	PhaseNew Phase = iota + 1
	PhaseLearning
	PhaseTransition
	PhaseReview
)

var (
	phaseNames  = [...]string{PhaseNew: "new", PhaseLearning: "learning", PhaseTransition: "transition", PhaseReview: "review"}
	phaseByName = map[string]Phase{
		"new":        PhaseNew,
		"learning":   PhaseLearning,
		"transition": PhaseTransition,
		"review":     PhaseReview,
	}
)

// IsValid reports whether p is a known phase.
func (p Phase) IsValid() bool {
	return p >= PhaseNew && p <= PhaseReview
}

func (p Phase) String() string {
	if p.IsValid() {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// ParsePhase maps a stored phase name back to a Phase. Unknown names return
// an error; callers loading legacy rows should fall back to Normalize.
func ParsePhase(s string) (Phase, error) {
	p, ok := phaseByName[s]
	if !ok {
		return 0, &InvalidStateError{Field: "phase", Value: s}
	}
	return p, nil
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, &InvalidStateError{Field: "phase", Value: int(p)}
	}
	return []byte(phaseNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	v, err := ParsePhase(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
