package pipeline

import (
	"fmt"
	"strings"
)

// Action is what the assembler does with a failed item.
type Action int

const (
	// Drop leaves the item out of the result and keeps going.
	Drop Action = iota
	// Fail aborts the batch with the item's error.
	Fail
)

func (a Action) String() string {
	if a == Fail {
		return "fail"
	}
	return "drop"
}

// Policy selects an Action per stage. Convert covers both copy and
// compress. The zero Policy drops every failure.
type Policy struct {
	Convert  Action
	Describe Action
}

// DefaultPolicy drops items that fail to copy or compress and fails the
// batch when an item cannot be described.
func DefaultPolicy() Policy {
	return Policy{Convert: Drop, Describe: Fail}
}

// BestEffortPolicy drops every failed item; failures are listed in
// Envelope.Dropped.
func BestEffortPolicy() Policy {
	return Policy{Convert: Drop, Describe: Drop}
}

// FailFastPolicy fails the batch on any failed item.
func FailFastPolicy() Policy {
	return Policy{Convert: Fail, Describe: Fail}
}

// ParsePolicy maps a configuration value to a Policy. Empty selects the
// default policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return DefaultPolicy(), nil
	case "best-effort", "besteffort":
		return BestEffortPolicy(), nil
	case "fail-fast", "failfast":
		return FailFastPolicy(), nil
	}
	return Policy{}, fmt.Errorf("unknown pipeline policy %q", s)
}

func (p Policy) action(stage Stage) Action {
	if stage == StageDescribe {
		return p.Describe
	}
	return p.Convert
}

func (p Policy) String() string {
	switch p {
	case DefaultPolicy():
		return "default"
	case BestEffortPolicy():
		return "best-effort"
	case FailFastPolicy():
		return "fail-fast"
	}
	return fmt.Sprintf("convert=%s,describe=%s", p.Convert, p.Describe)
}
