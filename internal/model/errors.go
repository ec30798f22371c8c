package model

import (
	"fmt"
	"strings"
)

// DuplicateUnitError reports a unit id registered twice
type DuplicateUnitError struct {
	UnitID string
}

func (e *DuplicateUnitError) Error() string {
	return fmt.Sprintf("duplicate unit %q", e.UnitID)
}

// UnknownUnitError reports a reference to an unregistered unit
type UnknownUnitError struct {
	UnitID string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("unknown unit %q", e.UnitID)
}

// UnresolvedReferenceError reports a dangling entity reference. Entity is
// the id of the record holding the reference, Ref the reference that did
// not resolve.
type UnresolvedReferenceError struct {
	Entity string
	Ref    string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("entity %q references %q which does not exist", e.Entity, e.Ref)
}

// UnknownFormulaError reports a formula type with no registered evaluator
type UnknownFormulaError struct {
	Formula string
}

func (e *UnknownFormulaError) Error() string {
	return fmt.Sprintf("unknown formula %q", e.Formula)
}

// OperandCountError reports a formula applied with the wrong arity
type OperandCountError struct {
	Formula string
	Want    int
	Got     int
}

func (e *OperandCountError) Error() string {
	return fmt.Sprintf("formula %q takes %d operand(s), got %d", e.Formula, e.Want, e.Got)
}

// InvalidToleranceError reports a negative tolerance
type InvalidToleranceError struct {
	Entity    string
	Tolerance float64
}

func (e *InvalidToleranceError) Error() string {
	return fmt.Sprintf("entity %q has negative tolerance %g", e.Entity, e.Tolerance)
}

// EmptyDependencySetError reports a question aggregating zero claims.
// An aggregation over nothing has no defined truth value in this model.
type EmptyDependencySetError struct {
	Entity string
}

func (e *EmptyDependencySetError) Error() string {
	return fmt.Sprintf("question %q references no claims", e.Entity)
}

// CyclicDependencyError reports a cycle in the entity dependency graph.
// Entities lists every node left unresolved by the topological sort.
type CyclicDependencyError struct {
	Entities []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("dependency cycle involving: %s", strings.Join(e.Entities, ", "))
}

// KindMismatchError reports a claim comparing values of different quantity
// kinds (e.g., an energy against a temperature)
type KindMismatchError struct {
	Entity string
	KindA  QuantityKind
	KindB  QuantityKind
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("entity %q compares %s with %s", e.Entity, e.KindA, e.KindB)
}

// DependencyError reports a node whose own inputs could not be evaluated.
// It marks the downstream result as errored instead of defaulting the
// boolean either way.
type DependencyError struct {
	Entity     string
	Dependency string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("entity %q depends on %q which failed to evaluate", e.Entity, e.Dependency)
}

// ValidationIssue ties one validation failure to the table and entity that
// caused it
type ValidationIssue struct {
	Table  string `json:"table"`
	Entity string `json:"entity"`
	Err    error  `json:"-"`
}

func (i ValidationIssue) String() string {
	return fmt.Sprintf("%s/%s: %v", i.Table, i.Entity, i.Err)
}

// ValidationErrors is the collected set of build-time failures. The builder
// reports every malformed entity in one pass rather than stopping at the
// first.
type ValidationErrors []ValidationIssue

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, issue := range v {
		parts[i] = issue.String()
	}
	return fmt.Sprintf("%d validation error(s): %s", len(v), strings.Join(parts, "; "))
}
