package engine

import (
	"fmt"
	"sort"

	"github.com/canonica/canonica/internal/formula"
	"github.com/canonica/canonica/internal/model"
	"github.com/canonica/canonica/internal/units"
)

// Table names used in validation issues
const (
	tableUnits        = "units"
	tableConstants    = "constants"
	tableInstances    = "instances"
	tableCalculations = "calculations"
	tableClaims       = "claims"
	tableQuestions    = "questions"
)

// node identifies one evaluatable entity in the dependency graph
type node struct {
	kind string // constant, instance, calculation, claim, question
	id   string
}

func (n node) key() string {
	return n.kind + ":" + n.id
}

// Model is a validated, immutable snapshot ready for evaluation: indexed
// tables, resolved tolerances, and a topological plan grouped by depth.
type Model struct {
	tables   model.Tables
	cfg      model.Config
	registry *units.Registry
	formulas *formula.Table

	constants map[string]model.Constant
	instances map[string]model.Instance
	calcs     map[string]model.Calculation
	claims    map[string]model.Claim
	questions map[string]model.Question

	// tolerances maps "calculation:id" / "claim:id" to the effective
	// absolute tolerance after default substitution
	tolerances map[string]float64

	levels   [][]node
	warnings []string
}

// Tables returns the input snapshot
func (m *Model) Tables() model.Tables { return m.tables }

// Config returns the configuration the model was built with
func (m *Model) Config() model.Config { return m.cfg }

// Registry returns the populated unit registry
func (m *Model) Registry() *units.Registry { return m.registry }

// Warnings returns non-fatal findings recorded during the build
func (m *Model) Warnings() []string { return m.warnings }

// Depth returns the number of levels in the topological evaluation plan
func (m *Model) Depth() int { return len(m.levels) }

// Build validates the six tables and produces an evaluation-ready Model.
// Validation errors are collected across all tables so one pass reports
// every malformed entity; on any error the returned model is nil and the
// error is a model.ValidationErrors.
func Build(tables model.Tables, cfg model.Config) (*Model, error) {
	return BuildWithFormulas(tables, cfg, formula.NewTable())
}

// BuildWithFormulas builds against a caller-supplied formula table, which
// may carry laws registered beyond the builtins.
func BuildWithFormulas(tables model.Tables, cfg model.Config, formulas *formula.Table) (*Model, error) {
	m := &Model{
		tables:     tables,
		cfg:        cfg,
		registry:   units.NewRegistry(),
		formulas:   formulas,
		constants:  make(map[string]model.Constant),
		instances:  make(map[string]model.Instance),
		calcs:      make(map[string]model.Calculation),
		claims:     make(map[string]model.Claim),
		questions:  make(map[string]model.Question),
		tolerances: make(map[string]float64),
	}

	var issues model.ValidationErrors
	addIssue := func(table, entity string, err error) {
		issues = append(issues, model.ValidationIssue{Table: table, Entity: entity, Err: err})
	}

	for _, u := range tables.Units {
		if err := m.registry.Register(u); err != nil {
			addIssue(tableUnits, u.ID, err)
		}
	}

	m.validateConstants(addIssue)
	m.validateInstances(addIssue)
	m.validateCalculations(addIssue)
	m.validateClaims(addIssue)
	m.validateQuestions(addIssue)

	if cycleErr := m.buildPlan(); cycleErr != nil {
		addIssue("model", "graph", cycleErr)
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return m, nil
}

func (m *Model) validateConstants(addIssue func(string, string, error)) {
	for _, c := range m.tables.Constants {
		if c.ID == "" {
			addIssue(tableConstants, "(empty)", fmt.Errorf("constant id must not be empty"))
			continue
		}
		if _, dup := m.constants[c.ID]; dup {
			addIssue(tableConstants, c.ID, fmt.Errorf("duplicate constant %q", c.ID))
			continue
		}
		if _, err := m.registry.Resolve(c.UnitID); err != nil {
			addIssue(tableConstants, c.ID, err)
		}
		m.constants[c.ID] = c
	}
}

func (m *Model) validateInstances(addIssue func(string, string, error)) {
	for _, i := range m.tables.Instances {
		if i.ID == "" {
			addIssue(tableInstances, "(empty)", fmt.Errorf("instance id must not be empty"))
			continue
		}
		if _, dup := m.instances[i.ID]; dup {
			addIssue(tableInstances, i.ID, fmt.Errorf("duplicate instance %q", i.ID))
			continue
		}
		if _, err := m.registry.Resolve(i.UnitID); err != nil {
			addIssue(tableInstances, i.ID, err)
		}
		hasLiteral := i.ObservedValue != nil
		hasSource := i.SourceRef != nil && !i.SourceRef.IsZero()
		switch {
		case hasLiteral && hasSource:
			addIssue(tableInstances, i.ID, fmt.Errorf("instance has both a literal value and a source ref"))
		case !hasLiteral && !hasSource:
			addIssue(tableInstances, i.ID, fmt.Errorf("instance has neither a literal value nor a source ref"))
		case hasSource:
			if err := m.checkRef(i.ID, *i.SourceRef); err != nil {
				addIssue(tableInstances, i.ID, err)
			} else {
				m.checkRefKind(tableInstances, i.ID, i.UnitID, *i.SourceRef, addIssue)
			}
		}
		m.instances[i.ID] = i
	}
}

func (m *Model) validateCalculations(addIssue func(string, string, error)) {
	for _, c := range m.tables.Calculations {
		if c.ID == "" {
			addIssue(tableCalculations, "(empty)", fmt.Errorf("calculation id must not be empty"))
			continue
		}
		if _, dup := m.calcs[c.ID]; dup {
			addIssue(tableCalculations, c.ID, fmt.Errorf("duplicate calculation %q", c.ID))
			continue
		}
		if err := m.formulas.CheckArity(c.Formula, len(c.OperandIDs)); err != nil {
			addIssue(tableCalculations, c.ID, err)
		}
		for _, opID := range c.OperandIDs {
			if _, ok := m.lookupConstant(opID); !ok {
				addIssue(tableCalculations, c.ID, &model.UnresolvedReferenceError{Entity: c.ID, Ref: "constant:" + opID})
			}
		}
		if c.ReferenceID == "" {
			addIssue(tableCalculations, c.ID, fmt.Errorf("calculation has no reference constant"))
		} else if _, ok := m.lookupConstant(c.ReferenceID); !ok {
			addIssue(tableCalculations, c.ID, &model.UnresolvedReferenceError{Entity: c.ID, Ref: "constant:" + c.ReferenceID})
		}
		if err := m.resolveTolerance("calculation", c.ID, c.Tolerance); err != nil {
			addIssue(tableCalculations, c.ID, err)
		}
		m.calcs[c.ID] = c
	}
}

func (m *Model) validateClaims(addIssue func(string, string, error)) {
	for _, cl := range m.tables.Claims {
		if cl.ID == "" {
			addIssue(tableClaims, "(empty)", fmt.Errorf("claim id must not be empty"))
			continue
		}
		if _, dup := m.claims[cl.ID]; dup {
			addIssue(tableClaims, cl.ID, fmt.Errorf("duplicate claim %q", cl.ID))
			continue
		}
		if cl.Left.IsZero() || cl.Right.IsZero() {
			addIssue(tableClaims, cl.ID, fmt.Errorf("claim needs both left and right refs"))
			m.claims[cl.ID] = cl
			continue
		}
		refs := cl.Refs()
		resolved := true
		for _, ref := range refs {
			if err := m.checkRef(cl.ID, ref); err != nil {
				addIssue(tableClaims, cl.ID, err)
				resolved = false
			}
		}
		if resolved {
			m.checkClaimKinds(cl, addIssue)
		}
		if err := m.resolveTolerance("claim", cl.ID, cl.Tolerance); err != nil {
			addIssue(tableClaims, cl.ID, err)
		}
		m.claims[cl.ID] = cl
	}
}

func (m *Model) validateQuestions(addIssue func(string, string, error)) {
	for _, q := range m.tables.Questions {
		if q.ID == "" {
			addIssue(tableQuestions, "(empty)", fmt.Errorf("question id must not be empty"))
			continue
		}
		if _, dup := m.questions[q.ID]; dup {
			addIssue(tableQuestions, q.ID, fmt.Errorf("duplicate question %q", q.ID))
			continue
		}
		if len(q.ClaimIDs) == 0 {
			addIssue(tableQuestions, q.ID, &model.EmptyDependencySetError{Entity: q.ID})
		}
		switch q.EffectiveMode() {
		case model.ModeAll, model.ModeAny, model.ModeNone:
		default:
			addIssue(tableQuestions, q.ID, fmt.Errorf("unknown aggregation mode %q", q.Mode))
		}
		for _, claimID := range q.ClaimIDs {
			if _, ok := m.claims[claimID]; !ok {
				if !m.claimDefined(claimID) {
					addIssue(tableQuestions, q.ID, &model.UnresolvedReferenceError{Entity: q.ID, Ref: "claim:" + claimID})
				}
			}
		}
		m.questions[q.ID] = q
	}
}

// claimDefined checks the raw table too, since a claim rejected by its own
// validation is still "defined" for reference purposes.
func (m *Model) claimDefined(id string) bool {
	for _, cl := range m.tables.Claims {
		if cl.ID == id {
			return true
		}
	}
	return false
}

func (m *Model) lookupConstant(id string) (model.Constant, bool) {
	if c, ok := m.constants[id]; ok {
		return c, true
	}
	// Table order is not a dependency order for lookups
	for _, c := range m.tables.Constants {
		if c.ID == id {
			return c, true
		}
	}
	return model.Constant{}, false
}

// checkRef verifies that a typed reference points at a defined entity
func (m *Model) checkRef(from string, ref model.Ref) error {
	switch ref.Kind {
	case model.RefConstant:
		if _, ok := m.lookupConstant(ref.ID); ok {
			return nil
		}
	case model.RefInstance:
		for _, i := range m.tables.Instances {
			if i.ID == ref.ID {
				return nil
			}
		}
	case model.RefCalculation:
		for _, c := range m.tables.Calculations {
			if c.ID == ref.ID {
				return nil
			}
		}
	default:
		return fmt.Errorf("entity %q has ref with unknown kind %q", from, ref.Kind)
	}
	return &model.UnresolvedReferenceError{Entity: from, Ref: ref.String()}
}

// refKind determines the quantity kind a reference resolves to, where
// determinable. Calculations inherit the kind of their reference constant.
func (m *Model) refKind(ref model.Ref) (model.QuantityKind, bool) {
	switch ref.Kind {
	case model.RefConstant:
		if c, ok := m.lookupConstant(ref.ID); ok {
			if k, err := m.registry.Kind(c.UnitID); err == nil {
				return k, true
			}
		}
	case model.RefInstance:
		for _, i := range m.tables.Instances {
			if i.ID == ref.ID {
				if k, err := m.registry.Kind(i.UnitID); err == nil {
					return k, true
				}
			}
		}
	case model.RefCalculation:
		for _, c := range m.tables.Calculations {
			if c.ID == ref.ID {
				return m.refKind(model.Ref{Kind: model.RefConstant, ID: c.ReferenceID})
			}
		}
	}
	return "", false
}

// checkRefKind applies the kind-mismatch policy to an entity's own unit
// versus a reference it derives from
func (m *Model) checkRefKind(table, entity, unitID string, ref model.Ref, addIssue func(string, string, error)) {
	ownKind, err := m.registry.Kind(unitID)
	if err != nil {
		return
	}
	refKind, ok := m.refKind(ref)
	if !ok || ownKind == refKind {
		return
	}
	m.kindMismatch(table, entity, ownKind, refKind, addIssue)
}

// checkClaimKinds applies the kind-mismatch policy across all of a claim's
// compared references
func (m *Model) checkClaimKinds(cl model.Claim, addIssue func(string, string, error)) {
	refs := cl.Refs()
	first, ok := m.refKind(refs[0])
	if !ok {
		return
	}
	for _, ref := range refs[1:] {
		k, ok := m.refKind(ref)
		if !ok {
			continue
		}
		if k != first {
			m.kindMismatch(tableClaims, cl.ID, first, k, addIssue)
			return
		}
	}
}

func (m *Model) kindMismatch(table, entity string, a, b model.QuantityKind, addIssue func(string, string, error)) {
	err := &model.KindMismatchError{Entity: entity, KindA: a, KindB: b}
	if m.cfg.Engine.KindMismatch == model.KindMismatchWarn {
		m.warnings = append(m.warnings, fmt.Sprintf("%s/%s: %v", table, entity, err))
		return
	}
	addIssue(table, entity, err)
}

// resolveTolerance validates a tolerance and records the effective value
// after default substitution
func (m *Model) resolveTolerance(kind, id string, tol *float64) error {
	effective := m.cfg.Engine.DefaultTolerance
	if tol != nil {
		if *tol < 0 {
			return &model.InvalidToleranceError{Entity: id, Tolerance: *tol}
		}
		effective = *tol
	}
	m.tolerances[kind+":"+id] = effective
	return nil
}

// Tolerance returns the effective tolerance for a calculation or claim
func (m *Model) Tolerance(kind, id string) float64 {
	return m.tolerances[kind+":"+id]
}

// buildPlan runs Kahn's algorithm over the cross-entity edge set, grouping
// nodes by topological depth. Nodes left with unresolved in-degrees form a
// cycle and fail the build.
func (m *Model) buildPlan() error {
	var order []node
	deps := make(map[string][]node) // node key -> its dependencies

	appendDeps := func(n node, targets ...node) {
		deps[n.key()] = append(deps[n.key()], targets...)
	}
	defined := make(map[string]bool)

	for _, c := range m.tables.Constants {
		n := node{kind: "constant", id: c.ID}
		order = append(order, n)
		defined[n.key()] = true
	}
	for _, i := range m.tables.Instances {
		n := node{kind: "instance", id: i.ID}
		order = append(order, n)
		defined[n.key()] = true
	}
	for _, c := range m.tables.Calculations {
		n := node{kind: "calculation", id: c.ID}
		order = append(order, n)
		defined[n.key()] = true
	}
	for _, cl := range m.tables.Claims {
		n := node{kind: "claim", id: cl.ID}
		order = append(order, n)
		defined[n.key()] = true
	}
	for _, q := range m.tables.Questions {
		n := node{kind: "question", id: q.ID}
		order = append(order, n)
		defined[n.key()] = true
	}

	refNode := func(r model.Ref) node {
		return node{kind: string(r.Kind), id: r.ID}
	}

	for _, i := range m.tables.Instances {
		if i.SourceRef != nil && !i.SourceRef.IsZero() {
			appendDeps(node{kind: "instance", id: i.ID}, refNode(*i.SourceRef))
		}
	}
	for _, c := range m.tables.Calculations {
		n := node{kind: "calculation", id: c.ID}
		for _, op := range c.OperandIDs {
			appendDeps(n, node{kind: "constant", id: op})
		}
		if c.ReferenceID != "" {
			appendDeps(n, node{kind: "constant", id: c.ReferenceID})
		}
	}
	for _, cl := range m.tables.Claims {
		n := node{kind: "claim", id: cl.ID}
		for _, ref := range cl.Refs() {
			if !ref.IsZero() {
				appendDeps(n, refNode(ref))
			}
		}
	}
	for _, q := range m.tables.Questions {
		n := node{kind: "question", id: q.ID}
		for _, claimID := range q.ClaimIDs {
			appendDeps(n, node{kind: "claim", id: claimID})
		}
	}

	indeg := make(map[string]int, len(order))
	dependents := make(map[string][]string)
	for _, n := range order {
		key := n.key()
		for _, dep := range deps[key] {
			if !defined[dep.key()] {
				continue // dangling refs are reported elsewhere
			}
			indeg[key]++
			dependents[dep.key()] = append(dependents[dep.key()], key)
		}
	}

	remaining := make(map[string]node, len(order))
	for _, n := range order {
		remaining[n.key()] = n
	}

	var levels [][]node
	current := make([]node, 0)
	for _, n := range order {
		if indeg[n.key()] == 0 {
			current = append(current, n)
		}
	}
	for len(current) > 0 {
		levels = append(levels, current)
		next := make([]node, 0)
		for _, n := range current {
			delete(remaining, n.key())
			for _, depKey := range dependents[n.key()] {
				indeg[depKey]--
				if indeg[depKey] == 0 {
					next = append(next, remaining[depKey])
				}
			}
		}
		sort.SliceStable(next, func(a, b int) bool { return next[a].key() < next[b].key() })
		current = next
	}

	if len(remaining) > 0 {
		stuck := make([]string, 0, len(remaining))
		for key := range remaining {
			stuck = append(stuck, key)
		}
		sort.Strings(stuck)
		return &model.CyclicDependencyError{Entities: stuck}
	}

	m.levels = levels
	return nil
}
