package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/canonica/canonica/internal/model"
	"github.com/canonica/canonica/internal/resolve"
	"github.com/canonica/canonica/internal/worker"
)

// Evaluator walks a Model's topological plan and produces an
// EvaluationReport. Nodes within one level are independent by
// construction and run in parallel on a bounded pool; each node's outcome
// is Ok(value) or Err, and an error on one node never aborts unrelated
// nodes.
type Evaluator struct {
	m        *Model
	resolver *resolve.Resolver
	pool     *worker.Pool

	values map[string]float64 // node key -> canonical value
	errs   map[string]error   // node key -> evaluation error

	calcResults  map[string]model.CalculationResult
	claimResults map[string]model.ClaimResult
	qResults     map[string]model.QuestionResult
}

// NewEvaluator creates an evaluator for a built model
func NewEvaluator(m *Model) *Evaluator {
	return &Evaluator{
		m:            m,
		resolver:     resolve.New(m.registry, m.cfg.Cache.Enabled),
		pool:         worker.NewPool(m.cfg.Engine.Workers),
		values:       make(map[string]float64),
		errs:         make(map[string]error),
		calcResults:  make(map[string]model.CalculationResult),
		claimResults: make(map[string]model.ClaimResult),
		qResults:     make(map[string]model.QuestionResult),
	}
}

// Evaluate runs Build's plan against a model and returns the full report
func Evaluate(ctx context.Context, m *Model) *model.EvaluationReport {
	return NewEvaluator(m).Evaluate(ctx)
}

// outcome is one node's evaluation result, written only by its own task
type outcome struct {
	n     node
	value float64
	err   error
	calc  *model.CalculationResult
	claim *model.ClaimResult
	quest *model.QuestionResult
}

// Evaluate executes the plan level by level and assembles the report
func (e *Evaluator) Evaluate(ctx context.Context) *model.EvaluationReport {
	for _, level := range e.m.levels {
		outcomes := make([]outcome, len(level))
		tasks := make([]worker.Task, len(level))
		for i, n := range level {
			idx, nd := i, n
			tasks[idx] = func(taskCtx context.Context) {
				if taskCtx.Err() != nil {
					outcomes[idx] = outcome{n: nd, err: taskCtx.Err()}
					return
				}
				outcomes[idx] = e.evalNode(nd)
			}
		}
		e.pool.Run(ctx, tasks)
		for _, out := range outcomes {
			e.merge(out)
		}
	}
	return e.buildReport()
}

func (e *Evaluator) merge(out outcome) {
	key := out.n.key()
	if out.err != nil {
		e.errs[key] = out.err
	} else {
		e.values[key] = out.value
	}
	if out.calc != nil {
		e.calcResults[out.n.id] = *out.calc
	}
	if out.claim != nil {
		e.claimResults[out.n.id] = *out.claim
	}
	if out.quest != nil {
		e.qResults[out.n.id] = *out.quest
	}
}

func (e *Evaluator) evalNode(n node) outcome {
	switch n.kind {
	case "constant":
		return e.evalConstant(n)
	case "instance":
		return e.evalInstance(n)
	case "calculation":
		return e.evalCalculation(n)
	case "claim":
		return e.evalClaim(n)
	case "question":
		return e.evalQuestion(n)
	}
	return outcome{n: n, err: fmt.Errorf("unknown node kind %q", n.kind)}
}

func (e *Evaluator) evalConstant(n node) outcome {
	v, err := e.resolver.Constant(e.m.constants[n.id])
	return outcome{n: n, value: v, err: err}
}

func (e *Evaluator) evalInstance(n node) outcome {
	inst := e.m.instances[n.id]
	if inst.ObservedValue != nil {
		v, err := e.resolver.InstanceLiteral(inst)
		return outcome{n: n, value: v, err: err}
	}

	srcKey := string(inst.SourceRef.Kind) + ":" + inst.SourceRef.ID
	if depErr := e.errs[srcKey]; depErr != nil {
		return outcome{n: n, err: &model.DependencyError{Entity: n.id, Dependency: srcKey}}
	}
	source, ok := e.values[srcKey]
	if !ok {
		return outcome{n: n, err: &model.UnresolvedReferenceError{Entity: n.id, Ref: srcKey}}
	}
	_, canonical, err := e.resolver.InstanceDerived(inst, source)
	return outcome{n: n, value: canonical, err: err}
}

func (e *Evaluator) evalCalculation(n node) outcome {
	calc := e.m.calcs[n.id]
	res := model.CalculationResult{
		ID:        calc.ID,
		Formula:   calc.Formula,
		Tolerance: e.m.Tolerance("calculation", calc.ID),
	}

	operands := make([]float64, len(calc.OperandIDs))
	for i, opID := range calc.OperandIDs {
		key := "constant:" + opID
		if depErr := e.errs[key]; depErr != nil {
			return e.failCalc(n, res, &model.DependencyError{Entity: calc.ID, Dependency: key})
		}
		v, ok := e.values[key]
		if !ok {
			return e.failCalc(n, res, &model.UnresolvedReferenceError{Entity: calc.ID, Ref: key})
		}
		operands[i] = v
	}

	result, err := e.m.formulas.Eval(calc.Formula, operands)
	if err != nil {
		return e.failCalc(n, res, err)
	}
	res.Result = result

	refKey := "constant:" + calc.ReferenceID
	if depErr := e.errs[refKey]; depErr != nil {
		return e.failCalc(n, res, &model.DependencyError{Entity: calc.ID, Dependency: refKey})
	}
	reference, ok := e.values[refKey]
	if !ok {
		return e.failCalc(n, res, &model.UnresolvedReferenceError{Entity: calc.ID, Ref: refKey})
	}
	res.Reference = reference
	res.AbsError = math.Abs(result - reference)
	res.WithinTolerance = res.AbsError <= res.Tolerance

	return outcome{n: n, value: result, calc: &res}
}

func (e *Evaluator) failCalc(n node, res model.CalculationResult, err error) outcome {
	res.Error = err.Error()
	return outcome{n: n, err: err, calc: &res}
}

func (e *Evaluator) evalClaim(n node) outcome {
	cl := e.m.claims[n.id]
	res := model.ClaimResult{
		ID:        cl.ID,
		Text:      cl.Text,
		Type:      cl.Type,
		Tolerance: e.m.Tolerance("claim", cl.ID),
	}

	refs := cl.Refs()
	values := make([]float64, len(refs))
	for i, ref := range refs {
		key := ref.String()
		if e.errs[key] != nil {
			err := &model.DependencyError{Entity: cl.ID, Dependency: key}
			res.Error = err.Error()
			return outcome{n: n, err: err, claim: &res}
		}
		v, ok := e.values[key]
		if !ok {
			err := &model.UnresolvedReferenceError{Entity: cl.ID, Ref: key}
			res.Error = err.Error()
			return outcome{n: n, err: err, claim: &res}
		}
		values[i] = v
	}
	res.Values = values

	// Spread over all representations; for exactly two this is the
	// absolute difference of left and right.
	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	res.Spread = maxV - minV
	res.Pass = res.Spread <= res.Tolerance

	// Pass carries the node's boolean; the value slot carries the spread
	// so downstream diagnostics can read it.
	return outcome{n: n, value: res.Spread, claim: &res}
}

func (e *Evaluator) evalQuestion(n node) outcome {
	q := e.m.questions[n.id]
	res := model.QuestionResult{
		ID:   q.ID,
		Text: q.Text,
		Mode: q.EffectiveMode(),
	}

	passes := make([]bool, len(q.ClaimIDs))
	for i, claimID := range q.ClaimIDs {
		cr, ok := e.claimResults[claimID]
		if !ok {
			err := &model.UnresolvedReferenceError{Entity: q.ID, Ref: "claim:" + claimID}
			res.Error = err.Error()
			return outcome{n: n, err: err, quest: &res}
		}
		// An errored claim poisons the question: never treat it as
		// passing or failing.
		if cr.Error != "" {
			err := &model.DependencyError{Entity: q.ID, Dependency: "claim:" + claimID}
			res.Error = err.Error()
			return outcome{n: n, err: err, quest: &res}
		}
		passes[i] = cr.Pass
	}

	switch res.Mode {
	case model.ModeAll:
		res.Answer = true
		for _, p := range passes {
			res.Answer = res.Answer && p
		}
	case model.ModeAny:
		res.Answer = false
		for _, p := range passes {
			res.Answer = res.Answer || p
		}
	case model.ModeNone:
		res.Answer = true
		for _, p := range passes {
			if p {
				res.Answer = false
				break
			}
		}
	}

	return outcome{n: n, quest: &res}
}

func (e *Evaluator) buildReport() *model.EvaluationReport {
	report := &model.EvaluationReport{
		Title:       e.m.tables.Title,
		EvaluatedAt: time.Now().UTC(),
		Warnings:    append([]string(nil), e.m.warnings...),
	}

	for _, c := range e.m.tables.Constants {
		report.Constants = append(report.Constants, e.valueResult("constant", c.ID))
	}
	for _, i := range e.m.tables.Instances {
		report.Instances = append(report.Instances, e.valueResult("instance", i.ID))
	}
	for _, c := range e.m.tables.Calculations {
		report.Calculations = append(report.Calculations, e.calcResults[c.ID])
	}
	for _, cl := range e.m.tables.Claims {
		cr := e.claimResults[cl.ID]
		report.Claims = append(report.Claims, cr)
		report.Dashboard.ClaimsTotal++
		switch {
		case cr.Error != "":
			report.Dashboard.ClaimsErrored++
		case cr.Pass:
			report.Dashboard.ClaimsPassing++
		}
	}
	for _, q := range e.m.tables.Questions {
		qr := e.qResults[q.ID]
		report.Questions = append(report.Questions, qr)
		report.Dashboard.QuestionsTotal++
		switch {
		case qr.Error != "":
			report.Dashboard.QuestionsErrored++
		case qr.Answer:
			report.Dashboard.QuestionsTrue++
		}
	}

	return report
}

func (e *Evaluator) valueResult(kind, id string) model.ValueResult {
	key := kind + ":" + id
	res := model.ValueResult{ID: id}
	if err := e.errs[key]; err != nil {
		res.Error = err.Error()
		return res
	}
	res.Canonical = e.values[key]
	return res
}
