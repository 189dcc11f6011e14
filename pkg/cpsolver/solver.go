package cpsolver

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultTimeLimit bounds a solve when the caller does not.
const DefaultTimeLimit = 20 * time.Second

// Options controls one solve.
type Options struct {
	// TimeLimit is the wall-clock budget. Zero means DefaultTimeLimit.
	TimeLimit time.Duration
	// Workers is a parallelism hint: how many portfolio searches to run.
	// Zero or negative means one.
	Workers int
}

// Solution carries the solve status and, when usable, one value per variable.
type Solution struct {
	status    Status
	values    []int
	objective int64
}

// Status reports the solve outcome.
func (s *Solution) Status() Status { return s.status }

// Objective reports the objective value of the returned assignment.
func (s *Solution) Objective() int64 { return s.objective }

// Value returns the solved value of v, or 0 when the status is not usable.
func (s *Solution) Value(v Var) int {
	if s.values == nil || int(v) < 0 || int(v) >= len(s.values) {
		return 0
	}
	return s.values[int(v)]
}

// incumbent is the best assignment found so far, shared across workers.
type incumbent struct {
	mu     sync.Mutex
	best   atomic.Int64
	values []int
	found  atomic.Bool
}

func (inc *incumbent) offer(values []int, obj int64) {
	inc.mu.Lock()
	defer inc.mu.Unlock()
	if inc.found.Load() && obj >= inc.best.Load() {
		return
	}
	inc.values = append([]int(nil), values...)
	inc.best.Store(obj)
	inc.found.Store(true)
}

// Solve runs branch-and-bound over the model within the time budget.
func Solve(m *Model, opts Options) *Solution {
	if m.invalid != nil {
		return &Solution{status: StatusInvalid}
	}

	limit := opts.TimeLimit
	if limit <= 0 {
		limit = DefaultTimeLimit
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(m.vars)+1 {
		workers = len(m.vars) + 1
	}
	deadline := time.Now().Add(limit)

	inc := &incumbent{}
	inc.best.Store(math.MaxInt64)
	var proven atomic.Bool

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			s := newSearcher(m, w, deadline, inc)
			if s.search(gctx) {
				proven.Store(true)
				cancel()
			}
			return nil
		})
	}
	_ = g.Wait()

	switch {
	case proven.Load() && inc.found.Load():
		return &Solution{status: StatusOptimal, values: inc.values, objective: inc.best.Load()}
	case proven.Load():
		return &Solution{status: StatusInfeasible}
	case inc.found.Load():
		return &Solution{status: StatusFeasible, values: inc.values, objective: inc.best.Load()}
	default:
		return &Solution{status: StatusUnknown}
	}
}

type searcher struct {
	m        *Model
	lo, hi   []int
	objCoef  []int64
	watch    [][]int32 // var -> constraint rows mentioning it
	order    []int     // branching order over variable indices
	trail    []trailEntry
	queue    []int32
	inQueue  []bool
	inc      *incumbent
	deadline time.Time
	nodes    uint64
	stopped  bool
}

type trailEntry struct {
	v            int32
	oldLo, oldHi int
}

func newSearcher(m *Model, seed int, deadline time.Time, inc *incumbent) *searcher {
	n := len(m.vars)
	s := &searcher{
		m:        m,
		lo:       make([]int, n),
		hi:       make([]int, n),
		objCoef:  make([]int64, n),
		watch:    make([][]int32, n),
		inQueue:  make([]bool, len(m.cons)),
		inc:      inc,
		deadline: deadline,
	}
	for i, vd := range m.vars {
		s.lo[i] = vd.lo
		s.hi[i] = vd.hi
	}
	for _, t := range m.objective {
		s.objCoef[int(t.Var)] += int64(t.Coef)
	}
	for ci, c := range m.cons {
		for _, t := range c.terms {
			s.watch[int(t.Var)] = append(s.watch[int(t.Var)], int32(ci))
		}
	}
	s.order = make([]int, n)
	for i := range s.order {
		s.order[i] = i
	}
	if seed > 0 && n > 1 {
		// Portfolio workers rotate the branching order so their first
		// descents explore different regions of the cube.
		r := rand.New(rand.NewSource(int64(seed)))
		offset := 1 + r.Intn(n-1)
		rotated := make([]int, 0, n)
		rotated = append(rotated, s.order[offset:]...)
		rotated = append(rotated, s.order[:offset]...)
		s.order = rotated
	}
	return s
}

// search returns true when the subtree rooted at the initial state was fully
// explored (optimality or infeasibility proven), false on budget expiry.
func (s *searcher) search(ctx context.Context) bool {
	for ci := range s.m.cons {
		s.enqueue(int32(ci))
	}
	if !s.propagate() {
		return true // root conflict: proven infeasible
	}
	s.dfs(ctx)
	return !s.stopped
}

func (s *searcher) dfs(ctx context.Context) {
	if s.stopped {
		return
	}
	s.nodes++
	if s.nodes&255 == 0 {
		if time.Now().After(s.deadline) || ctx.Err() != nil {
			s.stopped = true
			return
		}
	}

	v := s.pickVar()
	if v < 0 {
		s.recordLeaf()
		return
	}

	lo, hi := s.lo[v], s.hi[v]
	lowFirst := s.objCoef[v] > 0 || (s.objCoef[v] == 0 && hi-lo > 1)
	for i := 0; i <= hi-lo; i++ {
		val := hi - i
		if lowFirst {
			val = lo + i
		}
		mark := len(s.trail)
		if s.assign(v, val) && !s.pruned() {
			s.dfs(ctx)
		}
		s.undo(mark)
		if s.stopped {
			return
		}
	}
}

// pickVar returns the first unfixed variable in branching order, or -1.
func (s *searcher) pickVar() int {
	for _, v := range s.order {
		if s.lo[v] < s.hi[v] {
			return v
		}
	}
	return -1
}

// pruned reports whether the objective lower bound already matches or
// exceeds the incumbent.
func (s *searcher) pruned() bool {
	if !s.inc.found.Load() {
		return false
	}
	return s.objBound() >= s.inc.best.Load()
}

func (s *searcher) objBound() int64 {
	var bound int64
	for v, c := range s.objCoef {
		if c > 0 {
			bound += c * int64(s.lo[v])
		} else if c < 0 {
			bound += c * int64(s.hi[v])
		}
	}
	return bound
}

func (s *searcher) recordLeaf() {
	// Propagation keeps every row consistent, but verify before publishing:
	// the incumbent must never violate a constraint.
	var obj int64
	for _, c := range s.m.cons {
		var sum int64
		for _, t := range c.terms {
			sum += int64(t.Coef) * int64(s.lo[int(t.Var)])
		}
		if sum > int64(c.rhs) {
			return
		}
	}
	for v, c := range s.objCoef {
		obj += c * int64(s.lo[v])
	}
	s.inc.offer(s.lo, obj)
}

func (s *searcher) assign(v, val int) bool {
	if !s.setLo(int32(v), val) || !s.setHi(int32(v), val) {
		return s.clearQueue()
	}
	return s.propagate()
}

func (s *searcher) setLo(v int32, val int) bool {
	if val <= s.lo[v] {
		return true
	}
	s.trail = append(s.trail, trailEntry{v: v, oldLo: s.lo[v], oldHi: s.hi[v]})
	s.lo[v] = val
	if val > s.hi[v] {
		return false
	}
	for _, ci := range s.watch[v] {
		s.enqueue(ci)
	}
	return true
}

func (s *searcher) setHi(v int32, val int) bool {
	if val >= s.hi[v] {
		return true
	}
	s.trail = append(s.trail, trailEntry{v: v, oldLo: s.lo[v], oldHi: s.hi[v]})
	s.hi[v] = val
	if val < s.lo[v] {
		return false
	}
	for _, ci := range s.watch[v] {
		s.enqueue(ci)
	}
	return true
}

func (s *searcher) enqueue(ci int32) {
	if !s.inQueue[ci] {
		s.inQueue[ci] = true
		s.queue = append(s.queue, ci)
	}
}

// propagate runs interval propagation to a fixpoint over sum(a*v) <= rhs rows.
func (s *searcher) propagate() bool {
	for len(s.queue) > 0 {
		ci := s.queue[len(s.queue)-1]
		s.queue = s.queue[:len(s.queue)-1]
		s.inQueue[ci] = false

		c := &s.m.cons[ci]
		var sumMin int64
		for _, t := range c.terms {
			sumMin += minContrib(t.Coef, s.lo[int(t.Var)], s.hi[int(t.Var)])
		}
		if sumMin > int64(c.rhs) {
			s.queue = s.queue[:0]
			for i := range s.inQueue {
				s.inQueue[i] = false
			}
			return false
		}
		for _, t := range c.terms {
			v := int32(t.Var)
			rest := sumMin - minContrib(t.Coef, s.lo[v], s.hi[v])
			avail := int64(c.rhs) - rest
			if t.Coef > 0 {
				bound := floorDiv(avail, int64(t.Coef))
				if bound < int64(s.hi[v]) && !s.setHi(v, int(bound)) {
					return s.clearQueue()
				}
			} else {
				bound := ceilDiv(avail, int64(t.Coef))
				if bound > int64(s.lo[v]) && !s.setLo(v, int(bound)) {
					return s.clearQueue()
				}
			}
		}
	}
	return true
}

func (s *searcher) clearQueue() bool {
	s.queue = s.queue[:0]
	for i := range s.inQueue {
		s.inQueue[i] = false
	}
	return false
}

// undo rewinds the trail to mark. Propagation always drains or clears the
// queue before returning, so no queue reset is needed here.
func (s *searcher) undo(mark int) {
	for i := len(s.trail) - 1; i >= mark; i-- {
		e := s.trail[i]
		s.lo[e.v] = e.oldLo
		s.hi[e.v] = e.oldHi
	}
	s.trail = s.trail[:mark]
}

func minContrib(coef, lo, hi int) int64 {
	if coef >= 0 {
		return int64(coef) * int64(lo)
	}
	return int64(coef) * int64(hi)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) == (b < 0)) {
		q++
	}
	return q
}
