package spawn

import (
	"fmt"
	"math/rand"

	"proto3d/internal/engine"
	"proto3d/internal/logging"
)

// Spawner is the facade over pool, queue, scheduler, distributor and
// sampler. All state is advanced by Update from the host's frame loop;
// nothing here is safe for concurrent use and nothing needs to be.
type Spawner struct {
	pool    *TypedPool
	sampler *Sampler
	queue   commandQueue
	current *sequentialState

	// ForceWhenEmpty makes acquire recycle the oldest active instance
	// instead of skipping the spawn when a free list runs dry.
	ForceWhenEmpty bool

	active []*engine.GameObject // insertion order = spawn order
	rng    *rand.Rand
	log    logging.Sink
}

func NewSpawner(pool *TypedPool, sampler *Sampler, rng *rand.Rand, sink logging.Sink) *Spawner {
	if sink == nil {
		sink = logging.Nop{}
	}
	return &Spawner{
		pool:    pool,
		sampler: sampler,
		rng:     rng,
		log:     sink,
	}
}

// SpawnImmediate requests count instances of one type this tick.
func (s *Spawner) SpawnImmediate(t ObjectType, count int) bool {
	return s.submit(Command{Immediate: true, Types: []ObjectType{t}, Counts: []int{count}})
}

// SpawnSequential requests count instances of one type paced evenly
// over duration seconds.
func (s *Spawner) SpawnSequential(t ObjectType, count int, duration float32) bool {
	return s.submit(Command{Types: []ObjectType{t}, Counts: []int{count}, Duration: duration})
}

// SpawnMixedImmediate requests several types at once this tick.
func (s *Spawner) SpawnMixedImmediate(types []ObjectType, counts []int) bool {
	return s.submit(Command{Immediate: true, Types: types, Counts: counts})
}

// SpawnMixedSequential requests several types paced over duration, in
// an order shuffled across all instances.
func (s *Spawner) SpawnMixedSequential(types []ObjectType, counts []int, duration float32) bool {
	return s.submit(Command{Types: types, Counts: counts, Duration: duration})
}

// SpawnWeightedImmediate distributes total across the weighted types
// and spawns the result this tick.
func (s *Spawner) SpawnWeightedImmediate(total int, entries []WeightEntry) bool {
	types, counts, ok := s.distribute(total, entries)
	if !ok {
		return false
	}
	if len(types) == 0 {
		return true // total 0 is a valid no-op
	}
	return s.submit(Command{Immediate: true, Types: types, Counts: counts})
}

// SpawnWeightedSequential distributes total across the weighted types
// and paces the result over duration.
func (s *Spawner) SpawnWeightedSequential(total int, entries []WeightEntry, duration float32) bool {
	types, counts, ok := s.distribute(total, entries)
	if !ok {
		return false
	}
	if len(types) == 0 {
		return true
	}
	return s.submit(Command{Types: types, Counts: counts, Duration: duration})
}

func (s *Spawner) distribute(total int, entries []WeightEntry) ([]ObjectType, []int, bool) {
	counts, err := Distribute(total, entries)
	if err != nil {
		s.log.Log(logging.LevelError, "spawn.invalid_command", err.Error(), false)
		return nil, nil, false
	}
	var outTypes []ObjectType
	var outCounts []int
	for i, n := range counts {
		if n > 0 {
			outTypes = append(outTypes, entries[i].Type)
			outCounts = append(outCounts, n)
		}
	}
	return outTypes, outCounts, true
}

func (s *Spawner) submit(cmd Command) bool {
	if s.pool == nil || s.sampler == nil {
		s.log.Log(logging.LevelError, "spawn.invalid_command", "spawner missing pool or sampler", false)
		return false
	}
	if err := cmd.validate(); err != nil {
		s.log.Log(logging.LevelError, "spawn.invalid_command", err.Error(), false)
		return false
	}
	for _, t := range cmd.Types {
		if !s.pool.HasType(t) {
			s.log.Log(logging.LevelError, "spawn.invalid_command", fmt.Sprintf("type %d not pooled", t), false)
			return false
		}
	}
	s.queue.enqueue(cmd)
	s.log.Log(logging.LevelDebug, "spawn.enqueued", fmt.Sprintf("immediate=%v total=%d", cmd.Immediate, cmd.TotalCount()), false)
	return true
}

// Update advances the active sequential command, or dequeues the next
// command when idle. Immediate commands finish within the tick;
// sequential commands block the queue until they complete or are
// stopped.
func (s *Spawner) Update(dt float32) {
	if s.current != nil {
		s.emit(s.current.advance(dt))
		if s.current.done() {
			s.current = nil
			s.log.Log(logging.LevelInfo, "spawn.sequential_complete", len(s.active), false)
		}
		return
	}

	cmd, ok := s.queue.dequeue()
	if !ok {
		return
	}

	if cmd.Immediate {
		for i, t := range cmd.Types {
			for n := 0; n < cmd.Counts[i]; n++ {
				s.spawnOne(t)
			}
		}
		return
	}

	s.current = newSequentialState(cmd, s.rng)
	s.emit(s.current.advance(dt))
	if s.current.done() {
		s.current = nil
		s.log.Log(logging.LevelInfo, "spawn.sequential_complete", len(s.active), false)
	}
}

func (s *Spawner) emit(batch []ObjectType) {
	for _, t := range batch {
		s.spawnOne(t)
	}
}

func (s *Spawner) spawnOne(t ObjectType) {
	pos, rot := s.sampler.Sample()
	g := s.pool.Acquire(t, pos, rot, s.ForceWhenEmpty)
	if g == nil {
		return // attempted but not realized, pool already logged it
	}
	// A force-recycled instance is already tracked; move it to the end
	// so recall-latest still means most recently spawned.
	for i, a := range s.active {
		if a == g {
			s.active = append(s.active[:i], s.active[i+1:]...)
			break
		}
	}
	s.active = append(s.active, g)
}

// StopSequential cancels the active sequential command. Instances it
// already spawned stay active; the queue unblocks immediately.
func (s *Spawner) StopSequential() {
	if s.current == nil {
		return
	}
	remaining := len(s.current.order) - s.current.cursor
	s.current = nil
	s.log.Log(logging.LevelInfo, "spawn.sequential_stopped", fmt.Sprintf("remaining=%d", remaining), false)
}

// RecallAll returns every active instance to the pool and reports how
// many were released.
func (s *Spawner) RecallAll() int {
	released := 0
	for _, g := range s.active {
		if s.pool.Release(g) {
			released++
		}
	}
	s.active = s.active[:0]
	s.log.Log(logging.LevelInfo, "spawn.recall_all", released, false)
	return released
}

// Track adds a pool instance acquired outside the command path to the
// active set, so recalls and counts still cover it. Scripts that place
// objects themselves (drop lines, merge results) use this.
func (s *Spawner) Track(g *engine.GameObject) {
	if g == nil || !s.pool.Owns(g) {
		s.log.Log(logging.LevelWarning, "spawn.track_invalid", "instance not pool-owned", false)
		return
	}
	for _, a := range s.active {
		if a == g {
			return
		}
	}
	s.active = append(s.active, g)
}

// Recall releases one specific active instance, for gameplay that
// consumes objects out of spawn order (merges, explosions).
func (s *Spawner) Recall(g *engine.GameObject) bool {
	for i, a := range s.active {
		if a == g {
			s.active = append(s.active[:i], s.active[i+1:]...)
			return s.pool.Release(g)
		}
	}
	s.log.Log(logging.LevelWarning, "spawn.recall_invalid", "instance not in active set", false)
	return false
}

// RecallLatest releases the n most recently spawned instances, clamped
// to the active count.
func (s *Spawner) RecallLatest(n int) int {
	if n > len(s.active) {
		n = len(s.active)
	}
	released := 0
	for i := 0; i < n; i++ {
		g := s.active[len(s.active)-1]
		s.active = s.active[:len(s.active)-1]
		if s.pool.Release(g) {
			released++
		}
	}
	s.log.Log(logging.LevelInfo, "spawn.recall_latest", released, false)
	return released
}

// IsSpawning reports whether a command is executing or queued.
func (s *Spawner) IsSpawning() bool {
	return s.current != nil || s.queue.len() > 0
}

// SpawnedCount returns the number of active spawned instances.
func (s *Spawner) SpawnedCount() int {
	return len(s.active)
}

// SpawnedObjects returns a snapshot copy of the active set in spawn
// order.
func (s *Spawner) SpawnedObjects() []*engine.GameObject {
	out := make([]*engine.GameObject, len(s.active))
	copy(out, s.active)
	return out
}

// Sampler exposes the placement sampler for host configuration.
func (s *Spawner) Sampler() *Sampler {
	return s.sampler
}

// Pool exposes the typed pool for host configuration and stats.
func (s *Spawner) Pool() *TypedPool {
	return s.pool
}
