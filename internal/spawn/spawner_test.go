package spawn

import (
	"math/rand"
	"testing"

	"proto3d/internal/engine"
	"proto3d/internal/logging"
)

const (
	typeCube   ObjectType = 1
	typeSphere ObjectType = 2
)

func testSpawner(t *testing.T, cubes, spheres int, sink logging.Sink) *Spawner {
	t.Helper()
	entries := []PoolEntry{
		{Type: typeCube, Count: cubes, Prefab: func() *engine.GameObject { return engine.NewGameObject("cube") }},
	}
	if spheres > 0 {
		entries = append(entries, PoolEntry{
			Type: typeSphere, Count: spheres,
			Prefab: func() *engine.GameObject { return engine.NewGameObject("sphere") },
		})
	}
	pool := NewTypedPool(entries, sink)
	if err := pool.Initialize(nil); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	sampler := NewSampler(rng, sink)
	sampler.Area = testArea()
	return NewSpawner(pool, sampler, rng, sink)
}

func TestSpawnImmediateCompletesInOneTick(t *testing.T) {
	s := testSpawner(t, 10, 0, nil)

	if !s.SpawnImmediate(typeCube, 4) {
		t.Fatal("valid immediate command rejected")
	}
	if s.SpawnedCount() != 0 {
		t.Error("command executed before any tick")
	}

	s.Update(0.016)
	if s.SpawnedCount() != 4 {
		t.Errorf("expected 4 spawned after one tick, got %d", s.SpawnedCount())
	}
	if s.IsSpawning() {
		t.Error("immediate command should not leave the spawner busy")
	}
}

func TestSpawnSequentialPacing(t *testing.T) {
	s := testSpawner(t, 10, 0, nil)

	// 4 spawns over 1s = one spawn per 0.25s.
	if !s.SpawnSequential(typeCube, 4, 1.0) {
		t.Fatal("valid sequential command rejected")
	}

	expected := []int{1, 2, 3, 4}
	for i, want := range expected {
		s.Update(0.3)
		if got := s.SpawnedCount(); got != want {
			t.Fatalf("tick %d: expected %d spawned, got %d", i+1, want, got)
		}
	}
	if s.IsSpawning() {
		t.Error("spawner still busy after all spawns emitted")
	}
}

func TestSpawnSequentialLargeTickEmitsAllDue(t *testing.T) {
	s := testSpawner(t, 10, 0, nil)
	s.SpawnSequential(typeCube, 5, 1.0)

	s.Update(10)
	if s.SpawnedCount() != 5 {
		t.Errorf("expected all 5 spawns in one large tick, got %d", s.SpawnedCount())
	}
	if s.IsSpawning() {
		t.Error("spawner should be idle after completing within the tick")
	}
}

func TestQueuePreservesCommandOrder(t *testing.T) {
	s := testSpawner(t, 10, 10, nil)

	s.SpawnSequential(typeCube, 3, 0.3)
	s.SpawnSequential(typeSphere, 2, 0.2)

	for i := 0; i < 20 && s.IsSpawning(); i++ {
		s.Update(0.05)
	}

	objs := s.SpawnedObjects()
	if len(objs) != 5 {
		t.Fatalf("expected 5 spawned, got %d", len(objs))
	}
	for i := 0; i < 3; i++ {
		if objs[i].Name != "cube" {
			t.Errorf("spawn %d: expected cube before any sphere, got %s", i, objs[i].Name)
		}
	}
	for i := 3; i < 5; i++ {
		if objs[i].Name != "sphere" {
			t.Errorf("spawn %d: expected sphere, got %s", i, objs[i].Name)
		}
	}
}

func TestSecondCommandWaitsForFirst(t *testing.T) {
	s := testSpawner(t, 10, 10, nil)

	s.SpawnSequential(typeCube, 2, 1.0) // one spawn per 0.5s
	s.SpawnImmediate(typeSphere, 1)

	s.Update(0.6)
	for _, g := range s.SpawnedObjects() {
		if g.Name == "sphere" {
			t.Fatal("queued command started before the sequential command finished")
		}
	}
}

func TestStopSequentialUnblocksQueue(t *testing.T) {
	s := testSpawner(t, 10, 10, nil)

	s.SpawnSequential(typeCube, 10, 10.0)
	s.SpawnImmediate(typeSphere, 1)

	s.Update(1.0) // one cube spawned
	before := s.SpawnedCount()
	s.StopSequential()

	if s.SpawnedCount() != before {
		t.Error("stop must not recall already-spawned instances")
	}

	s.Update(0.016)
	found := false
	for _, g := range s.SpawnedObjects() {
		if g.Name == "sphere" {
			found = true
		}
	}
	if !found {
		t.Error("queue did not unblock after stop")
	}
}

func TestRecallAll(t *testing.T) {
	s := testSpawner(t, 10, 0, nil)
	s.SpawnImmediate(typeCube, 7)
	s.Update(0.016)

	if n := s.RecallAll(); n != 7 {
		t.Errorf("RecallAll returned %d, expected 7", n)
	}
	if s.SpawnedCount() != 0 {
		t.Errorf("spawned count %d after recall all", s.SpawnedCount())
	}
	if s.Pool().FreeCount(typeCube) != 10 {
		t.Errorf("free count %d after recall all", s.Pool().FreeCount(typeCube))
	}
}

func TestRecallLatestClampsToActiveCount(t *testing.T) {
	s := testSpawner(t, 10, 0, nil)
	s.SpawnImmediate(typeCube, 3)
	s.Update(0.016)

	if n := s.RecallLatest(99); n != 3 {
		t.Errorf("RecallLatest(99) returned %d, expected 3", n)
	}
	if s.SpawnedCount() != 0 {
		t.Error("active set not emptied")
	}
}

func TestRecallLatestRemovesNewestFirst(t *testing.T) {
	s := testSpawner(t, 10, 10, nil)
	s.SpawnImmediate(typeCube, 2)
	s.Update(0.016)
	s.SpawnImmediate(typeSphere, 1)
	s.Update(0.016)

	s.RecallLatest(1)
	for _, g := range s.SpawnedObjects() {
		if g.Name == "sphere" {
			t.Error("recall latest removed an older instance instead of the newest")
		}
	}
}

func TestSpawnExhaustedPoolSkipsSilently(t *testing.T) {
	rec := &logging.Recorder{}
	s := testSpawner(t, 2, 0, rec)

	s.SpawnImmediate(typeCube, 5)
	s.Update(0.016)

	if s.SpawnedCount() != 2 {
		t.Errorf("expected 2 realized spawns, got %d", s.SpawnedCount())
	}
	if rec.Count(logging.LevelError, "pool.exhausted") != 3 {
		t.Errorf("expected 3 exhaustion logs, got %d", rec.Count(logging.LevelError, "pool.exhausted"))
	}
}

func TestForceWhenEmptyRecycles(t *testing.T) {
	s := testSpawner(t, 2, 0, nil)
	s.ForceWhenEmpty = true

	s.SpawnImmediate(typeCube, 5)
	s.Update(0.016)

	if s.SpawnedCount() != 2 {
		t.Errorf("forced spawning should keep active count at capacity, got %d", s.SpawnedCount())
	}
}

func TestInvalidCommandsRejected(t *testing.T) {
	rec := &logging.Recorder{}
	s := testSpawner(t, 5, 0, rec)

	cases := []struct {
		name string
		ok   bool
	}{
		{"zero count", s.SpawnImmediate(typeCube, 0)},
		{"unset type", s.SpawnImmediate(TypeNone, 1)},
		{"unpooled type", s.SpawnImmediate(ObjectType(99), 1)},
		{"zero duration", s.SpawnSequential(typeCube, 3, 0)},
		{"mismatched arrays", s.SpawnMixedImmediate([]ObjectType{typeCube}, []int{1, 2})},
		{"empty arrays", s.SpawnMixedImmediate(nil, nil)},
	}
	for _, tc := range cases {
		if tc.ok {
			t.Errorf("%s: command was accepted", tc.name)
		}
	}

	s.Update(0.016)
	if s.SpawnedCount() != 0 {
		t.Error("rejected commands must never execute")
	}
	if rec.Count(logging.LevelError, "spawn.invalid_command") != len(cases) {
		t.Errorf("expected %d invalid-command logs, got %d", len(cases), rec.Count(logging.LevelError, "spawn.invalid_command"))
	}
}

func TestSpawnWeightedImmediate(t *testing.T) {
	s := testSpawner(t, 20, 20, nil)

	ok := s.SpawnWeightedImmediate(10, []WeightEntry{
		{Type: typeCube, Weight: 0.7},
		{Type: typeSphere, Weight: 0.3},
	})
	if !ok {
		t.Fatal("valid weighted command rejected")
	}
	s.Update(0.016)

	cubes, spheres := 0, 0
	for _, g := range s.SpawnedObjects() {
		switch g.Name {
		case "cube":
			cubes++
		case "sphere":
			spheres++
		}
	}
	if cubes != 7 || spheres != 3 {
		t.Errorf("expected 7 cubes / 3 spheres, got %d / %d", cubes, spheres)
	}
}

func TestSpawnWeightedZeroTotalIsNoOp(t *testing.T) {
	s := testSpawner(t, 5, 0, nil)
	if !s.SpawnWeightedImmediate(0, []WeightEntry{{Type: typeCube, Weight: 1}}) {
		t.Error("zero total should be accepted as a no-op")
	}
	s.Update(0.016)
	if s.SpawnedCount() != 0 || s.IsSpawning() {
		t.Error("zero total spawned something")
	}
}

func TestSequentialMixedShuffleIsDeterministic(t *testing.T) {
	run := func() []string {
		s := testSpawner(t, 10, 10, nil)
		s.SpawnMixedSequential([]ObjectType{typeCube, typeSphere}, []int{3, 3}, 0.6)
		for i := 0; i < 20 && s.IsSpawning(); i++ {
			s.Update(0.1)
		}
		var names []string
		for _, g := range s.SpawnedObjects() {
			names = append(names, g.Name)
		}
		return names
	}

	a, b := run(), run()
	if len(a) != 6 || len(b) != 6 {
		t.Fatalf("expected 6 spawns per run, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("same seed produced different spawn orders")
		}
	}
}
