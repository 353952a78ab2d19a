package spawn

import (
	"testing"

	"proto3d/internal/engine"
	"proto3d/internal/logging"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func testPool(t *testing.T, count int, sink logging.Sink) *TypedPool {
	t.Helper()
	pool := NewTypedPool([]PoolEntry{
		{Type: 1, Count: count, Prefab: func() *engine.GameObject { return engine.NewGameObject("cube") }},
	}, sink)
	if err := pool.Initialize(nil); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return pool
}

func TestPoolAcquireRelease(t *testing.T) {
	pool := testPool(t, 3, nil)

	g := pool.Acquire(1, rl.Vector3{X: 1, Y: 2, Z: 3}, rl.Vector3{}, false)
	if g == nil {
		t.Fatal("acquire returned nil with free instances available")
	}
	if !g.Active {
		t.Error("acquired instance should be active")
	}
	if g.Transform.Position.X != 1 || g.Transform.Position.Y != 2 {
		t.Errorf("acquired instance not moved to pose, got %v", g.Transform.Position)
	}
	if pool.FreeCount(1) != 2 || pool.ActiveCount(1) != 1 {
		t.Errorf("free=%d active=%d after one acquire", pool.FreeCount(1), pool.ActiveCount(1))
	}

	if !pool.Release(g) {
		t.Error("release of active instance failed")
	}
	if g.Active {
		t.Error("released instance should be inactive")
	}
	if pool.FreeCount(1) != 3 || pool.ActiveCount(1) != 0 {
		t.Errorf("free=%d active=%d after release", pool.FreeCount(1), pool.ActiveCount(1))
	}
}

func TestPoolExhaustion(t *testing.T) {
	rec := &logging.Recorder{}
	pool := testPool(t, 2, rec)

	pool.Acquire(1, rl.Vector3{}, rl.Vector3{}, false)
	pool.Acquire(1, rl.Vector3{}, rl.Vector3{}, false)

	if g := pool.Acquire(1, rl.Vector3{}, rl.Vector3{}, false); g != nil {
		t.Error("acquire beyond capacity without force should fail")
	}
	if rec.Count(logging.LevelError, "pool.exhausted") != 1 {
		t.Error("exhaustion was not logged")
	}
}

func TestPoolForceRecyclesOldestActive(t *testing.T) {
	pool := testPool(t, 2, nil)

	first := pool.Acquire(1, rl.Vector3{}, rl.Vector3{}, false)
	pool.Acquire(1, rl.Vector3{}, rl.Vector3{}, false)

	g := pool.Acquire(1, rl.Vector3{X: 9}, rl.Vector3{}, true)
	if g != first {
		t.Error("force acquire should recycle the oldest active instance")
	}
	if g.Transform.Position.X != 9 {
		t.Error("recycled instance not moved to the new pose")
	}
	if pool.ActiveCount(1) != 2 {
		t.Errorf("active count %d after forced recycle", pool.ActiveCount(1))
	}
}

func TestPoolReleaseForeignIsNoOp(t *testing.T) {
	rec := &logging.Recorder{}
	pool := testPool(t, 1, rec)

	if pool.Release(engine.NewGameObject("stranger")) {
		t.Error("release of a foreign object should fail")
	}
	if pool.Release(nil) {
		t.Error("release of nil should fail")
	}

	g := pool.Acquire(1, rl.Vector3{}, rl.Vector3{}, false)
	pool.Release(g)
	if pool.Release(g) {
		t.Error("double release should fail")
	}

	if rec.Count(logging.LevelWarning, "pool.release_invalid") != 3 {
		t.Errorf("expected 3 release warnings, got %d", rec.Count(logging.LevelWarning, "pool.release_invalid"))
	}
}

func TestPoolInitializeValidation(t *testing.T) {
	bad := NewTypedPool([]PoolEntry{{Type: TypeNone, Count: 1, Prefab: func() *engine.GameObject { return engine.NewGameObject("x") }}}, nil)
	if err := bad.Initialize(nil); err == nil {
		t.Error("pool entry with unset type should fail to initialize")
	}

	pool := testPool(t, 1, nil)
	if err := pool.Initialize(nil); err == nil {
		t.Error("second Initialize should fail")
	}
}
