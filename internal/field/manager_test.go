package field

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/vovakirdan/typejump/internal/config"
)

type fakeGate struct {
	assigned int
	removed  []Handle
}

func (g *fakeGate) AssignLetter(p *Platform) rune {
	g.assigned++
	p.SetLetter('A')
	return 'A'
}

func (g *fakeGate) RemovePlatform(p *Platform) {
	g.removed = append(g.removed, p.Handle())
}

type recordingListener struct {
	created, retired int
}

func (l *recordingListener) PlatformCreated(*Platform) { l.created++ }
func (l *recordingListener) PlatformRetired(*Platform) { l.retired++ }

func newTestManager(gate Gate) *Manager {
	cfg := config.DefaultGameConfig()
	return NewManager(cfg.Field, cfg.World.Width, ReachFrom(cfg.Physics, config.DefaultTickRate), rand.New(rand.NewSource(42)), gate)
}

func TestCreateInitialPlatforms(t *testing.T) {
	m := newTestManager(nil)
	m.CreateInitialPlatforms()

	if m.Count() != 21 {
		t.Fatalf("Count() = %d, expected 21", m.Count())
	}

	live := m.Live()
	start := live[0]
	if start.X != 400 || start.Y != 550 || start.Width != 200 {
		t.Errorf("start platform = (%v, %v, w=%v), expected (400, 550, w=200)", start.X, start.Y, start.Width)
	}

	for i, p := range live[1:] {
		wantY := 550 - float64(i+1)*70
		if p.Y != wantY {
			t.Errorf("platform %d y = %v, expected %v", i+1, p.Y, wantY)
		}
		if p.X < 100 || p.X > 700 {
			t.Errorf("platform %d x = %v, expected within [100, 700]", i+1, p.X)
		}
		if p.Width < 140 || p.Width > 200 {
			t.Errorf("platform %d width = %v, expected within [140, 200]", i+1, p.Width)
		}
	}

	if m.Frontier() != 550-20*70 {
		t.Errorf("Frontier() = %v, expected %v", m.Frontier(), 550-20*70)
	}
}

func TestUngatedPlatformsStartActive(t *testing.T) {
	m := newTestManager(nil)
	m.CreateInitialPlatforms()

	for _, p := range m.Live() {
		if !p.Active() {
			t.Fatalf("%v should be Active in an ungated field", p.Handle())
		}
		if _, ok := p.Letter(); ok {
			t.Fatalf("%v should have no letter in an ungated field", p.Handle())
		}
	}
}

func TestGatedPlatformsDelegateToGate(t *testing.T) {
	gate := &fakeGate{}
	m := newTestManager(gate)
	m.CreateInitialPlatforms()

	if gate.assigned != m.Count()-1 {
		t.Errorf("gate assigned %d letters, expected %d", gate.assigned, m.Count()-1)
	}
	live := m.Live()
	if !live[0].Active() {
		t.Error("start platform should be Active even in a gated field")
	}
	for _, p := range live[1:] {
		if p.Active() {
			t.Fatalf("%v should start Inactive in a gated field", p.Handle())
		}
	}
}

func TestCreatePlatformClamps(t *testing.T) {
	tests := []struct {
		name      string
		x, width  float64
		wantX     float64
		wantWidth float64
	}{
		{"inside", 400, 100, 400, 100},
		{"left edge", 10, 200, 100, 200},
		{"right edge", 790, 200, 700, 200},
		{"wider than world", 100, 1000, 400, 800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(nil)
			p := m.CreatePlatform(tt.x, 100, tt.width)

			if p.X != tt.wantX || p.Width != tt.wantWidth {
				t.Errorf("platform = (x=%v, w=%v), expected (x=%v, w=%v)", p.X, p.Width, tt.wantX, tt.wantWidth)
			}
			if p.Height != 32 {
				t.Errorf("Height = %v, expected 32", p.Height)
			}
		})
	}
}

func TestFrontierTracksHighestPlatform(t *testing.T) {
	m := newTestManager(nil)

	m.CreatePlatform(400, 300, 100)
	m.CreatePlatform(400, 400, 100) // Lower, frontier unchanged

	if m.Frontier() != 300 {
		t.Errorf("Frontier() = %v, expected 300", m.Frontier())
	}
}

func TestUpdateGeneratesOnePlatformPerTick(t *testing.T) {
	m := newTestManager(nil)
	m.CreateInitialPlatforms()
	frontier := m.Frontier() // -850

	// Camera far away from the frontier: nothing to generate
	res := m.Update(0)
	if res.Created != nil {
		t.Fatal("Update() should not generate while the frontier is beyond the margin")
	}

	// Camera close to the frontier: exactly one platform per call
	res = m.Update(frontier + 100)
	if res.Created == nil {
		t.Fatal("Update() should generate when the frontier is within the margin")
	}
	stride := frontier - res.Created.Y
	if stride < 60 || stride > 90 {
		t.Errorf("stride = %v, expected within [60, 90]", stride)
	}
	if res.Created.Width < 120 || res.Created.Width > 200 {
		t.Errorf("width = %v, expected within [120, 200]", res.Created.Width)
	}
	if m.Frontier() != res.Created.Y {
		t.Errorf("Frontier() = %v, expected %v", m.Frontier(), res.Created.Y)
	}
}

func TestUpdateRetiresBelowCamera(t *testing.T) {
	gate := &fakeGate{}
	listener := &recordingListener{}
	m := newTestManager(gate)
	m.SetListener(listener)

	low := m.CreatePlatform(400, 1000, 100)
	high := m.CreatePlatform(400, 100, 100)

	res := m.Update(100) // Retire everything below y=900

	if len(res.Retired) != 1 || res.Retired[0] != low.Handle() {
		t.Fatalf("Retired = %v, expected [%v]", res.Retired, low.Handle())
	}
	if _, ok := m.Lookup(low.Handle()); ok {
		t.Error("Lookup() should fail for a retired platform")
	}
	if _, ok := m.Lookup(high.Handle()); !ok {
		t.Error("Lookup() should succeed for a live platform")
	}
	if len(gate.removed) != 1 || gate.removed[0] != low.Handle() {
		t.Errorf("gate.RemovePlatform called with %v, expected [%v]", gate.removed, low.Handle())
	}
	if listener.retired != 1 {
		t.Errorf("listener saw %d retirements, expected 1", listener.retired)
	}
}

func TestRetiredSlotReuseKeepsOldHandleStale(t *testing.T) {
	m := newTestManager(nil)

	old := m.CreatePlatform(400, 2000, 100)
	m.Update(0)

	fresh := m.CreatePlatform(400, 0, 100)
	if fresh.Handle() == old.Handle() {
		t.Fatal("reused slot should get a new handle")
	}
	if _, ok := m.Lookup(old.Handle()); ok {
		t.Error("stale handle resolved after slot reuse")
	}
	if p, ok := m.Lookup(fresh.Handle()); !ok || p != fresh {
		t.Error("fresh handle should resolve to the new platform")
	}
	if (Handle{}).IsZero() != true {
		t.Error("zero Handle should report IsZero")
	}
	if _, ok := m.Lookup(Handle{}); ok {
		t.Error("zero Handle should never resolve")
	}
}

// Sweeps the camera upward for a long run and checks the field stays
// reachable, vertically and sideways, and bounded.
func TestEndlessClimbKeepsFieldReachableAndBounded(t *testing.T) {
	cfg := config.DefaultGameConfig()
	listener := &recordingListener{}
	reach := ReachFrom(cfg.Physics, config.DefaultTickRate)
	m := NewManager(cfg.Field, cfg.World.Width, reach, rand.New(rand.NewSource(7)), nil)
	m.SetListener(listener)
	m.CreateInitialPlatforms()

	// Each platform must be within a jump, sideways too, of the one below
	top := m.Live()[0].Box()
	checkReach := func(label string, p *Platform) {
		t.Helper()
		box := p.Box()
		rise := top.CY - box.CY
		gap := max(box.Left()-top.Right(), top.Left()-box.Right())
		if limit := reach(rise); gap > limit+1e-9 {
			t.Fatalf("%s: edge gap %.1f to the platform %.0f below exceeds reach %.1f", label, gap, rise, limit)
		}
		top = box
	}
	for i, p := range m.Live()[1:] {
		checkReach(fmt.Sprintf("initial platform %d", i+1), p)
	}

	maxGap := cfg.Field.MaxStride
	if cfg.Field.InitialStride > maxGap {
		maxGap = cfg.Field.InitialStride
	}

	cameraY := 0.0
	maxLive := 0
	for tick := 0; tick < 20000; tick++ {
		cameraY -= 2.5
		res := m.Update(cameraY)

		if res.Created != nil {
			checkReach(fmt.Sprintf("tick %d", tick), res.Created)
			lowest := cameraY - cfg.Field.GenerationMargin - cfg.Field.MaxStride
			if res.Created.Y < lowest {
				t.Fatalf("tick %d: generated at %v, above %v", tick, res.Created.Y, lowest)
			}
		}
		if m.Count() > maxLive {
			maxLive = m.Count()
		}

		ys := make([]float64, 0, m.Count())
		for _, p := range m.Live() {
			ys = append(ys, p.Y)
		}
		sort.Float64s(ys)
		for i := 1; i < len(ys); i++ {
			if gap := ys[i] - ys[i-1]; gap > maxGap+1e-9 {
				t.Fatalf("tick %d: gap %v between platforms exceeds %v", tick, gap, maxGap)
			}
		}
	}

	if maxLive > 30 {
		t.Errorf("live count peaked at %d, expected the field to stay bounded", maxLive)
	}
	// One extra slot: a tick allocates before it retires
	if len(m.slots) > maxLive+1 {
		t.Errorf("arena grew to %d slots for at most %d live platforms", len(m.slots), maxLive)
	}
	if listener.created-listener.retired != m.Count() {
		t.Errorf("listener saw %d created and %d retired, expected net %d", listener.created, listener.retired, m.Count())
	}
}

func TestPlatformActivateIsIrreversible(t *testing.T) {
	p := &Platform{}

	if p.Active() {
		t.Fatal("zero Platform should be Inactive")
	}
	if !p.Activate() {
		t.Error("first Activate() should report a change")
	}
	if p.Activate() {
		t.Error("second Activate() should report no change")
	}

	p.SetLetter('Q')
	if !p.Active() {
		t.Error("SetLetter() must not demote an Active platform")
	}
	if p.State().String() != "active" {
		t.Errorf("State().String() = %q, expected active", p.State().String())
	}
}

func TestZeroReachStacksPlatforms(t *testing.T) {
	cfg := config.DefaultGameConfig()
	noReach := func(float64) float64 { return 0 }
	m := NewManager(cfg.Field, cfg.World.Width, noReach, rand.New(rand.NewSource(3)), nil)
	m.CreateInitialPlatforms()

	live := m.Live()
	for cameraY := 0.0; cameraY > -3000; cameraY -= 5 {
		if res := m.Update(cameraY); res.Created != nil {
			live = append(live, res.Created)
		}
	}

	for i := 1; i < len(live); i++ {
		below, above := live[i-1].Box(), live[i].Box()
		if gap := max(above.Left()-below.Right(), below.Left()-above.Right()); gap > 1e-9 {
			t.Fatalf("platform %d [%.0f, %.0f] leaves a gap to the one below [%.0f, %.0f]",
				i, above.Left(), above.Right(), below.Left(), below.Right())
		}
	}
}
