package field

import (
	"math/rand"

	"github.com/vovakirdan/typejump/internal/config"
	"github.com/vovakirdan/typejump/internal/core"
)

// Gate assigns unlock letters to new platforms. A manager without a gate
// creates every platform already Active.
type Gate interface {
	AssignLetter(p *Platform) rune
	RemovePlatform(p *Platform)
}

// Listener is told about platforms entering and leaving the field, so that a
// physics world can mirror them.
type Listener interface {
	PlatformCreated(p *Platform)
	PlatformRetired(p *Platform)
}

// Reach returns the widest edge-to-edge horizontal gap the player can clear
// when jumping onto a platform rise units higher. A nil Reach places
// platforms anywhere in the spawn range.
type Reach func(rise float64) float64

// reachSafety keeps generated gaps inside the ideal arc, which assumes a
// perfectly timed run-up.
const reachSafety = 0.8

// ReachFrom derives the generator's reach from the player's movement at
// the given tick rate.
func ReachFrom(phys config.PhysicsConfig, tickRate int) Reach {
	return func(rise float64) float64 {
		return reachSafety * phys.HorizontalReach(rise, tickRate)
	}
}

// UpdateResult reports what one Update call changed.
type UpdateResult struct {
	Created *Platform // nil when no platform was generated
	Retired []Handle
}

type slot struct {
	gen      uint32
	platform *Platform // nil while the slot is free
}

// Manager owns the live platforms. Retired slots go on a free list and are
// reused with a bumped generation, so memory stays bounded by the number of
// platforms alive at once.
type Manager struct {
	cfg      config.FieldConfig
	minX     float64
	maxX     float64
	rng      *rand.Rand
	reach    Reach
	gate     Gate
	listener Listener

	slots    []slot
	free     []uint32
	live     int
	frontier float64

	// Horizontal extent of the highest platform, the one the next is
	// generated from.
	topLeft, topRight float64
	hasTop            bool
}

// NewManager creates an empty field. worldWidth bounds platform extents
// horizontally; reach keeps each new platform within a jump of the one
// below it; gate may be nil for an ungated run.
func NewManager(cfg config.FieldConfig, worldWidth float64, reach Reach, rng *rand.Rand, gate Gate) *Manager {
	return &Manager{
		cfg:      cfg,
		minX:     0,
		maxX:     worldWidth,
		rng:      rng,
		reach:    reach,
		gate:     gate,
		slots:    make([]slot, 0, cfg.InitialCount+8),
		frontier: cfg.StartY,
	}
}

// SetListener registers the observer of platform lifecycle changes.
func (m *Manager) SetListener(l Listener) {
	m.listener = l
}

// Gated reports whether platforms need a letter to become solid.
func (m *Manager) Gated() bool {
	return m.gate != nil
}

// CreateInitialPlatforms seeds the field: the start platform under the
// player, then InitialCount platforms stepping upward at InitialStride.
// The start platform is always Active, so a run never opens with a fall.
func (m *Manager) CreateInitialPlatforms() {
	m.add(m.cfg.StartX, m.cfg.StartY, m.cfg.StartWidth, nil)
	for i := 1; i <= m.cfg.InitialCount; i++ {
		y := m.cfg.StartY - float64(i)*m.cfg.InitialStride
		width := m.between(m.cfg.InitialMinWidth, m.cfg.InitialMaxWidth)
		x := m.nextX(width, m.cfg.InitialStride)
		m.CreatePlatform(x, y, width)
	}
}

// CreatePlatform adds a platform centred at (x, y). The platform is clamped
// to the horizontal world bounds. With a gate it starts Inactive with a
// letter; without one it starts Active.
func (m *Manager) CreatePlatform(x, y, width float64) *Platform {
	return m.add(x, y, width, m.gate)
}

func (m *Manager) add(x, y, width float64, gate Gate) *Platform {
	width = core.ClampF(width, 1, m.maxX-m.minX)
	half := width / 2
	x = core.ClampF(x, m.minX+half, m.maxX-half)

	p := &Platform{
		X:      x,
		Y:      y,
		Width:  width,
		Height: m.cfg.PlatformHeight,
	}
	p.handle = m.alloc(p)
	m.live++

	if gate != nil {
		gate.AssignLetter(p)
	} else {
		p.Activate()
	}

	if !m.hasTop || y < m.frontier {
		m.frontier = y
		box := p.Box()
		m.topLeft, m.topRight = box.Left(), box.Right()
		m.hasTop = true
	}
	if m.listener != nil {
		m.listener.PlatformCreated(p)
	}
	return p
}

// Update generates at most one platform above the frontier when the camera
// has come within the generation margin of it, then retires every platform
// lying more than the retire margin below the camera.
func (m *Manager) Update(cameraY float64) UpdateResult {
	var res UpdateResult

	if m.frontier > cameraY-m.cfg.GenerationMargin {
		stride := m.between(m.cfg.MinStride, m.cfg.MaxStride)
		width := m.between(m.cfg.MinWidth, m.cfg.MaxWidth)
		x := m.nextX(width, stride)
		res.Created = m.CreatePlatform(x, m.frontier-stride, width)
	}

	cutoff := cameraY + m.cfg.RetireMargin
	for i := range m.slots {
		p := m.slots[i].platform
		if p == nil || p.Y <= cutoff {
			continue
		}
		m.retire(uint32(i))
		res.Retired = append(res.Retired, p.handle)
	}
	return res
}

// Lookup resolves a handle to its platform. Retired handles fail.
func (m *Manager) Lookup(h Handle) (*Platform, bool) {
	if h.IsZero() || int(h.index) >= len(m.slots) {
		return nil, false
	}
	s := m.slots[h.index]
	if s.gen != h.gen || s.platform == nil {
		return nil, false
	}
	return s.platform, true
}

// Live returns the live platforms in slot order.
func (m *Manager) Live() []*Platform {
	out := make([]*Platform, 0, m.live)
	for _, s := range m.slots {
		if s.platform != nil {
			out = append(out, s.platform)
		}
	}
	return out
}

// Count returns the number of live platforms.
func (m *Manager) Count() int {
	return m.live
}

// Frontier returns the y-coordinate of the highest platform ever created.
func (m *Manager) Frontier() float64 {
	return m.frontier
}

func (m *Manager) alloc(p *Platform) Handle {
	var idx uint32
	if n := len(m.free); n > 0 {
		idx = m.free[n-1]
		m.free = m.free[:n-1]
	} else {
		idx = uint32(len(m.slots))
		m.slots = append(m.slots, slot{})
	}
	s := &m.slots[idx]
	s.gen++
	s.platform = p
	return Handle{index: idx, gen: s.gen}
}

func (m *Manager) retire(idx uint32) {
	p := m.slots[idx].platform
	m.slots[idx].platform = nil
	m.free = append(m.free, idx)
	m.live--

	if m.gate != nil {
		m.gate.RemovePlatform(p)
	}
	if m.listener != nil {
		m.listener.PlatformRetired(p)
	}
}

// nextX picks the centre of a platform stride units above the current top
// so that the gap between their edges stays within reach. World clamping
// in add only ever moves a platform towards the top one's side.
func (m *Manager) nextX(width, stride float64) float64 {
	lo, hi := m.cfg.SpawnMinX, m.cfg.SpawnMaxX
	if m.reach == nil || !m.hasTop {
		return m.between(lo, hi)
	}

	gap := max(m.reach(stride), 0)
	nearLo := m.topLeft - gap - width/2
	nearHi := m.topRight + gap + width/2
	if nearLo > hi || nearHi < lo {
		return m.between(nearLo, nearHi)
	}
	return m.between(max(lo, nearLo), min(hi, nearHi))
}

func (m *Manager) between(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + m.rng.Float64()*(hi-lo)
}
