package session

import (
	"errors"
	"sync"

	"github.com/yukikurage/collab-dashboard-api/internal/dto"
)

var (
	// ErrStaleReference is returned when a patch or delete names an entity id
	// that does not match the one currently held by the snapshot.
	ErrStaleReference = errors.New("session store: held entity does not match the given id")
	// ErrNotHydrated is returned when a mutation arrives before hydration completed.
	ErrNotHydrated = errors.New("session store: snapshot is not hydrated")
	// ErrIncompleteSnapshot is returned when hydration finishes without all four reads.
	ErrIncompleteSnapshot = errors.New("session store: hydration did not populate all entities")
	// ErrUnknownPanel is returned for a panel name the dashboard does not have.
	ErrUnknownPanel = errors.New("session store: unknown panel")
	// ErrUnknownPatchKey is returned for a member patch key that is not supported.
	ErrUnknownPatchKey = errors.New("session store: unknown patch key")
)

// State tracks the snapshot lifecycle. Derivations are refused until the
// snapshot is ready, so stale data from a previously viewed project can never
// leak into a render.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateHydrating     State = "hydrating"
	StateReady         State = "ready"
)

// Panel identifies one of the independent dashboard panels.
type Panel string

const (
	PanelSidebar    Panel = "sidebar"
	PanelOptions    Panel = "options"
	PanelCreateTask Panel = "create_task"
	PanelCopyCode   Panel = "copy_code"
)

// Patch is a targeted mutation of a held entity: {id, key, value}.
type Patch struct {
	ID    uint64 `json:"id"`
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Snapshot is the per-session dashboard cache: current user, member, project
// and message list, plus panel visibility. It is a read-through copy, rebuilt
// from the store of record on every dashboard load.
type Snapshot struct {
	mu sync.Mutex

	state    State
	user     *dto.UserVM
	member   *dto.MemberVM
	project  *dto.ProjectVM
	messages []dto.MessageVM
	panels   map[Panel]bool
}

func newSnapshot() *Snapshot {
	return &Snapshot{
		state:  StateUninitialized,
		panels: make(map[Panel]bool),
	}
}

// BeginHydration drops any previously held entities and moves the snapshot
// into the hydrating state. Panel visibility resets with it.
func (s *Snapshot) BeginHydration() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateHydrating
	s.user = nil
	s.member = nil
	s.project = nil
	s.messages = nil
	s.panels = make(map[Panel]bool)
}

// ReadUser replaces the held user wholesale. Last write wins.
func (s *Snapshot) ReadUser(user dto.UserVM) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
}

// ReadMember replaces the held member wholesale.
func (s *Snapshot) ReadMember(member dto.MemberVM) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.member = &member
}

// ReadProject replaces the held project wholesale.
func (s *Snapshot) ReadProject(project dto.ProjectVM) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project = &project
}

// ReadMessages replaces the held message list wholesale.
func (s *Snapshot) ReadMessages(messages []dto.MessageVM) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = messages
}

// CompleteHydration verifies the four reads happened and that the held project
// matches the held member's project, then marks the snapshot ready.
func (s *Snapshot) CompleteHydration() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil || s.member == nil || s.project == nil || s.messages == nil {
		s.state = StateUninitialized
		return ErrIncompleteSnapshot
	}
	if s.member.ProjectID != s.project.ID {
		s.state = StateUninitialized
		return ErrStaleReference
	}

	s.state = StateReady
	return nil
}

// UpdateMember applies a targeted patch to the held member. The patch id must
// match the held member's id.
func (s *Snapshot) UpdateMember(patch Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady || s.member == nil {
		return ErrNotHydrated
	}
	if s.member.ID != patch.ID {
		return ErrStaleReference
	}

	switch patch.Key {
	case "active":
		active, ok := patch.Value.(bool)
		if !ok {
			return ErrUnknownPatchKey
		}
		s.member.Active = active
	default:
		return ErrUnknownPatchKey
	}

	return nil
}

// DeleteProject clears the held project. The id must match the held project.
func (s *Snapshot) DeleteProject(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady || s.project == nil {
		return ErrNotHydrated
	}
	if s.project.ID != id {
		return ErrStaleReference
	}

	s.project = nil
	s.messages = nil
	s.state = StateUninitialized
	return nil
}

// TogglePanel flips the visibility of a panel and returns the new value.
// Closing the options submenu also closes the copy-code modal nested in it;
// the other panels stay independent.
func (s *Snapshot) TogglePanel(panel Panel) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch panel {
	case PanelSidebar, PanelOptions, PanelCreateTask, PanelCopyCode:
	default:
		return false, ErrUnknownPanel
	}

	open := !s.panels[panel]
	s.panels[panel] = open

	if panel == PanelOptions && !open {
		s.panels[PanelCopyCode] = false
	}

	return open, nil
}

// Panels returns a copy of the current panel visibility.
func (s *Snapshot) Panels() map[Panel]bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[Panel]bool, len(s.panels))
	for panel, open := range s.panels {
		out[panel] = open
	}
	return out
}

// State returns the snapshot lifecycle state.
func (s *Snapshot) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns a copy of the held user.
func (s *Snapshot) User() (dto.UserVM, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return dto.UserVM{}, false
	}
	return *s.user, true
}

// Member returns a copy of the held member.
func (s *Snapshot) Member() (dto.MemberVM, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.member == nil {
		return dto.MemberVM{}, false
	}
	return *s.member, true
}

// Project returns a copy of the held project.
func (s *Snapshot) Project() (dto.ProjectVM, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil {
		return dto.ProjectVM{}, false
	}
	return *s.project, true
}

// Messages returns the held message list.
func (s *Snapshot) Messages() []dto.MessageVM {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messages
}

// Store keeps one Snapshot per browsing session, keyed by session ID. Each
// session owns its snapshot; the registry lock only guards the map.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]*Snapshot
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		snapshots: make(map[string]*Snapshot),
	}
}

// Get returns the snapshot for a session, creating it on first use.
func (s *Store) Get(sessionID string) *Snapshot {
	s.mu.RLock()
	snap, ok := s.snapshots[sessionID]
	s.mu.RUnlock()
	if ok {
		return snap
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if snap, ok := s.snapshots[sessionID]; ok {
		return snap
	}
	snap = newSnapshot()
	s.snapshots[sessionID] = snap
	return snap
}

// Drop removes a session's snapshot, e.g. on logout.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, sessionID)
}
