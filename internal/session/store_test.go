package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/collab-dashboard-api/internal/dto"
)

func hydratedSnapshot(t *testing.T) *Snapshot {
	t.Helper()

	snap := newSnapshot()
	snap.BeginHydration()
	snap.ReadUser(dto.UserVM{ID: 1, FirstName: "ada", LastName: "lovelace"})
	snap.ReadMember(dto.MemberVM{ID: 10, UserID: 1, ProjectID: 100, Active: true})
	snap.ReadProject(dto.ProjectVM{ID: 100, Name: "Apollo"})
	snap.ReadMessages([]dto.MessageVM{})
	assert.NoError(t, snap.CompleteHydration())
	return snap
}

func TestSnapshot_HydrationLifecycle(t *testing.T) {
	snap := newSnapshot()
	assert.Equal(t, StateUninitialized, snap.State())

	snap.BeginHydration()
	assert.Equal(t, StateHydrating, snap.State())

	snap.ReadUser(dto.UserVM{ID: 1})
	snap.ReadMember(dto.MemberVM{ID: 10, ProjectID: 100})
	snap.ReadProject(dto.ProjectVM{ID: 100})
	snap.ReadMessages([]dto.MessageVM{})

	assert.NoError(t, snap.CompleteHydration())
	assert.Equal(t, StateReady, snap.State())
}

func TestSnapshot_IncompleteHydration(t *testing.T) {
	snap := newSnapshot()
	snap.BeginHydration()
	snap.ReadUser(dto.UserVM{ID: 1})

	assert.ErrorIs(t, snap.CompleteHydration(), ErrIncompleteSnapshot)
	assert.Equal(t, StateUninitialized, snap.State())
}

func TestSnapshot_HydrationRouteMismatch(t *testing.T) {
	snap := newSnapshot()
	snap.BeginHydration()
	snap.ReadUser(dto.UserVM{ID: 1})
	snap.ReadMember(dto.MemberVM{ID: 10, ProjectID: 100})
	// Project left over from a different route
	snap.ReadProject(dto.ProjectVM{ID: 200})
	snap.ReadMessages([]dto.MessageVM{})

	assert.ErrorIs(t, snap.CompleteHydration(), ErrStaleReference)
}

func TestSnapshot_ReadReplacesWholesale(t *testing.T) {
	snap := hydratedSnapshot(t)

	snap.ReadProject(dto.ProjectVM{ID: 100, Name: "Apollo Renamed"})

	project, ok := snap.Project()
	assert.True(t, ok)
	assert.Equal(t, "Apollo Renamed", project.Name)
	assert.Empty(t, project.Description)
}

func TestSnapshot_UpdateMemberActive(t *testing.T) {
	snap := hydratedSnapshot(t)

	err := snap.UpdateMember(Patch{ID: 10, Key: "active", Value: false})
	assert.NoError(t, err)

	member, ok := snap.Member()
	assert.True(t, ok)
	assert.False(t, member.Active)
}

func TestSnapshot_UpdateMemberWrongID(t *testing.T) {
	snap := hydratedSnapshot(t)

	err := snap.UpdateMember(Patch{ID: 99, Key: "active", Value: false})
	assert.ErrorIs(t, err, ErrStaleReference)

	member, _ := snap.Member()
	assert.True(t, member.Active)
}

func TestSnapshot_UpdateMemberUnknownKey(t *testing.T) {
	snap := hydratedSnapshot(t)

	err := snap.UpdateMember(Patch{ID: 10, Key: "nickname", Value: "al"})
	assert.ErrorIs(t, err, ErrUnknownPatchKey)
}

func TestSnapshot_UpdateBeforeHydration(t *testing.T) {
	snap := newSnapshot()

	err := snap.UpdateMember(Patch{ID: 10, Key: "active", Value: false})
	assert.ErrorIs(t, err, ErrNotHydrated)
}

func TestSnapshot_DeleteProject(t *testing.T) {
	snap := hydratedSnapshot(t)

	assert.NoError(t, snap.DeleteProject(100))

	_, ok := snap.Project()
	assert.False(t, ok)
	assert.Equal(t, StateUninitialized, snap.State())
}

func TestSnapshot_DeleteProjectWrongID(t *testing.T) {
	snap := hydratedSnapshot(t)

	assert.ErrorIs(t, snap.DeleteProject(999), ErrStaleReference)

	// The held project is untouched
	project, ok := snap.Project()
	assert.True(t, ok)
	assert.Equal(t, uint64(100), project.ID)
	assert.Equal(t, StateReady, snap.State())
}

func TestSnapshot_TogglePanelTwiceRestoresClosed(t *testing.T) {
	snap := newSnapshot()

	open, err := snap.TogglePanel(PanelOptions)
	assert.NoError(t, err)
	assert.True(t, open)

	open, err = snap.TogglePanel(PanelOptions)
	assert.NoError(t, err)
	assert.False(t, open)

	assert.False(t, snap.Panels()[PanelOptions])
}

func TestSnapshot_ClosingOptionsClosesCopyCode(t *testing.T) {
	snap := newSnapshot()

	_, _ = snap.TogglePanel(PanelOptions)
	_, _ = snap.TogglePanel(PanelCopyCode)
	assert.True(t, snap.Panels()[PanelCopyCode])

	_, _ = snap.TogglePanel(PanelOptions)
	assert.False(t, snap.Panels()[PanelOptions])
	assert.False(t, snap.Panels()[PanelCopyCode])

	// Sidebar stays independent
	_, _ = snap.TogglePanel(PanelSidebar)
	_, _ = snap.TogglePanel(PanelOptions)
	assert.True(t, snap.Panels()[PanelSidebar])
}

func TestSnapshot_UnknownPanel(t *testing.T) {
	snap := newSnapshot()

	_, err := snap.TogglePanel(Panel("minimap"))
	assert.ErrorIs(t, err, ErrUnknownPanel)
}

func TestSnapshot_BeginHydrationClearsState(t *testing.T) {
	snap := hydratedSnapshot(t)
	_, _ = snap.TogglePanel(PanelSidebar)

	snap.BeginHydration()

	_, ok := snap.Project()
	assert.False(t, ok)
	assert.False(t, snap.Panels()[PanelSidebar])
	assert.Equal(t, StateHydrating, snap.State())
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	store := NewStore()

	first := store.Get("session-a")
	second := store.Get("session-b")

	first.BeginHydration()
	assert.Equal(t, StateHydrating, first.State())
	assert.Equal(t, StateUninitialized, second.State())

	// Same key returns the same snapshot
	assert.Same(t, first, store.Get("session-a"))
}

func TestStore_Drop(t *testing.T) {
	store := NewStore()

	snap := store.Get("session-a")
	snap.BeginHydration()
	store.Drop("session-a")

	fresh := store.Get("session-a")
	assert.NotSame(t, snap, fresh)
	assert.Equal(t, StateUninitialized, fresh.State())
}
