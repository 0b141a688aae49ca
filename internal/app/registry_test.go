package app

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/dkeye/FrontDesk/internal/core"
	"github.com/dkeye/FrontDesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(s string) domain.Descriptor { return json.RawMessage(s) }

func newRoom(t *testing.T, name domain.RoomName, passcode string) *Registry {
	t.Helper()
	r := NewRegistry()
	require.NoError(t, r.Create(name, passcode))
	return r
}

func TestRegistryCreate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Create("a", "p"))
	require.NoError(t, r.Create("b", "p"))
	require.NoError(t, r.Create("A", "p"), "names are case-sensitive")

	err := r.Create("a", "other")
	require.ErrorIs(t, err, core.ErrConflict)
	assert.True(t, r.VerifyPasscode("a", "p"), "failed create must not touch the existing room")

	assert.True(t, r.Exists("a"))
	assert.False(t, r.Exists("c"))
}

func TestRegistryVerifyPasscode(t *testing.T) {
	r := newRoom(t, "r1", "p1")
	assert.True(t, r.VerifyPasscode("r1", "p1"))
	assert.False(t, r.VerifyPasscode("r1", "p2"))
	assert.False(t, r.VerifyPasscode("r1", "P1"))
	assert.False(t, r.VerifyPasscode("r1", ""))
	assert.False(t, r.VerifyPasscode("nope", "p1"))
}

func TestRegistryMixReadAfterWrite(t *testing.T) {
	r := newRoom(t, "r1", "p1")

	_, ok, err := r.GetMix("r1", "bob")
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := r.SetMix("r1", "bob", raw(`{"vol":5}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"vol":5}`, string(stored))

	got, ok, err := r.GetMix("r1", "bob")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"vol":5}`, string(got))

	_, ok, err = r.GetLayout("r1", "bob")
	require.NoError(t, err)
	assert.False(t, ok, "mix and layout are separate")
}

func TestRegistryReturnsCopies(t *testing.T) {
	r := newRoom(t, "r1", "p1")
	in := raw(`{"vol":5}`)
	_, err := r.SetLayout("r1", "bob", in)
	require.NoError(t, err)
	in[2] = 'X'

	got, _, err := r.GetLayout("r1", "bob")
	require.NoError(t, err)
	assert.JSONEq(t, `{"vol":5}`, string(got))

	got[2] = 'Y'
	again, _, err := r.GetLayout("r1", "bob")
	require.NoError(t, err)
	assert.JSONEq(t, `{"vol":5}`, string(again))
}

func TestRegistryUnknownRoom(t *testing.T) {
	r := NewRegistry()

	_, _, err := r.GetMix("x", "bob")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = r.SetMix("x", "bob", raw(`1`))
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, _, err = r.GetLayout("x", "bob")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = r.SetLayout("x", "bob", raw(`1`))
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.ErrorIs(t, r.SaveMixSlot("x", "A"), core.ErrNotFound)
	_, err = r.LoadMixSlot("x", "A")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.ErrorIs(t, r.SaveLayoutSlot("x", "A"), core.ErrNotFound)
	_, err = r.LoadLayoutSlot("x", "A")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.ErrorIs(t, r.ReplaceState("x", domain.RoomState{}), core.ErrNotFound)

	_, ok := r.State("x")
	assert.False(t, ok)
	assert.False(t, r.Exists("x"), "lookups must not create rooms")
}

func TestRegistryMixSlotCopyOnSave(t *testing.T) {
	r := newRoom(t, "r1", "p1")

	_, err := r.SetMix("r1", "bob", raw(`{"vol":5}`))
	require.NoError(t, err)
	require.NoError(t, r.SaveMixSlot("r1", "A"))

	_, err = r.SetMix("r1", "bob", raw(`{"vol":9}`))
	require.NoError(t, err)
	_, err = r.SetMix("r1", "carol", raw(`{"vol":1}`))
	require.NoError(t, err)

	loaded, err := r.LoadMixSlot("r1", "A")
	require.NoError(t, err)
	assert.True(t, loaded)

	got, ok, err := r.GetMix("r1", "bob")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"vol":5}`, string(got))

	_, ok, err = r.GetMix("r1", "carol")
	require.NoError(t, err)
	assert.False(t, ok, "load replaces wholesale, it does not merge")
}

func TestRegistryLoadedSlotIsIndependent(t *testing.T) {
	r := newRoom(t, "r1", "p1")
	_, err := r.SetLayout("r1", "bob", raw(`"grid"`))
	require.NoError(t, err)
	require.NoError(t, r.SaveLayoutSlot("r1", "1"))

	_, err = r.LoadLayoutSlot("r1", "1")
	require.NoError(t, err)
	_, err = r.SetLayout("r1", "bob", raw(`"spotlight"`))
	require.NoError(t, err)

	_, err = r.LoadLayoutSlot("r1", "1")
	require.NoError(t, err)
	got, _, err := r.GetLayout("r1", "bob")
	require.NoError(t, err)
	assert.Equal(t, `"grid"`, string(got))
}

func TestRegistrySaveOverwritesSlot(t *testing.T) {
	r := newRoom(t, "r1", "p1")
	_, _ = r.SetMix("r1", "bob", raw(`1`))
	require.NoError(t, r.SaveMixSlot("r1", "A"))
	_, _ = r.SetMix("r1", "bob", raw(`2`))
	require.NoError(t, r.SaveMixSlot("r1", "A"))
	_, _ = r.SetMix("r1", "bob", raw(`3`))

	_, err := r.LoadMixSlot("r1", "A")
	require.NoError(t, err)
	got, _, _ := r.GetMix("r1", "bob")
	assert.Equal(t, `2`, string(got))
}

func TestRegistryLoadAbsentSlotIsNoop(t *testing.T) {
	r := newRoom(t, "r1", "p1")
	_, _ = r.SetMix("r1", "bob", raw(`{"vol":7}`))
	_, _ = r.SetLayout("r1", "bob", raw(`"grid"`))

	loaded, err := r.LoadMixSlot("r1", "missing")
	require.NoError(t, err)
	assert.False(t, loaded)
	loaded, err = r.LoadLayoutSlot("r1", "missing")
	require.NoError(t, err)
	assert.False(t, loaded)

	got, ok, _ := r.GetMix("r1", "bob")
	require.True(t, ok)
	assert.JSONEq(t, `{"vol":7}`, string(got))
	got, ok, _ = r.GetLayout("r1", "bob")
	require.True(t, ok)
	assert.Equal(t, `"grid"`, string(got))
}

func TestRegistryReplaceStateKeepsIdentity(t *testing.T) {
	r := newRoom(t, "r1", "p1")
	_, _ = r.SetMix("r1", "old", raw(`0`))

	err := r.ReplaceState("r1", domain.RoomState{
		Name:     "hijacked",
		Passcode: "stolen",
		Mix:      domain.Assignments{"bob": raw(`{"vol":3}`)},
		LayoutSlots: domain.Slots{
			"A": {"bob": raw(`"grid"`)},
		},
	})
	require.NoError(t, err)

	state, ok := r.State("r1")
	require.True(t, ok)
	assert.Equal(t, domain.RoomName("r1"), state.Name)
	assert.Equal(t, "p1", state.Passcode)
	assert.True(t, r.VerifyPasscode("r1", "p1"))
	assert.False(t, r.VerifyPasscode("r1", "stolen"))
	assert.False(t, r.Exists("hijacked"))

	require.Len(t, state.Mix, 1)
	assert.JSONEq(t, `{"vol":3}`, string(state.Mix["bob"]))
	assert.Empty(t, state.Layout)
	assert.Empty(t, state.MixSlots)

	loaded, err := r.LoadLayoutSlot("r1", "A")
	require.NoError(t, err)
	assert.True(t, loaded)
	got, _, _ := r.GetLayout("r1", "bob")
	assert.Equal(t, `"grid"`, string(got))

	// Live maps created from nil input must accept writes.
	_, err = r.SetLayout("r1", "carol", raw(`1`))
	require.NoError(t, err)
}

func TestRegistryStateIsACopy(t *testing.T) {
	r := newRoom(t, "r1", "p1")
	_, _ = r.SetMix("r1", "bob", raw(`1`))

	state, _ := r.State("r1")
	state.Mix["bob"] = raw(`99`)
	state.Mix["eve"] = raw(`1`)

	got, _, _ := r.GetMix("r1", "bob")
	assert.Equal(t, `1`, string(got))
	_, ok, _ := r.GetMix("r1", "eve")
	assert.False(t, ok)
}

func TestRegistryListAndSnapshot(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Create("b", "pb"))
	require.NoError(t, r.Create("a", "pa"))
	_, _ = r.SetMix("a", "bob", raw(`1`))
	require.NoError(t, r.SaveMixSlot("a", "2"))
	require.NoError(t, r.SaveMixSlot("a", "1"))

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, domain.RoomName("a"), list[0].Name)
	assert.Equal(t, 1, list[0].MixEntries)
	assert.Equal(t, []domain.SlotID{"1", "2"}, list[0].MixSlots)
	assert.Equal(t, domain.RoomName("b"), list[1].Name)

	snap := r.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "pa", snap[0].Passcode)
	assert.Equal(t, "pb", snap[1].Passcode)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := domain.RoomName(fmt.Sprintf("room-%d", i%4))
			_ = r.Create(name, "p")
			nick := domain.Nickname(fmt.Sprintf("n%d", i))
			for j := range 50 {
				_, err := r.SetMix(name, nick, raw(fmt.Sprint(j)))
				assert.NoError(t, err)
				assert.NoError(t, r.SaveMixSlot(name, "s"))
				_, err = r.LoadMixSlot(name, "s")
				assert.NoError(t, err)
				_, _ = r.State(name)
				_ = r.List()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, r.List(), 4)
}
