package ecs_test

import (
	"testing"

	"github.com/gridhaven/server/internal/core/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type health struct{ hp int }
type tag struct{ name string }

func TestEntityPool_MonotonicNoReuse(t *testing.T) {
	p := ecs.NewEntityPool()

	a := p.Create()
	b := p.Create()
	assert.EqualValues(t, 1, a)
	assert.EqualValues(t, 2, b)

	p.Destroy(a)
	assert.False(t, p.Alive(a))
	assert.EqualValues(t, 3, p.Create())
	assert.Equal(t, 2, p.Count())
}

func TestEntityPool_Adopt(t *testing.T) {
	p := ecs.NewEntityPool()
	p.Adopt(40)
	p.Adopt(12)
	p.Adopt(0) // invalid id, ignored

	assert.True(t, p.Alive(40))
	assert.True(t, p.Alive(12))
	assert.EqualValues(t, 41, p.Create())
}

func TestComponentStore_SetGetRemove(t *testing.T) {
	s := ecs.NewPtrComponentStore[health]()

	s.Set(1, &health{hp: 10})
	h, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, 10, h.hp)

	h.hp = 5 // pointer semantics: mutation sticks
	h2, _ := s.Get(1)
	assert.Equal(t, 5, h2.hp)

	s.Remove(1)
	_, ok = s.Get(1)
	assert.False(t, ok)
	assert.False(t, s.Has(1))
}

func TestRegistry_RemoveAllWipesEveryStore(t *testing.T) {
	w := ecs.NewWorld()
	healths := ecs.NewPtrComponentStore[health]()
	tags := ecs.NewPtrComponentStore[tag]()
	w.Registry().Register(healths)
	w.Registry().Register(tags)

	id := w.CreateEntity()
	healths.Set(id, &health{hp: 3})
	tags.Set(id, &tag{name: "x"})

	w.MarkForDestruction(id)
	w.MarkForDestruction(id) // double-queue is harmless
	w.FlushDestroyQueue()

	assert.False(t, w.Alive(id))
	assert.False(t, healths.Has(id))
	assert.False(t, tags.Has(id))
}

func TestEach2_IteratesIntersection(t *testing.T) {
	healths := ecs.NewPtrComponentStore[health]()
	tags := ecs.NewPtrComponentStore[tag]()

	healths.Set(1, &health{hp: 1})
	healths.Set(2, &health{hp: 2})
	tags.Set(2, &tag{name: "b"})
	tags.Set(3, &tag{name: "c"})

	seen := map[ecs.EntityID]bool{}
	ecs.Each2(healths, tags, func(id ecs.EntityID, h *health, g *tag) {
		seen[id] = true
		assert.Equal(t, 2, h.hp)
		assert.Equal(t, "b", g.name)
	})
	assert.Equal(t, map[ecs.EntityID]bool{2: true}, seen)
}
