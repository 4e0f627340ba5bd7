package projections_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clinicbook/admin-console/internal/application/projections"
	"github.com/clinicbook/admin-console/internal/domain/entities"
	"github.com/clinicbook/admin-console/internal/domain/providers"
)

func doctorProjection() *projections.Projection[*entities.Doctor] {
	return projections.New(func(d providers.Document) *entities.Doctor {
		return entities.DoctorFromDocument(d.ID, d.Fields)
	})
}

func doctorSnapshot(seq uint64, names map[string]string) providers.Snapshot {
	docs := make([]providers.Document, 0, len(names))
	for id, name := range names {
		docs = append(docs, providers.Document{ID: id, Fields: map[string]any{"name": name}})
	}
	return providers.Snapshot{Collection: providers.CollectionDoctors, Seq: seq, Docs: docs}
}

func TestProjection_ApplyReplacesWholeState(t *testing.T) {
	p := doctorProjection()
	assert.False(t, p.Ready())

	p.Apply(doctorSnapshot(1, map[string]string{"d1": "Dr. Karim", "d2": "Dr. Rahim"}))
	assert.True(t, p.Ready())
	assert.Equal(t, 2, p.Len())

	// d2 is absent from the next snapshot and must be dropped.
	p.Apply(doctorSnapshot(2, map[string]string{"d1": "Dr. Karim", "d3": "Dr. Salam"}))
	assert.Equal(t, 2, p.Len())

	_, ok := p.Get("d2")
	assert.False(t, ok)
	d3, ok := p.Get("d3")
	assert.True(t, ok)
	assert.Equal(t, "Dr. Salam", d3.Name)
}

func TestProjection_IgnoresStaleSnapshots(t *testing.T) {
	p := doctorProjection()

	p.Apply(doctorSnapshot(5, map[string]string{"d1": "Dr. Karim"}))
	p.Apply(doctorSnapshot(3, map[string]string{"d2": "Dr. Rahim"}))

	// The stale snapshot must not roll the state back.
	_, ok := p.Get("d1")
	assert.True(t, ok)
	_, ok = p.Get("d2")
	assert.False(t, ok)
}

func TestProjection_ReapplyCurrentSnapshotIsIdempotent(t *testing.T) {
	p := doctorProjection()

	snap := doctorSnapshot(1, map[string]string{"d1": "Dr. Karim"})
	p.Apply(snap)
	p.Apply(snap)

	assert.Equal(t, 1, p.Len())
}

func TestProjection_ListSortsOnRead(t *testing.T) {
	p := doctorProjection()
	p.Apply(doctorSnapshot(1, map[string]string{
		"d1": "Charlie",
		"d2": "Alpha",
		"d3": "Bravo",
	}))

	list := p.List(func(a, b *entities.Doctor) bool { return a.Name < b.Name })
	names := make([]string, len(list))
	for i, d := range list {
		names[i] = d.Name
	}
	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, names)
}

func TestProjection_ListWithoutOrder(t *testing.T) {
	p := doctorProjection()
	p.Apply(doctorSnapshot(1, map[string]string{"d1": "Dr. Karim"}))

	assert.Len(t, p.List(nil), 1)
}
