package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sigplace/internal/core/domain"
)

func TestGate_Empty(t *testing.T) {
	gate := NewGate(nil)

	assert.Empty(t, gate.AssignedRecipientIDs())
	assert.Equal(t, 1, gate.NextOrdinal())
	assert.Equal(t, "Add 1st signatory", gate.NextLabel())
	assert.False(t, gate.IsAssigned("r1"))
}

func TestGate_Assigned(t *testing.T) {
	gate := NewGate([]domain.SignaturePlaceholder{
		{ID: "p1", RecipientID: "r1", Order: 1},
		{ID: "p2", RecipientID: "r3", Order: 2},
	})

	ids := gate.AssignedRecipientIDs()
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, "r1")
	assert.Contains(t, ids, "r3")
	assert.True(t, gate.IsAssigned("r1"))
	assert.False(t, gate.IsAssigned("r2"))
	assert.Equal(t, 3, gate.NextOrdinal())
	assert.Equal(t, "Add 3rd signatory", gate.NextLabel())
}

func TestGate_AssignedRecipientIDsIsCopy(t *testing.T) {
	gate := NewGate([]domain.SignaturePlaceholder{{RecipientID: "r1"}})

	ids := gate.AssignedRecipientIDs()
	delete(ids, "r1")

	assert.True(t, gate.IsAssigned("r1"))
}

func TestGate_Unassigned(t *testing.T) {
	gate := NewGate([]domain.SignaturePlaceholder{{RecipientID: "r2"}})
	recipients := []domain.Recipient{
		{ID: "r1", Name: "Ada"},
		{ID: "r2", Name: "Grace"},
		{ID: "r3", Name: "Edsger"},
	}

	got := gate.Unassigned(recipients)

	assert.Equal(t, []domain.Recipient{recipients[0], recipients[2]}, got)
}

func TestGate_TracksStore(t *testing.T) {
	store := newTestStore()
	ada := domain.Recipient{ID: "r1", Name: "Ada"}

	assert.False(t, NewGate(store.List()).IsAssigned(ada.ID))

	p := store.Add(ada, 1, domain.Point{X: 100, Y: 100}, 1)
	assert.True(t, NewGate(store.List()).IsAssigned(ada.ID))
	assert.Equal(t, 2, NewGate(store.List()).NextOrdinal())

	store.Remove(p.ID)
	assert.False(t, NewGate(store.List()).IsAssigned(ada.ID))
}
