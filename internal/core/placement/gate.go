package placement

import "github.com/custodia-labs/sigplace/internal/core/domain"

// Gate is a read-only view over a placeholder list that answers which
// recipients already have a box. Callers check it before Store.Add.
type Gate struct {
	assigned map[string]struct{}
	count    int
}

// NewGate derives a gate from the current placeholders.
func NewGate(placeholders []domain.SignaturePlaceholder) Gate {
	assigned := make(map[string]struct{}, len(placeholders))
	for _, p := range placeholders {
		assigned[p.RecipientID] = struct{}{}
	}
	return Gate{assigned: assigned, count: len(placeholders)}
}

// AssignedRecipientIDs returns the set of recipients that have a placeholder.
func (g Gate) AssignedRecipientIDs() map[string]struct{} {
	result := make(map[string]struct{}, len(g.assigned))
	for id := range g.assigned {
		result[id] = struct{}{}
	}
	return result
}

// IsAssigned reports whether the recipient already has a placeholder.
func (g Gate) IsAssigned(recipientID string) bool {
	_, ok := g.assigned[recipientID]
	return ok
}

// NextOrdinal is the position the next placeholder would take.
func (g Gate) NextOrdinal() int {
	return g.count + 1
}

// NextLabel renders the prompt for the next placeholder, e.g. "Add 2nd signatory".
func (g Gate) NextLabel() string {
	return "Add " + domain.OrdinalLabel(g.NextOrdinal()) + " signatory"
}

// Unassigned filters recipients down to those without a placeholder,
// keeping their order.
func (g Gate) Unassigned(recipients []domain.Recipient) []domain.Recipient {
	result := make([]domain.Recipient, 0, len(recipients))
	for _, r := range recipients {
		if !g.IsAssigned(r.ID) {
			result = append(result, r)
		}
	}
	return result
}
