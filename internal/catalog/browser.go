package catalog

import (
	"fmt"

	"catalog-browser/internal/domain"
)

// ActionType enumerates the events a UI surface can send to the reducer.
type ActionType string

const (
	ActionSelectOwner ActionType = "select_owner"
	ActionResetOwner  ActionType = "reset_owner"
	ActionSetQuery    ActionType = "set_query"
	ActionClearQuery  ActionType = "clear_query"
	ActionResetAll    ActionType = "reset_all"
)

// Action is a single UI event. OwnerID is read by select_owner, Query by set_query.
type Action struct {
	Type    ActionType `json:"type" validate:"required,oneof=select_owner reset_owner set_query clear_query reset_all"`
	OwnerID int64      `json:"owner_id,omitempty" validate:"required_if=Type select_owner,gte=0"`
	Query   string     `json:"query,omitempty" validate:"max=255"`
}

// State is the selection state of one browsing session.
// baseline is the owner-filtered row set and is only replaced on owner changes.
type State struct {
	OwnerID int64  `json:"owner_id"`
	Query   string `json:"query"`

	baseline []domain.EnrichedProduct
}

// HasOwner reports whether an owner filter is active.
func (s State) HasOwner() bool {
	return s.OwnerID != NoOwner
}

// Browser holds the enriched rows computed once from a dataset, and applies
// actions to states. It is safe for concurrent use since it is never mutated
// after construction.
type Browser struct {
	products []domain.EnrichedProduct
	owners   []domain.User
}

// NewBrowser runs the enrichment join once over ds.
func NewBrowser(ds *domain.Dataset) *Browser {
	owners := make([]domain.User, len(ds.Users))
	copy(owners, ds.Users)
	return &Browser{
		products: Enrich(ds.Products, ds.Categories, ds.Users),
		owners:   owners,
	}
}

// Products returns the full baseline set.
func (b *Browser) Products() []domain.EnrichedProduct {
	return b.products
}

// Owners returns the users in dataset order.
func (b *Browser) Owners() []domain.User {
	return b.owners
}

// Owner looks up a user by id.
func (b *Browser) Owner(id int64) (domain.User, bool) {
	if u := findUser(b.owners, id); u != nil {
		return *u, true
	}
	return domain.User{}, false
}

// Initial returns the start state: no owner, empty query, full baseline.
func (b *Browser) Initial() State {
	return State{OwnerID: NoOwner, baseline: b.products}
}

// Reduce applies a to s and returns the next state. s is not modified.
func (b *Browser) Reduce(s State, a Action) (State, error) {
	if s.baseline == nil {
		s.baseline = FilterByOwner(b.products, s.OwnerID)
	}

	switch a.Type {
	case ActionSelectOwner:
		if a.OwnerID == s.OwnerID {
			return s, nil
		}
		if _, ok := b.Owner(a.OwnerID); !ok {
			return s, fmt.Errorf("%w: id %d", ErrUnknownOwner, a.OwnerID)
		}
		s.OwnerID = a.OwnerID
		s.baseline = FilterByOwner(b.products, a.OwnerID)
	case ActionResetOwner:
		s.OwnerID = NoOwner
		s.baseline = b.products
	case ActionSetQuery:
		s.Query = a.Query
	case ActionClearQuery:
		s.Query = ""
	case ActionResetAll:
		return b.Initial(), nil
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
	return s, nil
}

// Visible returns the rows to render for s: the baseline narrowed by the query.
func (b *Browser) Visible(s State) []domain.EnrichedProduct {
	baseline := s.baseline
	if baseline == nil {
		baseline = FilterByOwner(b.products, s.OwnerID)
	}
	return FilterByQuery(baseline, s.Query)
}

// StateFor builds a state from stateless parameters by replaying them through
// the reducer. ownerID may be NoOwner.
func (b *Browser) StateFor(ownerID int64, query string) (State, error) {
	s := b.Initial()
	var err error
	if ownerID != NoOwner {
		if s, err = b.Reduce(s, Action{Type: ActionSelectOwner, OwnerID: ownerID}); err != nil {
			return State{}, err
		}
	}
	return b.Reduce(s, Action{Type: ActionSetQuery, Query: query})
}
