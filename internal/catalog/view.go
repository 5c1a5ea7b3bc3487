package catalog

import (
	"fmt"

	"catalog-browser/internal/domain"
)

// NoResultsMessage is shown instead of the table when nothing matches.
const NoResultsMessage = "No products matching selected criteria"

// Tone is the display treatment of an owner name.
type Tone string

const (
	ToneNone   Tone = ""
	ToneMale   Tone = "male"
	ToneFemale Tone = "female"
)

// ToneOf maps a user's sex to its display treatment. Absent owners and
// unknown values get ToneNone.
func ToneOf(u *domain.User) Tone {
	if u == nil {
		return ToneNone
	}
	switch u.Sex {
	case domain.SexMale:
		return ToneMale
	case domain.SexFemale:
		return ToneFemale
	default:
		return ToneNone
	}
}

// CategoryLabel renders a category as "<icon> - <title>", or "" when absent.
func CategoryLabel(c *domain.Category) string {
	if c == nil {
		return ""
	}
	return fmt.Sprintf("%s - %s", c.Icon, c.Title)
}

// OwnerTab is one entry of the owner filter bar. The "All" tab has ID NoOwner.
type OwnerTab struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Row is one rendered table line.
type Row struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Owner    string `json:"owner"`
	Tone     Tone   `json:"tone"`
}

// View is everything a surface needs to draw the page for one state.
type View struct {
	OwnerID   int64      `json:"owner_id"`
	Query     string     `json:"query"`
	Tabs      []OwnerTab `json:"tabs"`
	ShowClear bool       `json:"show_clear"`
	Rows      []Row      `json:"rows"`
	NoResults bool       `json:"no_results"`
	Message   string     `json:"message,omitempty"`
}

// Render builds the view for s. An empty visible set yields NoResults and no rows.
func (b *Browser) Render(s State) View {
	v := View{
		OwnerID:   s.OwnerID,
		Query:     s.Query,
		ShowClear: s.Query != "",
		Rows:      []Row{},
	}

	v.Tabs = make([]OwnerTab, 0, len(b.owners)+1)
	v.Tabs = append(v.Tabs, OwnerTab{ID: NoOwner, Name: "All", Active: !s.HasOwner()})
	for _, u := range b.owners {
		v.Tabs = append(v.Tabs, OwnerTab{ID: u.ID, Name: u.Name, Active: u.ID == s.OwnerID})
	}

	visible := b.Visible(s)
	if len(visible) == 0 {
		v.NoResults = true
		v.Message = NoResultsMessage
		return v
	}

	for _, p := range visible {
		row := Row{
			ID:       p.ID,
			Name:     p.Name,
			Category: CategoryLabel(p.Category),
			Tone:     ToneOf(p.Owner),
		}
		if p.Owner != nil {
			row.Owner = p.Owner.Name
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}
