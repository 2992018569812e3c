// Package registry resolves season-specific team names to stable owner
// identities from a curated mapping table. Names are matched exactly.
package registry

import (
	"fmt"
	"slices"
	"strings"

	"github.com/billyessing/nfl-fantasy/internal/domain/model"
)

type seasonTeam struct {
	season int
	team   string
}

type ownerState struct {
	displayName string
	teams       map[int]string // season -> team name
}

// Builder accumulates mapping rows. It is not safe for concurrent use;
// call Build once loading is done.
type Builder struct {
	index  map[seasonTeam]model.OwnerID
	owners map[model.OwnerID]*ownerState
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		index:  make(map[seasonTeam]model.OwnerID),
		owners: make(map[model.OwnerID]*ownerState),
	}
}

// Register maps teamName in season to ownerID. Repeating an identical
// registration is a no-op. An empty displayName keeps the known one.
func (b *Builder) Register(season int, teamName string, ownerID model.OwnerID, displayName string) error {
	if season <= 0 || teamName == "" || ownerID == "" {
		return fmt.Errorf("%w: season=%d team=%q owner=%q", ErrInvalidMapping, season, teamName, ownerID)
	}

	key := seasonTeam{season: season, team: teamName}
	if existing, ok := b.index[key]; ok && existing != ownerID {
		return &ConflictingMappingError{
			Season: season, TeamName: teamName, OwnerID: ownerID,
			Existing: string(existing), Reason: "team already mapped to another owner",
		}
	}

	st, ok := b.owners[ownerID]
	if ok {
		if other, played := st.teams[season]; played && other != teamName {
			return &ConflictingMappingError{
				Season: season, TeamName: teamName, OwnerID: ownerID,
				Existing: other, Reason: "owner already has a team this season",
			}
		}
		if displayName != "" && st.displayName != "" && st.displayName != displayName {
			return &ConflictingMappingError{
				Season: season, TeamName: teamName, OwnerID: ownerID,
				Existing: st.displayName, Reason: "display name differs",
			}
		}
	} else {
		st = &ownerState{teams: make(map[int]string)}
		b.owners[ownerID] = st
	}

	if st.displayName == "" {
		st.displayName = displayName
	}
	st.teams[season] = teamName
	b.index[key] = ownerID
	return nil
}

// Build freezes the builder into an immutable Registry.
func (b *Builder) Build() *Registry {
	r := &Registry{
		index:  make(map[seasonTeam]model.OwnerID, len(b.index)),
		owners: make(map[model.OwnerID]model.Owner, len(b.owners)),
		active: make(map[int][]model.OwnerID),
	}
	for k, id := range b.index {
		r.index[k] = id
		r.active[k.season] = append(r.active[k.season], id)
	}
	for season := range r.active {
		slices.Sort(r.active[season])
		r.seasons = append(r.seasons, season)
	}
	slices.Sort(r.seasons)

	latest := 0
	if n := len(r.seasons); n > 0 {
		latest = r.seasons[n-1]
	}

	for id, st := range b.owners {
		o := model.Owner{ID: id, DisplayName: st.displayName}
		if o.DisplayName == "" {
			o.DisplayName = string(id)
		}
		for season, team := range st.teams {
			o.Teams = append(o.Teams, model.TeamSeason{Season: season, TeamName: team})
		}
		slices.SortFunc(o.Teams, func(a, b model.TeamSeason) int { return a.Season - b.Season })
		o.JoinSeason = o.Teams[0].Season
		if last := o.Teams[len(o.Teams)-1].Season; last != latest {
			o.LeaveSeason = last
		}
		r.owners[id] = o
		r.ids = append(r.ids, id)
	}
	slices.Sort(r.ids)
	return r
}

// FromMapping builds a registry from the curated mapping table. The first
// invalid or conflicting row aborts the build.
func FromMapping(rows []model.MappingRow) (*Registry, error) {
	b := NewBuilder()
	for _, row := range rows {
		if err := b.Register(row.Season, row.TeamName, row.OwnerID, row.DisplayName); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// Registry is the immutable team-name to owner index. Safe for concurrent reads.
type Registry struct {
	index   map[seasonTeam]model.OwnerID
	owners  map[model.OwnerID]model.Owner
	ids     []model.OwnerID
	seasons []int
	active  map[int][]model.OwnerID
}

// Resolve returns the owner who fielded teamName in season.
func (r *Registry) Resolve(season int, teamName string) (model.OwnerID, error) {
	if id, ok := r.index[seasonTeam{season: season, team: teamName}]; ok {
		return id, nil
	}
	return "", &UnmappedTeamError{Season: season, TeamName: teamName}
}

// OwnerSeasons returns every (season, team name) used by id, season ascending.
func (r *Registry) OwnerSeasons(id model.OwnerID) []model.TeamSeason {
	return slices.Clone(r.owners[id].Teams)
}

// ActiveOwners returns the owners who fielded a team in season, sorted.
func (r *Registry) ActiveOwners(season int) []model.OwnerID {
	return slices.Clone(r.active[season])
}

// Owner returns the owner with id.
func (r *Registry) Owner(id model.OwnerID) (model.Owner, bool) {
	o, ok := r.owners[id]
	if ok {
		o.Teams = slices.Clone(o.Teams)
	}
	return o, ok
}

// Owners returns every owner ordered by id.
func (r *Registry) Owners() []model.Owner {
	out := make([]model.Owner, 0, len(r.ids))
	for _, id := range r.ids {
		o, _ := r.Owner(id)
		out = append(out, o)
	}
	return out
}

// Seasons returns the mapped seasons in ascending order.
func (r *Registry) Seasons() []int {
	return slices.Clone(r.seasons)
}

// Len returns the number of owners.
func (r *Registry) Len() int {
	return len(r.ids)
}

// Lookup finds owners by display name or id, ignoring case.
func (r *Registry) Lookup(name string) (model.Owner, bool) {
	for _, id := range r.ids {
		o := r.owners[id]
		if strings.EqualFold(string(o.ID), name) || strings.EqualFold(o.DisplayName, name) {
			return r.Owner(id)
		}
	}
	return model.Owner{}, false
}
