package game

import (
	"sort"

	"github.com/shopspring/decimal"

	"ec4x_engine/internal/model"
)

// PlayerState is one house's fog-of-war filtered view of the world, per
// spec.md §4.8. It is engine output only — the bridge hands this to
// clients one-way; nothing a client does can write back into it.
type PlayerState struct {
	HouseID model.HouseID
	Turn    int

	Treasury decimal.Decimal
	Prestige int
	Tech     map[string]int
	Research map[string]decimal.Decimal

	OwnedColonies    []model.Colony
	OwnedFleets      []model.Fleet
	OwnedSquadrons   []model.Squadron
	OwnedShips       []model.Ship
	OwnedNeorias     []model.Neoria
	OwnedKastras     []model.Kastra
	OwnedGroundUnits []model.GroundUnit

	VisibleEnemyColonies []model.Colony
	VisibleEnemyFleets   []model.Fleet

	Intel map[model.SystemID]model.SystemIntel

	PrestigeTable           map[model.HouseID]int
	ColonyCounts            map[model.HouseID]int
	DiplomaticStates        map[model.HouseID]model.DiplomaticState
	KnownEnemyColonySystems []model.SystemID
}

// ProjectPlayerState builds one house's filtered view of the current
// world state. Read-only: it never mutates State, only the calling
// house's own Intel database is advanced with freshly-observed snapshots,
// per spec.md §4.8's staleness model.
func ProjectPlayerState(state *model.State, houseID model.HouseID) PlayerState {
	house, err := state.GetHouse(houseID)
	if err != nil {
		return PlayerState{HouseID: houseID, Turn: state.Turn}
	}

	ps := PlayerState{
		HouseID:          houseID,
		Turn:             state.Turn,
		Treasury:         house.Treasury,
		Prestige:         house.Prestige,
		Tech:             copyTech(house.Tech),
		Research:         copyResearch(house.Research),
		PrestigeTable:    make(map[model.HouseID]int),
		ColonyCounts:     make(map[model.HouseID]int),
		DiplomaticStates: make(map[model.HouseID]model.DiplomaticState),
	}

	ownedSystems := make(map[model.SystemID]bool)
	for _, cid := range state.ColoniesOwnedBy(houseID) {
		c, err := state.GetColony(cid)
		if err != nil {
			continue
		}
		ps.OwnedColonies = append(ps.OwnedColonies, *c)
		ownedSystems[c.SystemID] = true
		for _, nid := range c.NeoriaIDs {
			if n, err := state.GetNeoria(nid); err == nil {
				ps.OwnedNeorias = append(ps.OwnedNeorias, *n)
			}
		}
		for _, kid := range c.KastraIDs {
			if k, err := state.GetKastra(kid); err == nil {
				ps.OwnedKastras = append(ps.OwnedKastras, *k)
			}
		}
		for _, gid := range c.GroundUnitIDs {
			if g, err := state.GetGroundUnit(gid); err == nil {
				ps.OwnedGroundUnits = append(ps.OwnedGroundUnits, *g)
			}
		}
	}

	occupiedSystems := make(map[model.SystemID]bool)
	for _, fid := range state.FleetsOwnedBy(houseID) {
		f, err := state.GetFleet(fid)
		if err != nil {
			continue
		}
		ps.OwnedFleets = append(ps.OwnedFleets, *f)
		occupiedSystems[f.SystemID] = true
		for _, sqID := range f.SquadronIDs {
			sq, err := state.GetSquadron(sqID)
			if err != nil {
				continue
			}
			ps.OwnedSquadrons = append(ps.OwnedSquadrons, *sq)
			for _, shipID := range sq.Ships() {
				if sh, err := state.GetShip(shipID); err == nil {
					ps.OwnedShips = append(ps.OwnedShips, *sh)
				}
			}
		}
	}

	visibleSystems := make(map[model.SystemID]model.VisibilityLevel)
	for sysID := range ownedSystems {
		visibleSystems[sysID] = model.VisibilityOwned
	}
	for sysID := range occupiedSystems {
		if visibleSystems[sysID] < model.VisibilityOccupied {
			visibleSystems[sysID] = model.VisibilityOccupied
		}
	}
	if state.Map != nil {
		for sysID := range ownedSystems {
			if sys, ok := state.Map.Systems[sysID]; ok {
				for neighbor := range sys.Lanes {
					if visibleSystems[neighbor] < model.VisibilityAdjacent {
						visibleSystems[neighbor] = model.VisibilityAdjacent
					}
				}
			}
		}
	}

	// Refresh this house's intel ledger for every currently-observed
	// system (Owned/Occupied), then surface enemy entities found there in
	// full current detail.
	for sysID, vis := range visibleSystems {
		if vis != model.VisibilityOwned && vis != model.VisibilityOccupied {
			continue
		}
		colonies := make(map[model.ColonyID]model.ColonySnapshot)
		fleets := make(map[model.FleetID]model.FleetSnapshot)
		for _, cid := range state.ColoniesInSystem(sysID) {
			c, err := state.GetColony(cid)
			if err != nil {
				continue
			}
			colonies[cid] = model.ColonySnapshot{
				ColonyID: cid, OwnerID: c.OwnerID, PopulationUnits: c.PopulationUnits,
				InfrastructureLv: c.InfrastructureLv, LastTurnUpdated: state.Turn,
			}
			if c.OwnerID != houseID && c.OwnerID != model.ZeroID {
				ps.VisibleEnemyColonies = append(ps.VisibleEnemyColonies, *c)
			}
		}
		for _, fid := range state.FleetsInSystem(sysID) {
			f, err := state.GetFleet(fid)
			if err != nil {
				continue
			}
			fleets[fid] = model.FleetSnapshot{
				FleetID: fid, OwnerID: f.OwnerID, SquadronCount: len(f.SquadronIDs), LastTurnUpdated: state.Turn,
			}
			if f.OwnerID != houseID {
				ps.VisibleEnemyFleets = append(ps.VisibleEnemyFleets, *f)
			}
		}
		house.Intel.Record(sysID, vis, state.Turn, colonies, fleets)
	}
	for sysID, vis := range visibleSystems {
		if vis != model.VisibilityAdjacent {
			continue
		}
		if _, ok := house.Intel.Get(sysID); !ok {
			house.Intel.Record(sysID, vis, state.Turn, nil, nil)
		}
	}
	_ = state.UpdateHouse(house)

	ps.Intel = make(map[model.SystemID]model.SystemIntel, len(house.Intel.Systems))
	for sysID, entry := range house.Intel.Systems {
		ps.Intel[sysID] = *entry
		for _, snap := range entry.Colonies {
			if snap.OwnerID != houseID && snap.OwnerID != model.ZeroID {
				ps.KnownEnemyColonySystems = append(ps.KnownEnemyColonySystems, sysID)
				break
			}
		}
	}
	sort.Slice(ps.KnownEnemyColonySystems, func(i, j int) bool {
		return ps.KnownEnemyColonySystems[i] < ps.KnownEnemyColonySystems[j]
	})

	for _, h := range state.Houses {
		ps.PrestigeTable[h.ID] = h.Prestige
		ps.ColonyCounts[h.ID] = len(state.ColoniesOwnedBy(h.ID))
		if h.ID == houseID {
			continue
		}
		ps.DiplomaticStates[h.ID] = house.Relations[h.ID].State
	}

	return ps
}

func copyTech(src map[string]int) map[string]int {
	out := make(map[string]int, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func copyResearch(src map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
