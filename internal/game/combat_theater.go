package game

import (
	"sort"

	"ec4x_engine/internal/model"
)

// Theater identifies one stage of the space/orbital/planetary combat
// progression, per spec.md §4.7.
type Theater int

const (
	SpaceTheater Theater = iota
	OrbitalTheater
	PlanetaryTheater
)

// String implements fmt.Stringer.
func (t Theater) String() string {
	switch t {
	case SpaceTheater:
		return "space_combat"
	case OrbitalTheater:
		return "orbital_combat"
	case PlanetaryTheater:
		return "planetary_combat"
	default:
		return "unknown_theater"
	}
}

// Bucket classifies a combat participant for targeting-weight purposes,
// per spec.md §4.7.
type Bucket int

const (
	RaiderBucket Bucket = iota
	CapitalBucket
	EscortBucket
	FighterBucket
	StarbaseBucket
)

// Weight returns the targeting-priority weight for a bucket.
func (b Bucket) Weight() float64 {
	switch b {
	case RaiderBucket:
		return 1.5
	case CapitalBucket:
		return 1.2
	case EscortBucket:
		return 1.0
	case FighterBucket:
		return 0.8
	case StarbaseBucket:
		return 2.0
	default:
		return 1.0
	}
}

// combatShip is a flattened, per-ship combat-participation record used
// throughout the resolver so that AS/DS lookups and cumulative hits are
// tracked uniformly regardless of whether the hull belongs to a ship
// squadron or (conceptually) a starbase.
type combatShip struct {
	ShipID     model.ShipID
	SquadronID model.SquadronID
	Bucket     Bucket
	AS         float64
	DS         float64
	State      model.CombatState
	Hits       float64
}

// combatFacility is a starbase participating as a Bucket-weighted
// combat entity.
type combatFacility struct {
	KastraID model.KastraID
	AS       float64
	DS       float64
	Hits     float64
	DetectionBonus int
	Crippled bool
	Destroyed bool
}

// taskForce is one house's combat-ready formation for a single theater,
// per spec.md §4.7's "Task forces".
type taskForce struct {
	House      model.HouseID
	Ships      []*combatShip
	Facilities []*combatFacility
	Cloaked    map[model.SquadronID]bool
	Detected   map[model.SquadronID]bool
}

func newTaskForce(house model.HouseID) *taskForce {
	return &taskForce{House: house, Cloaked: make(map[model.SquadronID]bool), Detected: make(map[model.SquadronID]bool)}
}

// totalAS sums the current attack strength of every undestroyed
// participant, applying the 50% crippled multiplier, per spec.md §3/§4.7.
func (tf *taskForce) totalAS() float64 {
	total := 0.0
	for _, s := range tf.Ships {
		if tf.Cloaked[s.SquadronID] && !tf.Detected[s.SquadronID] {
			continue
		}
		total += s.AS * s.State.StrengthMultiplier()
	}
	for _, f := range tf.Facilities {
		if f.Destroyed {
			continue
		}
		total += f.AS
	}
	return total
}

func (tf *taskForce) alive() bool {
	return tf.totalAS() > 0
}

// shipClassStats looks up base AS/DS for a ship class from the ship
// registry; falls back to a flat default when the registry has no entry
// (e.g. in unit tests that construct ships without loading config),
// matching the teacher's defensive fallback pattern in
// internal/game/fleet_fight.go.
func shipClassStats(registry *model.Registry, class string) (as, ds float64) {
	if registry == nil {
		return 10, 10
	}
	desc, ok := registry.Get(class)
	if !ok {
		return 10, 10
	}
	as = float64(desc.AttackStrength)
	if as == 0 {
		as = 10
	}
	ds = float64(desc.DefenseStrength)
	if ds == 0 {
		ds = 10
	}
	return as, ds
}

// bucketForSquadron classifies a squadron into its targeting bucket.
// Raiders are identified by ship class name convention ("Raider*");
// everything else Combat-typed is a Capital unless it is a pure-escort
// composition, matching the teacher's class-name-driven dispatch
// (internal/model/upgradables_module.go uses name prefixes similarly).
func bucketForSquadron(shipID model.ShipID, class string, isFlagship bool) Bucket {
	if len(class) >= 6 && class[:6] == "Raider" {
		return RaiderBucket
	}
	if isFlagship {
		return CapitalBucket
	}
	return EscortBucket
}

// classifyParticipants splits every fleet in a system into mobile
// defenders, orbital defenders, and attackers, per spec.md §4.7.
// Intel-only fleets are excluded entirely.
func classifyParticipants(state *model.State, systemID model.SystemID) (owner model.HouseID, mobile, orbital, attackers []model.FleetID) {
	for _, cid := range state.ColoniesInSystem(systemID) {
		c, err := state.GetColony(cid)
		if err == nil && c.OwnerID != model.ZeroID {
			owner = c.OwnerID
			break
		}
	}

	for _, fid := range state.FleetsInSystem(systemID) {
		f, err := state.GetFleet(fid)
		if err != nil {
			continue
		}
		if isIntelOnlyFleet(state, f) {
			continue
		}

		if owner != model.ZeroID && f.OwnerID == owner {
			if f.Status == model.Active && (f.Order == nil || !f.Order.Kind.IsStationary()) {
				mobile = append(mobile, fid)
			} else {
				orbital = append(orbital, fid)
			}
			continue
		}
		attackers = append(attackers, fid)
	}

	sort.Slice(mobile, func(i, j int) bool { return mobile[i] < mobile[j] })
	sort.Slice(orbital, func(i, j int) bool { return orbital[i] < orbital[j] })
	sort.Slice(attackers, func(i, j int) bool { return attackers[i] < attackers[j] })
	return owner, mobile, orbital, attackers
}

func isIntelOnlyFleet(state *model.State, f *model.Fleet) bool {
	if len(f.SquadronIDs) == 0 {
		return false
	}
	for _, sqID := range f.SquadronIDs {
		sq, err := state.GetSquadron(sqID)
		if err != nil || sq.Type != model.IntelSquadronType {
			return false
		}
	}
	return true
}

// buildTaskForces flattens the given fleets (grouped by owner) into
// per-house task forces of Combat-class squadrons only, per spec.md
// §4.7: "Only Combat-class squadrons participate; Intel/Auxiliary/
// Expansion/Fighter squadrons are screened."
func buildTaskForces(state *model.State, shipRegistry *model.Registry, fleetIDs []model.FleetID) map[model.HouseID]*taskForce {
	forces := make(map[model.HouseID]*taskForce)
	for _, fid := range fleetIDs {
		f, err := state.GetFleet(fid)
		if err != nil {
			continue
		}
		tf, ok := forces[f.OwnerID]
		if !ok {
			tf = newTaskForce(f.OwnerID)
			forces[f.OwnerID] = tf
		}
		for _, sqID := range f.SquadronIDs {
			sq, err := state.GetSquadron(sqID)
			if err != nil || sq.Type != model.CombatSquadronType {
				continue
			}
			if sq.Cloaked {
				tf.Cloaked[sq.ID] = true
			}
			for _, shipID := range sq.Ships() {
				ship, err := state.GetShip(shipID)
				if err != nil || ship.State == model.Destroyed {
					continue
				}
				as, ds := shipClassStats(shipRegistry, ship.Class)
				tf.Ships = append(tf.Ships, &combatShip{
					ShipID:     ship.ID,
					SquadronID: sq.ID,
					Bucket:     bucketForSquadron(ship.ID, ship.Class, shipID == sq.Flagship),
					AS:         as,
					DS:         ds,
					State:      ship.State,
				})
			}
		}
	}
	return forces
}

// addStarbasesAndUnassigned folds colony starbases (Bucket Starbase,
// weight 2.0) and any unassigned squadrons into the defender's task
// force when transitioning into Orbital combat, per spec.md §4.7.
func addStarbasesAndUnassigned(state *model.State, tf *taskForce, owner model.HouseID, systemID model.SystemID) {
	for _, cid := range state.ColoniesInSystem(systemID) {
		c, err := state.GetColony(cid)
		if err != nil || c.OwnerID != owner {
			continue
		}
		for _, kid := range c.KastraIDs {
			k, err := state.GetKastra(kid)
			if err != nil || k.Destroyed {
				continue
			}
			tf.Facilities = append(tf.Facilities, &combatFacility{
				KastraID:       k.ID,
				AS:             float64(k.AttackStrength),
				DS:             float64(k.DefenseStrength),
				DetectionBonus: k.DetectionBonus,
				Crippled:       k.Crippled,
			})
		}
	}
}
