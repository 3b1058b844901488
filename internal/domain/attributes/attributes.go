// Package attributes models a player's measured attribute snapshot and
// resolves canonical attribute names to values.
//
// All attribute values live on a 0-20 scale. A nil attribute group means the
// group is absent from the snapshot; every attribute read from an absent
// group resolves to zero.
package attributes

// MaxValue is the highest value any attribute can take.
const MaxValue = 20

// Technical holds outfield technical attributes.
type Technical struct {
	Crossing   int
	Dribbling  int
	Finishing  int
	FirstTouch int
	Heading    int
	LongShots  int
	Marking    int
	Passing    int
	Tackling   int
	Technique  int
}

// SetPieces holds dead-ball attributes.
type SetPieces struct {
	Corners        int
	FreeKickTaking int
	LongThrows     int
	PenaltyTaking  int
}

// Mental holds mental attributes.
type Mental struct {
	Aggression    int
	Anticipation  int
	Bravery       int
	Composure     int
	Concentration int
	Decisions     int
	Determination int
	Flair         int
	Leadership    int
	OffTheBall    int
	Positioning   int
	Teamwork      int
	Vision        int
	WorkRate      int
}

// Physical holds physical attributes.
type Physical struct {
	Acceleration   int
	Agility        int
	Balance        int
	JumpingReach   int
	NaturalFitness int
	Pace           int
	Stamina        int
	Strength       int
}

// Goalkeeping holds goalkeeper-only attributes. Only goalkeepers carry this group.
type Goalkeeping struct {
	AerialReach   int
	CommandOfArea int
	Communication int
	Eccentricity  int
	FirstTouch    int
	Handling      int
	Kicking       int
	OneOnOnes     int
	Passing       int
	Punching      int
	Reflexes      int
	RushingOut    int
	Throwing      int
}

// Snapshot is a player's attribute state at a point in time, plus the
// descriptive fields scouted alongside it.
type Snapshot struct {
	SourceFilename    string
	GameDate          string
	Personality       string
	PlayingTime       string
	Age               int
	TransferValueLow  int
	TransferValueHigh int
	Wage              string
	ContractExpiry    string

	Technical   *Technical   `json:",omitempty"`
	SetPieces   *SetPieces   `json:",omitempty"`
	Mental      *Mental      `json:",omitempty"`
	Physical    *Physical    `json:",omitempty"`
	Goalkeeping *Goalkeeping `json:",omitempty"`
}

// IsGoalkeeper reports whether the snapshot carries goalkeeping attributes.
// Role scoring never gates on this; goalkeeper roles self-select through
// their weights because absent groups resolve to zero.
func (s *Snapshot) IsGoalkeeper() bool {
	return s != nil && s.Goalkeeping != nil
}
