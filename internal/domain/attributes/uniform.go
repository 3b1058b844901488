package attributes

// Uniform builds a snapshot whose outfield groups all hold value v. When
// goalkeeper is true the Goalkeeping group is present with the same value.
func Uniform(v int, goalkeeper bool) *Snapshot {
	s := &Snapshot{
		Technical: &Technical{
			Crossing: v, Dribbling: v, Finishing: v, FirstTouch: v, Heading: v,
			LongShots: v, Marking: v, Passing: v, Tackling: v, Technique: v,
		},
		SetPieces: &SetPieces{
			Corners: v, FreeKickTaking: v, LongThrows: v, PenaltyTaking: v,
		},
		Mental: &Mental{
			Aggression: v, Anticipation: v, Bravery: v, Composure: v, Concentration: v,
			Decisions: v, Determination: v, Flair: v, Leadership: v, OffTheBall: v,
			Positioning: v, Teamwork: v, Vision: v, WorkRate: v,
		},
		Physical: &Physical{
			Acceleration: v, Agility: v, Balance: v, JumpingReach: v,
			NaturalFitness: v, Pace: v, Stamina: v, Strength: v,
		},
	}
	if goalkeeper {
		s.Goalkeeping = &Goalkeeping{
			AerialReach: v, CommandOfArea: v, Communication: v, Eccentricity: v,
			FirstTouch: v, Handling: v, Kicking: v, OneOnOnes: v, Passing: v,
			Punching: v, Reflexes: v, RushingOut: v, Throwing: v,
		}
	}
	return s
}
