package game

// Entity geometry and timing, in canvas units and frames.
const (
	ShipWidth    = 20.0
	ShipHeight   = 30.0
	ShipSize     = 1.0
	ShipSpeed    = 0.5 // per frame, before the speed factor
	MinShipSpeed = 1.0 // smallest speed factor a ship spawns with
	ShipSpawnY   = -30.0
	SpawnMargin  = 50.0
	QuestionGap  = 8.0

	BeamLife  = 20
	BeamWidth = 3.0

	BaseRadius    = 40.0
	ShieldRadius  = 45.0
	ShieldSpacing = 8.0

	// Misses land somewhere above this band at the bottom of the field.
	MissBand = 100.0

	// A correct answer scores (fieldHeight - shipY) / ScoreDivisor.
	ScoreDivisor = 4.0

	ScoreX          = 20.0
	ScoreBottom     = 40.0
	ScoreLineHeight = 30.0
	InputBottom     = 10.0
)
