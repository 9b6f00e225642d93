package catalog

// #region builtin-moves

// Builtin returns the stock NAO move catalog shipped with the planner.
// Durations are the measured runtimes of the corresponding NaoMoves scripts.
func Builtin() *Catalog {
	c, err := New([]Move{
		{ID: "1-Rotation_handgun_object", Duration: 3.2},
		{ID: "4-Arms_opening", Duration: 10, Entry: Standing, Exit: Standing},
		{ID: "5-Union_arms", Duration: 7.08},
		{ID: "7-Move_forward", Duration: 3.1, Entry: Standing, Exit: Standing},
		{ID: "8-Move_backward", Duration: 3.1, Entry: Standing, Exit: Standing},
		{ID: "9-Diagonal_left", Duration: 2.82, Entry: Standing, Exit: Standing},
		{ID: "10-Diagonal_right", Duration: 2.42, Entry: Standing, Exit: Standing},
		{ID: "BlowKisses", Duration: 5.27},
		{ID: "AirGuitar", Duration: 4.18, Entry: Standing, Exit: Standing},
		{ID: "DanceMove", Duration: 6.16, Entry: Standing, Exit: Standing},
		{ID: "Rhythm", Duration: 3.61, Entry: Standing, Exit: Standing},
		{ID: "SprinklerL", Duration: 4.14, Entry: Standing, Exit: Standing},
		{ID: "SprinklerR", Duration: 4.17, Entry: Standing, Exit: Standing},
		{ID: "StandUp", Duration: 9.11, Entry: Sitting, Exit: Standing},
		{ID: "Wave", Duration: 3.72},
		{ID: "Glory", Duration: 3.44},
		{ID: "Clap", Duration: 4.13},
		{ID: "Joy", Duration: 5.0},
		{ID: "Sit_Quick", Duration: 8.0, Entry: Standing, Exit: Sitting},
	})
	if err != nil {
		// The builtin catalog is fixed data; a validation failure here is a bug.
		panic(err)
	}
	return c
}

// #endregion builtin-moves

// #region builtin-poses

// BuiltinStartPose returns the fixed opening pose of the exhibition.
func BuiltinStartPose() Pose {
	return Pose{ID: "14-StandInit", Duration: 1.14, Exit: Standing}
}

// BuiltinMandatoryPoses returns the stock mandatory checkpoints, in their
// default order. Callers may reorder them before planning.
func BuiltinMandatoryPoses() []Pose {
	return []Pose{
		{ID: "WipeForehead", Duration: 4.6, Entry: Standing, Exit: Standing},
		{ID: "Hello", Duration: 4.38, Entry: Standing, Exit: Standing},
		{ID: "16-Sit", Duration: 17, Entry: Standing, Exit: Sitting},
		{ID: "17-SitRelax", Duration: 15, Entry: Sitting, Exit: Sitting},
		{ID: "11-Stand", Duration: 1.96, Entry: Standing, Exit: Standing},
		{ID: "15-StandZero", Duration: 1.9, Entry: Standing, Exit: Standing},
	}
}

// BuiltinFinalPose returns the fixed closing pose of the exhibition.
func BuiltinFinalPose() Pose {
	return Pose{ID: "6-Crouch", Duration: 2.46, Entry: Standing, Exit: Standing}
}

// #endregion builtin-poses
