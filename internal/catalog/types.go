package catalog

// #region posture

// Posture is the coarse physical configuration of the robot.
// The empty value (Any) means "unconstrained" when used as an entry
// requirement and "posture preserved" when used as an exit.
type Posture string

const (
	Standing Posture = "standing"
	Sitting  Posture = "sitting"
	Any      Posture = ""
)

// Compatible reports whether posture p satisfies the requirement req.
func Compatible(p, req Posture) bool {
	return req == Any || p == req
}

// #endregion posture

// #region move

// Move is an immutable catalog entry for one intermediate move.
type Move struct {
	ID       string  `json:"id"`
	Duration float64 `json:"duration"` // seconds, > 0
	Entry    Posture `json:"entry"`    // required posture before the move
	Exit     Posture `json:"exit"`     // posture after the move; Any = unchanged
}

// ExitFrom returns the posture after executing m from posture p.
func (m Move) ExitFrom(p Posture) Posture {
	if m.Exit == Any {
		return p
	}
	return m.Exit
}

// #endregion move

// #region pose

// Pose is a mandatory checkpoint the choreography must pass through.
type Pose struct {
	ID       string  `json:"id"`
	Duration float64 `json:"duration"` // seconds, >= 0
	Entry    Posture `json:"entry"`    // posture required before the pose
	Exit     Posture `json:"exit"`     // posture after the pose; Any = unchanged
}

// ExitFrom returns the posture after executing the pose from posture p.
func (p Pose) ExitFrom(cur Posture) Posture {
	if p.Exit == Any {
		return cur
	}
	return p.Exit
}

// #endregion pose
