package domain

// Stage names a step of the dedup pipeline.
type Stage string

// Pipeline stages, in execution order.
const (
	StageNormalise Stage = "normalise"
	StageWalk      Stage = "walk"
	StageHash      Stage = "hash"
	StageDelete    Stage = "delete"
)

// String returns the stage name.
func (s Stage) String() string {
	return string(s)
}
