package analyzer

// Stage is a step of the per-request pipeline. Stages run strictly in declaration
// order; Failed is only reachable from Validating.
type Stage int

const (
	StageValidating Stage = iota
	StageSegmenting
	StageBuildingVocabulary
	StageVectorizing
	StageScoring
	StageAssembling
	StageDone
	StageFailed
)

var stageNames = [...]string{
	StageValidating:         "validating",
	StageSegmenting:         "segmenting",
	StageBuildingVocabulary: "building_vocabulary",
	StageVectorizing:        "vectorizing",
	StageScoring:            "scoring",
	StageAssembling:         "assembling",
	StageDone:               "done",
	StageFailed:             "failed",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}
