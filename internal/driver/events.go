package driver

// Stage identifies a step of the per-file pipeline.
type Stage uint8

const (
	StageLoad Stage = iota
	StageParse
	StageAnalyze
)

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "load"
	case StageParse:
		return "parse"
	case StageAnalyze:
		return "analyze"
	default:
		return "stage(?)"
	}
}

// Status is the state of a file within a stage.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
	StatusCached
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusWorking:
		return "working"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	case StatusCached:
		return "cached"
	default:
		return "status(?)"
	}
}

// Event reports per-file progress. An empty File describes the run as a
// whole.
type Event struct {
	File   string
	Stage  Stage
	Status Status
}

func (d *Driver) emit(ev Event) {
	if d.opts.Events != nil {
		d.opts.Events <- ev
	}
}
