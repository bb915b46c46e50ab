package hadcm3

import (
	"github.com/vk/modelopt/internal/edit"
	"github.com/vk/modelopt/internal/producer"
	"github.com/zclconf/go-cty/cty"
)

const (
	exptIDLen = 4
	// historySuffix completes the job name recorded in the history file.
	historySuffix = "000"
)

// RunName splits a five character UM run name such as "xhaaa" into the
// experiment id "xhaa" and job id "a" and records it in the control,
// continuation and history files.
type RunName struct {
	control      producer.Target
	continuation producer.Target
	history      producer.Target
}

// NewRunName returns the run identity producer.
func NewRunName() *RunName {
	return &RunName{
		control:      producer.Target{File: "CNTLALL", Group: "NLSTCALL"},
		continuation: producer.Target{File: "CONTCNTL", Group: "NLSTCALL"},
		history:      producer.Target{File: "INITHIS", Group: "NLCHISTO"},
	}
}

// Targets implements producer.Targeter.
func (r *RunName) Targets() []producer.Target {
	return []producer.Target{r.control, r.continuation, r.history}
}

// Produce implements producer.Producer.
func (r *RunName) Produce(value cty.Value) ([]edit.Edit, error) {
	name, err := producer.String(value)
	if err != nil {
		return nil, err
	}
	runes := []rune(name)
	if len(runes) <= exptIDLen {
		return nil, producer.Domainf("run name %q needs at least %d characters", name, exptIDLen+1)
	}
	exptID := cty.StringVal(string(runes[:exptIDLen]))
	jobID := cty.StringVal(string(runes[exptIDLen]))

	return []edit.Edit{
		r.control.Edit("EXPT_ID", exptID),
		r.control.Edit("JOB_ID", jobID),
		r.continuation.Edit("EXPT_ID", exptID),
		r.continuation.Edit("JOBID_ID", jobID),
		r.history.Edit("RUN_JOB_NAME", cty.StringVal(name+historySuffix)),
	}, nil
}
