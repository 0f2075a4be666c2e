package validator

import (
	"github.com/limaJavier/batchvalidator/pkg/model"

	"github.com/samber/lo"
)

type Report struct {
	Feasible    bool
	Diagnostics []model.Diagnostic
}

// Lines renders every diagnostic in report order
func (report Report) Lines() []string {
	return lo.Map(report.Diagnostics, func(diagnostic model.Diagnostic, _ int) string {
		return diagnostic.String()
	})
}

type Validator interface {
	// Validate checks the solution against the instance. The parser warnings lead the
	// report and count as violations.
	Validate(
		instance model.Instance,
		solution model.Solution,
		warnings []model.Diagnostic,
	) Report
}

type batchValidator struct{}

func NewValidator() Validator {
	return &batchValidator{}
}

func (validator *batchValidator) Validate(instance model.Instance, solution model.Solution, warnings []model.Diagnostic) Report {
	diagnostics := make([]model.Diagnostic, 0, len(warnings))
	diagnostics = append(diagnostics, warnings...)
	diagnostics = append(diagnostics, check(instance, solution)...)

	return Report{
		Feasible:    len(diagnostics) == 0,
		Diagnostics: diagnostics,
	}
}

func check(instance model.Instance, solution model.Solution) []model.Diagnostic {
	jobs := len(instance.Jobs)
	scheduled := make([]bool, jobs) // scheduled[j] is true once job j+1 appeared in a batch with a valid machine type
	diagnostics := make([]model.Diagnostic, 0)

	for index, batch := range solution.Batches {
		// Without a machine record neither capacity nor jobs can be checked. Jobs are not
		// marked so that they surface as unscheduled.
		machineType, ok := instance.MachineType(batch.MachineType)
		if !ok {
			diagnostics = append(diagnostics, model.NewInvalidMachineType(index, batch.MachineType))
			continue
		}

		if len(batch.Jobs) > machineType.Capacity {
			diagnostics = append(diagnostics, model.NewCapacityExceeded(index, batch.MachineType, machineType.Capacity, len(batch.Jobs)))
		}

		for _, id := range batch.Jobs {
			job, ok := instance.Job(id)
			if !ok {
				diagnostics = append(diagnostics, model.NewJobIdOutOfRange(index, id, jobs))
				continue
			}

			// Closed window: r <= t <= d
			if batch.Time < job.Release || batch.Time > job.Deadline {
				diagnostics = append(diagnostics, model.NewTimeWindowViolation(index, id, batch.Time, job.Release, job.Deadline))
			}

			// Uniqueness spans all batches, a repeat inside the same batch included
			if scheduled[id-1] {
				diagnostics = append(diagnostics, model.NewDuplicateScheduling(index, id))
			}
			scheduled[id-1] = true
		}
	}

	//** Coverage
	unscheduled := lo.Filter(lo.RangeFrom(1, jobs), func(id int, _ int) bool {
		return !scheduled[id-1]
	})
	for _, id := range unscheduled {
		diagnostics = append(diagnostics, model.NewJobNotScheduled(id))
	}

	return diagnostics
}
