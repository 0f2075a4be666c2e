package validator

import (
	"strings"
	"testing"

	"github.com/limaJavier/batchvalidator/pkg/model"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, instanceText, solutionText string) (model.Instance, model.Solution, []model.Diagnostic) {
	t.Helper()
	instance, err := model.ParseInstance(strings.NewReader(instanceText))
	require.NoError(t, err)
	solution, warnings, err := model.ParseSolution(strings.NewReader(solutionText))
	require.NoError(t, err)
	return instance, solution, warnings
}

func validate(t *testing.T, instanceText, solutionText string) Report {
	t.Helper()
	instance, solution, warnings := parse(t, instanceText, solutionText)
	return NewValidator().Validate(instance, solution, warnings)
}

func TestMinimalFeasible(t *testing.T) {
	report := validate(t, "1\n0 5\n1\n1 1\n", "1\n3 0 1\n")

	assert.True(t, report.Feasible)
	assert.Empty(t, report.Diagnostics)
	assert.Empty(t, report.Lines())
}

func TestTimeWindowViolation(t *testing.T) {
	report := validate(t, "1\n0 2\n1\n1 1\n", "1\n3 0 1\n")

	assert.False(t, report.Feasible)
	assert.Equal(t, []model.Diagnostic{model.NewTimeWindowViolation(0, 1, 3, 0, 2)}, report.Diagnostics)
}

func TestCapacityExceeded(t *testing.T) {
	report := validate(t, "3\n0 10\n0 10\n0 10\n1\n1 2\n", "1\n5 0 1 2 3\n")

	assert.False(t, report.Feasible)
	assert.Equal(t, []model.Diagnostic{model.NewCapacityExceeded(0, 0, 2, 3)}, report.Diagnostics)
}

func TestDuplicateScheduling(t *testing.T) {
	report := validate(t, "2\n0 10\n0 10\n1\n1 5\n", "2\n1 0 1\n2 0 1 2\n")

	assert.False(t, report.Feasible)
	assert.Equal(t, []model.Diagnostic{model.NewDuplicateScheduling(1, 1)}, report.Diagnostics)
}

func TestDuplicateWithinBatch(t *testing.T) {
	report := validate(t, "2\n0 10\n0 10\n1\n1 5\n", "1\n1 0 2 1 2\n")

	assert.Equal(t, []model.Diagnostic{model.NewDuplicateScheduling(0, 2)}, report.Diagnostics)
}

func TestJobNotScheduled(t *testing.T) {
	report := validate(t, "2\n0 10\n0 10\n1\n1 5\n", "1\n1 0 1\n")

	assert.False(t, report.Feasible)
	assert.Equal(t, []model.Diagnostic{model.NewJobNotScheduled(2)}, report.Diagnostics)
}

func TestInvalidMachineType(t *testing.T) {
	g := NewWithT(t)

	// Batch 0 would also exceed capacity and violate job 1's window if its machine type were checked
	report := validate(t, "2\n0 10\n0 10\n1\n1 1\n", "2\n20 5 1 1\n1 0 2\n")

	g.Expect(report.Feasible).To(BeFalse())
	g.Expect(report.Diagnostics).To(Equal([]model.Diagnostic{
		model.NewInvalidMachineType(0, 5),
		model.NewJobNotScheduled(1),
	}))
}

func TestNegativeMachineType(t *testing.T) {
	report := validate(t, "1\n0 10\n1\n1 1\n", "1\n1 -1 1\n")

	assert.Equal(t, []model.Diagnostic{
		model.NewInvalidMachineType(0, -1),
		model.NewJobNotScheduled(1),
	}, report.Diagnostics)
}

func TestJobIdOutOfRange(t *testing.T) {
	report := validate(t, "2\n0 10\n0 10\n1\n1 5\n", "1\n1 0 0 1 3 -4 2\n")

	assert.Equal(t, []model.Diagnostic{
		model.NewJobIdOutOfRange(0, 0, 2),
		model.NewJobIdOutOfRange(0, 3, 2),
		model.NewJobIdOutOfRange(0, -4, 2),
	}, report.Diagnostics)
}

func TestTimeWindowBoundaries(t *testing.T) {
	const instance = "1\n2 4\n1\n1 1\n"

	for _, accepted := range []string{"2", "3", "4"} {
		report := validate(t, instance, "1\n"+accepted+" 0 1\n")
		assert.True(t, report.Feasible, "time %v", accepted)
	}

	for _, rejected := range []string{"1", "5"} {
		report := validate(t, instance, "1\n"+rejected+" 0 1\n")
		assert.False(t, report.Feasible, "time %v", rejected)
		require.Len(t, report.Diagnostics, 1)
		assert.Equal(t, model.TimeWindowViolation, report.Diagnostics[0].Kind)
	}
}

func TestCapacityBoundary(t *testing.T) {
	const instance = "4\n0 9\n0 9\n0 9\n0 9\n1\n7 3\n"

	atCapacity := validate(t, instance, "2\n1 0 1 2 3\n1 0 4\n")
	assert.True(t, atCapacity.Feasible)

	overCapacity := validate(t, instance, "1\n1 0 1 2 3 4\n")
	assert.Equal(t, []model.Diagnostic{model.NewCapacityExceeded(0, 0, 3, 4)}, overCapacity.Diagnostics)
}

func TestTimeViolationStillCountsAsScheduled(t *testing.T) {
	// A job outside its window is reported once, neither as unscheduled nor duplicated
	report := validate(t, "1\n0 1\n1\n1 1\n", "1\n9 0 1\n")

	assert.Equal(t, []model.Diagnostic{model.NewTimeWindowViolation(0, 1, 9, 0, 1)}, report.Diagnostics)
}

func TestDiagnosticOrder(t *testing.T) {
	g := NewWithT(t)

	//** Arrange
	instanceText := "3\n0 10\n0 10\n0 10\n1\n1 2\n"
	solutionText := strings.Join([]string{
		"4",
		"11 0 1 9 1",
		"3 7 2",
		"nope",
		"4 0 x",
	}, "\n")

	//** Act
	report := validate(t, instanceText, solutionText)

	//** Assert
	g.Expect(report.Feasible).To(BeFalse())
	g.Expect(report.Diagnostics).To(HaveExactElements(
		// Parser warnings in file order
		model.NewInsufficientBatchTokens(4, "nope"),
		model.NewInvalidJobIdToken(5, "x"),
		// Batch 0: capacity before per-job checks, jobs in listed order
		model.NewCapacityExceeded(0, 0, 2, 3),
		model.NewTimeWindowViolation(0, 1, 11, 0, 10),
		model.NewJobIdOutOfRange(0, 9, 3),
		model.NewTimeWindowViolation(0, 1, 11, 0, 10),
		model.NewDuplicateScheduling(0, 1),
		// Batch 1
		model.NewInvalidMachineType(1, 7),
		// Coverage in ascending job id
		model.NewJobNotScheduled(2),
		model.NewJobNotScheduled(3),
	))
	g.Expect(report.Lines()).To(HaveLen(len(report.Diagnostics)))
	g.Expect(report.Lines()[0]).To(Equal("Insufficient data in batch line 4: nope"))
}

func TestWarningsAloneMakeSolutionInfeasible(t *testing.T) {
	report := validate(t, "1\n0 10\n1\n1 5\n", "2\n1 0 1 ?\n2 0\n")

	assert.False(t, report.Feasible)
	assert.Equal(t, []model.Diagnostic{
		model.NewInvalidJobIdToken(2, "?"),
		model.NewInsufficientBatchTokens(3, "2 0"),
	}, report.Diagnostics)
}

func TestEmptyInstanceAndSolution(t *testing.T) {
	report := validate(t, "0\n1\n1 1\n", "0\n")

	assert.True(t, report.Feasible)
	assert.NotNil(t, report.Diagnostics)
	assert.Empty(t, report.Diagnostics)
}

func TestValidateDoesNotModifyWarnings(t *testing.T) {
	instance, solution, _ := parse(t, "1\n0 10\n1\n1 5\n", "0\n")
	warnings := make([]model.Diagnostic, 1, 4)
	warnings[0] = model.NewInvalidJobIdToken(2, "x")

	report := NewValidator().Validate(instance, solution, warnings)

	assert.Equal(t, []model.Diagnostic{model.NewInvalidJobIdToken(2, "x")}, warnings)
	assert.Equal(t, []model.Diagnostic{
		model.NewInvalidJobIdToken(2, "x"),
		model.NewJobNotScheduled(1),
	}, report.Diagnostics)
}

func TestGeneratedSolutionsAreFeasible(t *testing.T) {
	g := NewWithT(t)
	validator := NewValidator()

	for range 20 {
		instance := model.GenerateInstance(50, 4, 30)
		solution := model.GenerateSolution(instance)

		report := validator.Validate(instance, solution, nil)

		g.Expect(report.Diagnostics).To(BeEmpty())
		g.Expect(report.Feasible).To(BeTrue())
	}
}

func TestValidationIsIdempotentAndSound(t *testing.T) {
	g := NewWithT(t)
	validator := NewValidator()

	for range 20 {
		//** Arrange
		instance := model.GenerateInstance(20, 2, 15)
		solution := model.GenerateSolution(instance)
		// Corrupt the solution: drop a batch, repeat another, shift one in time
		if len(solution.Batches) > 2 {
			solution.Batches = append(solution.Batches[1:], solution.Batches[1])
			solution.Batches[0].Time += 16
		}

		//** Act
		first := validator.Validate(instance, solution, nil)
		second := validator.Validate(instance, solution, nil)

		//** Assert
		g.Expect(second).To(Equal(first))
		g.Expect(second.Lines()).To(Equal(first.Lines()))
		g.Expect(first.Feasible).To(Equal(len(first.Diagnostics) == 0))
	}
}
