package driver

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/limaJavier/batchvalidator/internal/config"
	"github.com/limaJavier/batchvalidator/pkg/model"
	"github.com/limaJavier/batchvalidator/pkg/validator"

	"go.uber.org/zap"
)

const separator = "-------------------------------"

// Driver walks the numbered instance/solution pairs and writes one report block per index
type Driver struct {
	config    config.Config
	validator validator.Validator
	out       io.Writer
	logger    *zap.Logger
	writeErr  error
}

func New(config config.Config, out io.Writer, logger *zap.Logger) *Driver {
	return &Driver{
		config:    config,
		validator: validator.NewValidator(),
		out:       out,
		logger:    logger,
	}
}

// Run stops at the first missing instance file. Malformed files are reported and skipped;
// only failures to read an input or to write the report are returned.
func (driver *Driver) Run() error {
	for i := driver.config.First; i <= driver.config.Last; i++ {
		stop, err := driver.step(i)
		if err == nil {
			err = driver.writeErr
		}
		if err != nil {
			return err
		} else if stop {
			break
		}
	}
	return nil
}

func (driver *Driver) step(i int) (stop bool, err error) {
	instanceName, instancePath := driver.config.InstanceFile(i)
	solutionName, solutionPath := driver.config.SolutionFile(i)
	driver.printf("Validating %v with %v\n", instanceName, solutionName)

	//** Instance
	instance, err := model.InstanceFromFile(instancePath)
	if errors.Is(err, os.ErrNotExist) {
		driver.printf("%v not found. Terminating iteration.\n", instanceName)
		return true, nil
	}
	if err == nil && driver.config.Strict {
		if defects := instance.Validate(); defects != nil {
			err = &model.ParseError{Kind: model.MalformedInstance, File: instancePath, Err: defects}
		}
	}
	if err != nil {
		return false, driver.fail(instanceName, err)
	}

	//** Solution
	solution, warnings, err := model.SolutionFromFile(solutionPath)
	if errors.Is(err, os.ErrNotExist) {
		driver.printf("Warning: %v does not exist. Skipping.\n", solutionName)
		driver.printf("%v\n", separator)
		return false, nil
	} else if err != nil {
		return false, driver.fail(solutionName, err)
	}

	//** Validation
	report := driver.validator.Validate(instance, solution, warnings)
	for _, line := range report.Lines() {
		driver.printf("%v\n", line)
	}
	if report.Feasible {
		driver.printf("Constraints are satisfied in %v\n", solutionName)
	} else {
		driver.printf("Constraint violations found in %v\n", solutionName)
	}
	driver.printf("%v\n", separator)

	driver.logger.Debug("solution validated",
		zap.String("instance", instanceName),
		zap.String("solution", solutionName),
		zap.Bool("feasible", report.Feasible),
		zap.Int("diagnostics", len(report.Diagnostics)),
	)
	return false, nil
}

// fail reports a parse error and lets iteration go on; any other error aborts the run
func (driver *Driver) fail(name string, err error) error {
	var parseErr *model.ParseError
	if !errors.As(err, &parseErr) {
		driver.logger.Error("cannot read input file", zap.String("file", name), zap.Error(err))
		return fmt.Errorf("cannot process %v: %w", name, err)
	}

	driver.printf("Error while processing %v: %v\n", name, parseErr.Reason())
	driver.printf("%v\n", separator)
	driver.logger.Debug("input rejected", zap.String("file", name), zap.Stringer("kind", parseErr.Kind))
	return nil
}

// printf keeps the first write error, later writes are dropped
func (driver *Driver) printf(format string, args ...any) {
	if driver.writeErr != nil {
		return
	}
	if _, err := fmt.Fprintf(driver.out, format, args...); err != nil {
		driver.writeErr = fmt.Errorf("cannot write report: %w", err)
	}
}
