package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	maxTokenSize = 16 * 1024 * 1024
	maxPrealloc  = 1 << 16
)

type Job struct {
	Release  int
	Deadline int
}

type MachineType struct {
	Cost     int
	Capacity int
}

// Jobs are identified by their 1-based position, machine types by their 0-based position
type Instance struct {
	Jobs         []Job
	MachineTypes []MachineType
}

// Job returns the job with the given 1-based id
func (instance Instance) Job(id int) (Job, bool) {
	if id < 1 || id > len(instance.Jobs) {
		return Job{}, false
	}
	return instance.Jobs[id-1], true
}

// MachineType returns the machine type at the given 0-based index
func (instance Instance) MachineType(index int) (MachineType, bool) {
	if index < 0 || index >= len(instance.MachineTypes) {
		return MachineType{}, false
	}
	return instance.MachineTypes[index], true
}

// Validate reports semantic defects the parser tolerates: negative release times,
// deadlines before releases, negative costs and capacities below one.
func (instance Instance) Validate() error {
	defects := make([]string, 0)
	for i, job := range instance.Jobs {
		if job.Release < 0 {
			defects = append(defects, fmt.Sprintf("job %d has negative release time %d", i+1, job.Release))
		}
		if job.Deadline < job.Release {
			defects = append(defects, fmt.Sprintf("job %d has deadline %d before its release time %d", i+1, job.Deadline, job.Release))
		}
	}
	for i, machineType := range instance.MachineTypes {
		if machineType.Cost < 0 {
			defects = append(defects, fmt.Sprintf("machine type %d has negative cost %d", i, machineType.Cost))
		}
		if machineType.Capacity < 1 {
			defects = append(defects, fmt.Sprintf("machine type %d has capacity %d, must be at least 1", i, machineType.Capacity))
		}
	}

	if len(defects) == 0 {
		return nil
	}
	return errors.New(strings.Join(defects, "; ")) // Kept on one line for the report
}

func InstanceFromFile(file string) (Instance, error) {
	reader, err := os.Open(file)
	if err != nil {
		return Instance{}, err
	}
	defer reader.Close()

	instance, err := ParseInstance(reader)
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		parseErr.File = file
	}
	return instance, err
}

// ParseInstance reads whitespace-separated integers: n, n (release, deadline) pairs,
// K, K (cost, capacity) pairs. Nothing but whitespace may follow.
func ParseInstance(reader io.Reader) (Instance, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxTokenSize)
	scanner.Split(bufio.ScanWords)

	next := func(format string, args ...any) (int, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, instanceReadError(err)
			}
			return 0, malformedInstance(fmt.Errorf("unexpected end of input while reading %v", fmt.Sprintf(format, args...)))
		}
		token := scanner.Text()
		value, err := strconv.Atoi(token)
		if err != nil {
			return 0, malformedInstance(fmt.Errorf("invalid integer %q for %v", token, fmt.Sprintf(format, args...)))
		}
		return value, nil
	}

	//** Jobs
	jobCount, err := next("job count")
	if err != nil {
		return Instance{}, err
	} else if jobCount < 0 {
		return Instance{}, malformedInstance(fmt.Errorf("job count must not be negative: %d", jobCount))
	}

	jobs := make([]Job, 0, min(jobCount, maxPrealloc))
	for j := range jobCount {
		release, err := next("release time of job %d", j+1)
		if err != nil {
			return Instance{}, err
		}
		deadline, err := next("deadline of job %d", j+1)
		if err != nil {
			return Instance{}, err
		}
		jobs = append(jobs, Job{Release: release, Deadline: deadline})
	}

	//** Machine types
	machineTypeCount, err := next("machine type count")
	if err != nil {
		return Instance{}, err
	} else if machineTypeCount < 1 {
		return Instance{}, malformedInstance(fmt.Errorf("machine type count must be at least 1: %d", machineTypeCount))
	}

	machineTypes := make([]MachineType, 0, min(machineTypeCount, maxPrealloc))
	for k := range machineTypeCount {
		cost, err := next("cost of machine type %d", k)
		if err != nil {
			return Instance{}, err
		}
		capacity, err := next("capacity of machine type %d", k)
		if err != nil {
			return Instance{}, err
		}
		machineTypes = append(machineTypes, MachineType{Cost: cost, Capacity: capacity})
	}

	// Only trailing whitespace is permitted
	if scanner.Scan() {
		return Instance{}, malformedInstance(fmt.Errorf("unexpected trailing token %q", scanner.Text()))
	} else if err := scanner.Err(); err != nil {
		return Instance{}, instanceReadError(err)
	}

	return Instance{Jobs: jobs, MachineTypes: machineTypes}, nil
}

func malformedInstance(err error) *ParseError {
	return &ParseError{Kind: MalformedInstance, Err: err}
}

// An oversized token is bad content, anything else is a failing stream
func instanceReadError(err error) error {
	if errors.Is(err, bufio.ErrTooLong) {
		return malformedInstance(fmt.Errorf("token exceeds %d bytes", maxTokenSize))
	}
	return fmt.Errorf("cannot read instance: %w", err)
}
