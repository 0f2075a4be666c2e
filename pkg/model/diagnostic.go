package model

import "fmt"

type DiagnosticKind int

const (
	// Parse warnings
	InsufficientBatchTokens DiagnosticKind = iota
	InvalidBatchField
	InvalidJobIdToken

	// Constraint violations
	InvalidMachineType
	CapacityExceeded
	JobIdOutOfRange
	TimeWindowViolation
	DuplicateScheduling
	JobNotScheduled
)

var diagnosticKinds = map[DiagnosticKind]string{
	InsufficientBatchTokens: "InsufficientBatchTokens",
	InvalidBatchField:       "InvalidBatchField",
	InvalidJobIdToken:       "InvalidJobIdToken",
	InvalidMachineType:      "InvalidMachineType",
	CapacityExceeded:        "CapacityExceeded",
	JobIdOutOfRange:         "JobIdOutOfRange",
	TimeWindowViolation:     "TimeWindowViolation",
	DuplicateScheduling:     "DuplicateScheduling",
	JobNotScheduled:         "JobNotScheduled",
}

func (kind DiagnosticKind) String() string {
	if name, ok := diagnosticKinds[kind]; ok {
		return name
	}
	return fmt.Sprintf("DiagnosticKind(%d)", int(kind))
}

func (kind DiagnosticKind) IsWarning() bool {
	return kind <= InvalidJobIdToken
}

// Diagnostic describes one parse anomaly or constraint violation. Only the fields
// relevant to Kind are set. Batch is the 0-based position among parsed batches,
// Line the 1-based line of the solution file.
type Diagnostic struct {
	Kind        DiagnosticKind
	Line        int
	Token       string
	Batch       int
	Job         int
	Jobs        int
	MachineType int
	Capacity    int
	Size        int
	Time        int
	Release     int
	Deadline    int
}

func NewInsufficientBatchTokens(line int, text string) Diagnostic {
	return Diagnostic{Kind: InsufficientBatchTokens, Line: line, Token: text}
}

func NewInvalidBatchField(line int, token string) Diagnostic {
	return Diagnostic{Kind: InvalidBatchField, Line: line, Token: token}
}

func NewInvalidJobIdToken(line int, token string) Diagnostic {
	return Diagnostic{Kind: InvalidJobIdToken, Line: line, Token: token}
}

func NewInvalidMachineType(batch, machineType int) Diagnostic {
	return Diagnostic{Kind: InvalidMachineType, Batch: batch, MachineType: machineType}
}

func NewCapacityExceeded(batch, machineType, capacity, size int) Diagnostic {
	return Diagnostic{Kind: CapacityExceeded, Batch: batch, MachineType: machineType, Capacity: capacity, Size: size}
}

func NewJobIdOutOfRange(batch, job, jobs int) Diagnostic {
	return Diagnostic{Kind: JobIdOutOfRange, Batch: batch, Job: job, Jobs: jobs}
}

func NewTimeWindowViolation(batch, job, time, release, deadline int) Diagnostic {
	return Diagnostic{Kind: TimeWindowViolation, Batch: batch, Job: job, Time: time, Release: release, Deadline: deadline}
}

func NewDuplicateScheduling(batch, job int) Diagnostic {
	return Diagnostic{Kind: DuplicateScheduling, Batch: batch, Job: job}
}

func NewJobNotScheduled(job int) Diagnostic {
	return Diagnostic{Kind: JobNotScheduled, Job: job}
}

func (diagnostic Diagnostic) String() string {
	switch diagnostic.Kind {
	case InsufficientBatchTokens:
		return fmt.Sprintf("Insufficient data in batch line %d: %v", diagnostic.Line, diagnostic.Token)
	case InvalidBatchField:
		return fmt.Sprintf("Invalid time or machine type %q in batch line %d; line skipped.", diagnostic.Token, diagnostic.Line)
	case InvalidJobIdToken:
		return fmt.Sprintf("Invalid job id in solution: %v (batch line %d)", diagnostic.Token, diagnostic.Line)
	case InvalidMachineType:
		return fmt.Sprintf("Invalid machine type %d in batch %d.", diagnostic.MachineType, diagnostic.Batch)
	case CapacityExceeded:
		return fmt.Sprintf("Batch %d uses machine type %d with capacity %d but has %d jobs.", diagnostic.Batch, diagnostic.MachineType, diagnostic.Capacity, diagnostic.Size)
	case JobIdOutOfRange:
		return fmt.Sprintf("Job id %d in batch %d is out of valid range 1..%d", diagnostic.Job, diagnostic.Batch, diagnostic.Jobs)
	case TimeWindowViolation:
		return fmt.Sprintf("Batch %d scheduled at time %d does not satisfy job %d's time interval [%d, %d].", diagnostic.Batch, diagnostic.Time, diagnostic.Job, diagnostic.Release, diagnostic.Deadline)
	case DuplicateScheduling:
		return fmt.Sprintf("Job %d is scheduled more than once (again in batch %d).", diagnostic.Job, diagnostic.Batch)
	case JobNotScheduled:
		return fmt.Sprintf("Job %d is not scheduled in any batch.", diagnostic.Job)
	}
	return diagnostic.Kind.String()
}
