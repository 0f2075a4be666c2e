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

type Batch struct {
	Time        int
	MachineType int   // 0-based
	Jobs        []int // 1-based job ids, kept in file order including duplicates
}

type Solution struct {
	Batches []Batch
}

func SolutionFromFile(file string) (Solution, []Diagnostic, error) {
	reader, err := os.Open(file)
	if err != nil {
		return Solution{}, nil, err
	}
	defer reader.Close()

	solution, warnings, err := ParseSolution(reader)
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		parseErr.File = file
	}
	return solution, warnings, err
}

// ParseSolution reads a header line holding the number of batch lines B followed by
// B lines of the form "time machineType job...". Malformed batch lines are skipped
// and malformed job ids dropped, each producing a warning; lines past B are ignored.
func ParseSolution(reader io.Reader) (Solution, []Diagnostic, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxTokenSize)

	//** Header
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return Solution{}, nil, solutionReadError(err, 1)
		}
		return Solution{}, nil, &ParseError{Kind: EmptySolution, Err: errors.New("solution file is empty")}
	}
	header := strings.TrimSpace(scanner.Text())
	batchCount, err := strconv.Atoi(header)
	if err != nil {
		return Solution{}, nil, &ParseError{Kind: MalformedSolutionHeader, Line: 1, Err: fmt.Errorf("first line should be the number of batches, got %q", header)}
	} else if batchCount < 0 {
		return Solution{}, nil, &ParseError{Kind: MalformedSolutionHeader, Line: 1, Err: fmt.Errorf("number of batches must not be negative: %d", batchCount)}
	}

	//** Batch lines
	batches := make([]Batch, 0, min(batchCount, maxPrealloc))
	warnings := make([]Diagnostic, 0)
	for i := range batchCount {
		line := i + 2 // Header is line 1
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return Solution{}, nil, solutionReadError(err, line)
			}
			return Solution{}, nil, &ParseError{Kind: SolutionTruncated, Line: line, Err: fmt.Errorf("expected %d batch lines, but got %d", batchCount, i)}
		}

		text := scanner.Text()
		tokens := strings.Fields(text)
		if len(tokens) < 3 {
			warnings = append(warnings, NewInsufficientBatchTokens(line, strings.TrimSpace(text)))
			continue
		}

		time, err := strconv.Atoi(tokens[0])
		if err != nil {
			warnings = append(warnings, NewInvalidBatchField(line, tokens[0]))
			continue
		}
		machineType, err := strconv.Atoi(tokens[1])
		if err != nil {
			warnings = append(warnings, NewInvalidBatchField(line, tokens[1]))
			continue
		}

		jobs := make([]int, 0, len(tokens)-2)
		for _, token := range tokens[2:] {
			job, err := strconv.Atoi(token)
			if err != nil {
				warnings = append(warnings, NewInvalidJobIdToken(line, token))
				continue
			}
			jobs = append(jobs, job)
		}

		batches = append(batches, Batch{Time: time, MachineType: machineType, Jobs: jobs})
	}

	return Solution{Batches: batches}, warnings, nil
}

func solutionReadError(err error, line int) error {
	if errors.Is(err, bufio.ErrTooLong) {
		kind := SolutionTruncated
		if line == 1 {
			kind = MalformedSolutionHeader
		}
		return &ParseError{Kind: kind, Line: line, Err: fmt.Errorf("line exceeds %d bytes", maxTokenSize)}
	}
	return fmt.Errorf("cannot read solution: %w", err)
}
