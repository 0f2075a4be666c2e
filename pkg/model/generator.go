package model

import (
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// GenerateInstance builds a random instance whose time windows lie within [0, horizon]
func GenerateInstance(jobs, machineTypes, horizon int) Instance {
	instance := Instance{
		Jobs:         make([]Job, jobs),
		MachineTypes: make([]MachineType, machineTypes),
	}

	for j := range jobs {
		release := rand.IntN(horizon + 1)
		deadline := release + rand.IntN(horizon-release+1)
		instance.Jobs[j] = Job{Release: release, Deadline: deadline}
	}

	for k := range machineTypes {
		instance.MachineTypes[k] = MachineType{
			Cost:     rand.IntN(100),
			Capacity: 1 + rand.IntN(5),
		}
	}

	return instance
}

// GenerateSolution builds a feasible solution: jobs sharing a release time are packed,
// in id order, into batches of the largest machine type run at that release time.
func GenerateSolution(instance Instance) Solution {
	largest := 0
	for k, machineType := range instance.MachineTypes {
		if machineType.Capacity > instance.MachineTypes[largest].Capacity {
			largest = k
		}
	}
	capacity := max(instance.MachineTypes[largest].Capacity, 1)

	ids := lo.RangeFrom(1, len(instance.Jobs))
	byRelease := lo.GroupBy(ids, func(id int) int { return instance.Jobs[id-1].Release })

	releases := lo.Keys(byRelease)
	slices.Sort(releases)

	solution := Solution{Batches: make([]Batch, 0)}
	for _, release := range releases {
		for _, chunk := range lo.Chunk(byRelease[release], capacity) {
			solution.Batches = append(solution.Batches, Batch{
				Time:        release,
				MachineType: largest,
				Jobs:        chunk,
			})
		}
	}
	return solution
}

// WriteInstance renders the instance in the format read by ParseInstance
func WriteInstance(writer io.Writer, instance Instance) error {
	if _, err := fmt.Fprintf(writer, "%d\n", len(instance.Jobs)); err != nil {
		return err
	}
	for _, job := range instance.Jobs {
		if _, err := fmt.Fprintf(writer, "%d %d\n", job.Release, job.Deadline); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "%d\n", len(instance.MachineTypes)); err != nil {
		return err
	}
	for _, machineType := range instance.MachineTypes {
		if _, err := fmt.Fprintf(writer, "%d %d\n", machineType.Cost, machineType.Capacity); err != nil {
			return err
		}
	}
	return nil
}

// WriteSolution renders the solution in the format read by ParseSolution
func WriteSolution(writer io.Writer, solution Solution) error {
	if _, err := fmt.Fprintf(writer, "%d\n", len(solution.Batches)); err != nil {
		return err
	}
	for _, batch := range solution.Batches {
		fields := append([]int{batch.Time, batch.MachineType}, batch.Jobs...)
		line := lo.Map(fields, func(field int, _ int) string { return strconv.Itoa(field) })
		if _, err := fmt.Fprintln(writer, strings.Join(line, " ")); err != nil {
			return err
		}
	}
	return nil
}
