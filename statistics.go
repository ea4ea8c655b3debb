package ising

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

// Statistics records one entry per Gibbs sweep.
type Statistics struct {
	Steps         []int
	Magnetization []float32
	Energy        []float32 // mean energy of the sampled (v, h)
}

func makeStatistics() Statistics {
	return Statistics{
		Steps:         make([]int, 0, 64),
		Magnetization: make([]float32, 0, 64),
		Energy:        make([]float32, 0, 64),
	}
}

func (s *Statistics) update(step int, magnetization, energy float32) {
	s.Steps = append(s.Steps, step)
	s.Magnetization = append(s.Magnetization, magnetization)
	s.Energy = append(s.Energy, energy)
}

func (s *Statistics) reset() {
	s.Steps = s.Steps[:0]
	s.Magnetization = s.Magnetization[:0]
	s.Energy = s.Energy[:0]
}

// Write writes the statistics as CSV, with a header.
func (s *Statistics) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"step", "magnetization", "energy"}); err != nil {
		return err
	}
	records := make([][]string, 0, len(s.Steps))
	for i, step := range s.Steps {
		records = append(records, []string{
			strconv.Itoa(step),
			strconv.FormatFloat(float64(s.Magnetization[i]), 'f', 4, 32),
			strconv.FormatFloat(float64(s.Energy[i]), 'f', 4, 32),
		})
	}
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func (s *Statistics) Dump(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.Write(f)
}
