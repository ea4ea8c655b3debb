package ising

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatisticsWrite(t *testing.T) {
	s := makeStatistics()
	s.update(1, 0.5, -3.25)
	s.update(2, -0.125, -4)

	var buf bytes.Buffer
	if err := s.Write(&buf); err != nil {
		t.Fatal(err)
	}
	expected := "step,magnetization,energy\n1,0.5000,-3.2500\n2,-0.1250,-4.0000\n"
	assert.Equal(t, expected, buf.String())

	s.reset()
	assert.Empty(t, s.Steps)
	assert.Empty(t, s.Magnetization)
	assert.Empty(t, s.Energy)
}

func TestStatisticsDump(t *testing.T) {
	dir, err := ioutil.TempDir("", "ising")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	s := makeStatistics()
	s.update(1, 1, -1)
	filename := filepath.Join(dir, "stats.csv")
	if err := s.Dump(filename); err != nil {
		t.Fatal(err)
	}
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "step,magnetization,energy\n1,1.0000,-1.0000\n", string(b))
}
