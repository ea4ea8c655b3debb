package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"time"

	"github.com/gorgonia/ising"
	"github.com/gorgonia/ising/encoding/gif"
	"github.com/gorgonia/ising/rbm"
	"gorgonia.org/tensor"
)

var (
	visible = flag.Int("visible", 64, "number of visible spins")
	hidden  = flag.Int("hidden", 16, "number of hidden units")
	width   = flag.Int("width", 8, "spins per lattice row")
	batch   = flag.Int("batch", 1, "number of chains run side by side")
	steps   = flag.Int("k", 20, "number of Gibbs sweeps")
	seed    = flag.Int64("seed", time.Now().UnixNano(), "seed for initialisation and sampling")
	name    = flag.String("name", "Ising RBM", "name of the chain, used in captions")
	gifPath = flag.String("gif", "", "write an animated gif of the visible lattice to this file")
	csvPath = flag.String("csv", "", "write per step statistics to this file")
	dotPath = flag.String("dot", "", "write the graphviz description of the machine to this file")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	nn := rbm.DefaultConf(*visible, *hidden)
	nn.Seed = *seed
	conf := ising.Config{
		Name:  *name,
		RBM:   nn,
		Steps: *steps,
		Width: *width,
	}
	if !conf.IsValid() {
		fmt.Fprintf(os.Stderr, "invalid configuration %+v\n\n", conf)
		usage()
		os.Exit(2)
	}

	var enc *gif.Encoder
	if *gifPath != "" {
		f, err := os.OpenFile(*gifPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		enc = gif.NewGifEncoder(1000, 1000)
		enc.Writer = f
		conf.OutputEncoder = enc
	}

	c := ising.New(conf)
	defer c.Close()

	if *dotPath != "" {
		if err := ioutil.WriteFile(*dotPath, []byte(c.Model().ToDot()), 0644); err != nil {
			log.Fatal(err)
		}
	}

	// start from the maximally uncertain state
	v := tensor.New(tensor.WithShape(*batch, *visible), tensor.Of(rbm.Float))
	if err := v.Memset(float32(0.5)); err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	out, err := c.Run(v)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	log.Printf("%d sweeps in %v", *steps, time.Since(start))
	fmt.Print(c.ExecLog())

	if *csvPath != "" {
		if err := c.Dump(*csvPath); err != nil {
			log.Fatal(err)
		}
	}
	if enc != nil {
		log.Printf("Wrote %d frames to %s", enc.Frames(), *gifPath)
	}
	log.Printf("Final visible probabilities:\n%v", out)
}

func usage() {
	fmt.Fprintf(os.Stderr, "%s\n\n", "usage: gibbs [OPTION]...")
	fmt.Fprintln(os.Stderr, "Runs block Gibbs sampling on a randomly initialised Ising RBM.")
	fmt.Fprintln(os.Stderr, "OPTION flags include:")
	flag.PrintDefaults()
}
