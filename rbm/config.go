package rbm

import "time"

// Config configures the machine
type Config struct {
	Visible int // number of visible spins
	Hidden  int // number of hidden units

	BatchSize int   // rows of the energy graph's inputs
	Seed      int64 // seed for initialisation and sampling
	FwdOnly   bool  // is this a fwd only graph?
}

func DefaultConf(visible, hidden int) Config {
	return Config{
		Visible:   visible,
		Hidden:    hidden,
		BatchSize: 1,
		Seed:      time.Now().UnixNano(),
	}
}

func (conf Config) IsValid() bool {
	return conf.Visible >= 1 &&
		conf.Hidden >= 1 &&
		conf.BatchSize >= 1
}
