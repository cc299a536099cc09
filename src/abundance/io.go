package abundance

import (
	"io/ioutil"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/vmihailenco/msgpack.v2"
)

// countsDump is the on-disk form of an Aggregate
type countsDump struct {
	Version     string   `msgpack:"version"`
	Ksize       int      `msgpack:"ksize"`
	Molecule    string   `msgpack:"molecule"`
	NumSketches int      `msgpack:"num_sketches"`
	Hashes      []uint64 `msgpack:"hashes"`
	Counts      []int64  `msgpack:"counts"`
	Abunds      []int64  `msgpack:"dist_abunds"`
	NumHashes   []int64  `msgpack:"dist_hashes"`
}

// Dump is a method to write the aggregate to disk
func (Aggregate *Aggregate) Dump(path string) error {
	dump := countsDump{
		Version:     Aggregate.Version,
		Ksize:       Aggregate.Ksize,
		Molecule:    Aggregate.Molecule,
		NumSketches: Aggregate.NumSketches,
		Hashes:      Aggregate.sortedHashes(),
	}
	dump.Counts = make([]int64, len(dump.Hashes))
	for i, hv := range dump.Hashes {
		dump.Counts[i] = int64(Aggregate.Counts[hv])
	}
	abunds := make([]int, 0, len(Aggregate.Dist))
	for abund := range Aggregate.Dist {
		abunds = append(abunds, abund)
	}
	sort.Ints(abunds)
	for _, abund := range abunds {
		dump.Abunds = append(dump.Abunds, int64(abund))
		dump.NumHashes = append(dump.NumHashes, int64(Aggregate.Dist[abund]))
	}
	b, err := msgpack.Marshal(&dump)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, b, 0644)
}

// Load is a method to populate the aggregate from a file written by Dump
func (Aggregate *Aggregate) Load(path string) error {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	return Aggregate.LoadFromBytes(b)
}

// LoadFromBytes is a method to populate the aggregate using a byte slice
func (Aggregate *Aggregate) LoadFromBytes(data []byte) error {
	if len(data) == 0 {
		return errors.New("counts file appears empty")
	}
	dump := countsDump{}
	if err := msgpack.Unmarshal(data, &dump); err != nil {
		return errors.Wrap(err, "could not decode counts file")
	}
	if len(dump.Hashes) != len(dump.Counts) || len(dump.Abunds) != len(dump.NumHashes) {
		return errors.New("counts file is corrupted")
	}
	Aggregate.Version = dump.Version
	Aggregate.Ksize = dump.Ksize
	Aggregate.Molecule = dump.Molecule
	Aggregate.NumSketches = dump.NumSketches
	Aggregate.Counts = make(map[uint64]int, len(dump.Hashes))
	for i, hv := range dump.Hashes {
		Aggregate.Counts[hv] = int(dump.Counts[i])
	}
	Aggregate.Dist = make(map[int]int, len(dump.Abunds))
	for i, abund := range dump.Abunds {
		Aggregate.Dist[int(abund)] = int(dump.NumHashes[i])
	}
	return nil
}
