package sketch

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"io/ioutil"
	"strings"

	"github.com/mholt/archiver"
	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"
)

// archiveExts are the extensions of the signature collections that are walked rather than parsed
var archiveExts = []string{".zip", ".tar", ".tar.gz", ".tgz", ".tar.bz2", ".tar.xz"}

// IsArchive returns true if the file looks like a collection of signature files
func IsArchive(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range archiveExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Load is a function to read all the sketches held in a signature file
//
// Signature files can be plain or compressed JSON ("-" reads STDIN), or a zip/tar collection of signature files.
func Load(path string) ([]*Sketch, error) {
	if IsArchive(path) {
		return loadArchive(path)
	}
	fh, err := xopen.Ropen(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open signature file %q", path)
	}
	defer fh.Close()
	sketches, err := Read(fh, path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read signature file %q", path)
	}
	return sketches, nil
}

// loadArchive collects the sketches from each signature file held in a zip/tar collection
func loadArchive(path string) ([]*Sketch, error) {
	sketches := []*Sketch{}
	err := archiver.Walk(path, func(f archiver.File) error {
		if f.IsDir() {
			return nil
		}
		name := f.Name()
		var r io.Reader = f
		switch {
		case strings.HasSuffix(name, ".sig.gz"):
			gz, err := gzip.NewReader(f)
			if err != nil {
				return errors.Wrapf(err, "could not decompress %q", name)
			}
			defer gz.Close()
			r = gz
		case strings.HasSuffix(name, ".sig"):
		default:
			// manifests and anything else that isn't a signature
			return nil
		}
		found, err := Read(r, path)
		if err != nil {
			return errors.Wrapf(err, "could not read %q", name)
		}
		sketches = append(sketches, found...)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not read signature collection %q", path)
	}
	return sketches, nil
}

// Read is a function to parse the signature records from a reader and flatten them into sketches
func Read(r io.Reader, source string) ([]*Sketch, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("signature file appears empty")
	}

	// files hold either a list of signature records or a single record
	var sigs []Signature
	if data[0] == '{' {
		sig := Signature{}
		if err := json.Unmarshal(data, &sig); err != nil {
			return nil, errors.Wrap(err, "malformed signature JSON")
		}
		sigs = append(sigs, sig)
	} else if err := json.Unmarshal(data, &sigs); err != nil {
		return nil, errors.Wrap(err, "malformed signature JSON")
	}

	sketches := []*Sketch{}
	for _, sig := range sigs {
		for i := range sig.Sketches {
			sketch, err := sig.Sketches[i].toSketch()
			if err != nil {
				return nil, err
			}
			sketch.Name = sig.Name
			sketch.Filename = sig.Filename
			if sketch.Filename == "" {
				sketch.Filename = source
			}
			sketches = append(sketches, sketch)
		}
	}
	return sketches, nil
}

// toSketch converts the on-disk sketch to a hash->abundance map
func (mh *MinHash) toSketch() (*Sketch, error) {
	if len(mh.Abundances) != 0 && len(mh.Abundances) != len(mh.Mins) {
		return nil, errors.Errorf("sketch has %d hashes but %d abundances", len(mh.Mins), len(mh.Abundances))
	}
	sketch := NewSketch("", mh.Ksize, NormaliseMolecule(mh.Molecule))
	sketch.flat = len(mh.Abundances) == 0
	for i, hv := range mh.Mins {
		abund := uint64(1)
		if !sketch.flat {
			abund = mh.Abundances[i]
		}
		sketch.Hashes[hv] += abund
	}
	sketch.md5 = mh.Md5sum
	return sketch, nil
}
