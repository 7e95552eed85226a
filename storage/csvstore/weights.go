package csvstore

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/YuminosukeSato/ftlinear/core/model"
	"github.com/YuminosukeSato/ftlinear/pkg/errors"
	"github.com/YuminosukeSato/ftlinear/pkg/log"
)

// DefaultWeightsPath is the weights file used when no path is configured.
const DefaultWeightsPath = "weights.csv"

const defaultWeightsMode os.FileMode = 0o644

var weightsHeader = []string{"theta0", "theta1"}

// WeightFile persists Parameters as a two-line CSV:
//
//	theta0,theta1
//	6331.83,-1106.04
//
// Save replaces the file atomically.
type WeightFile struct {
	path   string
	logger log.Logger
}

// NewWeightFile returns a store backed by path.
func NewWeightFile(path string) *WeightFile {
	if path == "" {
		path = DefaultWeightsPath
	}
	return &WeightFile{path: path, logger: log.GetLoggerWithName("csvstore")}
}

// Path returns the backing file.
func (w *WeightFile) Path() string {
	return w.path
}

// Load implements model.WeightStore. A missing file is created with
// {0, 0}; a file with only a header yields {0, 0} without rewriting it.
func (w *WeightFile) Load() (model.Parameters, error) {
	const op = "WeightFile.Load"

	data, err := os.ReadFile(w.path)
	if os.IsNotExist(err) {
		p := model.DefaultParameters()
		if err := w.Save(p); err != nil {
			return model.Parameters{}, err
		}
		w.logger.Info("Weights file created", log.PathKey, w.path)
		return p, nil
	}
	if err != nil {
		return model.Parameters{}, errors.NewStoreError(op, w.path, err)
	}

	p, err := decodeWeights(data)
	if err != nil {
		return model.Parameters{}, errors.NewStoreError(op, w.path, err)
	}
	if err := p.Validate(); err != nil {
		return model.Parameters{}, errors.NewStoreError(op, w.path, err)
	}
	return p, nil
}

func decodeWeights(data []byte) (model.Parameters, error) {
	r := newReader(csv.NewReader(bytes.NewReader(data)))

	header, err := r.Read()
	if err == io.EOF {
		return model.DefaultParameters(), nil
	}
	if err != nil {
		return model.Parameters{}, csvError(err)
	}
	cols, err := columnIndex(header, weightsHeader...)
	if err != nil {
		return model.Parameters{}, err
	}

	row, err := r.Read()
	if err == io.EOF {
		return model.DefaultParameters(), nil
	}
	if err != nil {
		return model.Parameters{}, csvError(err)
	}
	line, _ := r.FieldPos(0)

	theta0, err := parseWeight(row, cols[0], "theta0", line)
	if err != nil {
		return model.Parameters{}, err
	}
	theta1, err := parseWeight(row, cols[1], "theta1", line)
	if err != nil {
		return model.Parameters{}, err
	}
	return model.Parameters{Theta0: theta0, Theta1: theta1}, nil
}

// parseWeight accepts NaN and Inf so that Load can report them as a
// numerical instability rather than a malformed file.
func parseWeight(row []string, col int, name string, line int) (float64, error) {
	if col >= len(row) {
		return 0, errors.Wrapf(errors.ErrMalformedRecord, "line %d: missing %s", line, name)
	}
	v, err := parseFloat(row[col])
	if err != nil {
		return 0, errors.Wrapf(errors.ErrMalformedRecord, "line %d: invalid %s %q", line, name, row[col])
	}
	return v, nil
}

// Save implements model.WeightStore. The record is written to a temporary
// file in the same directory, synced and renamed over the target. The
// target keeps its permissions; a new file gets defaultWeightsMode.
func (w *WeightFile) Save(p model.Parameters) (err error) {
	const op = "WeightFile.Save"

	mode := defaultWeightsMode
	if fi, statErr := os.Stat(w.path); statErr == nil {
		mode = fi.Mode().Perm()
	}

	dir := filepath.Dir(w.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.path)+".*.tmp")
	if err != nil {
		return errors.NewStoreError(op, w.path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	cw := csv.NewWriter(tmp)
	if err := cw.Write(weightsHeader); err != nil {
		return errors.NewStoreError(op, w.path, err)
	}
	if err := cw.Write([]string{formatFloat(p.Theta0), formatFloat(p.Theta1)}); err != nil {
		return errors.NewStoreError(op, w.path, err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.NewStoreError(op, w.path, err)
	}
	// CreateTemp は 0600 で作成する
	if err := tmp.Chmod(mode); err != nil {
		return errors.NewStoreError(op, w.path, err)
	}
	if err := tmp.Sync(); err != nil {
		return errors.NewStoreError(op, w.path, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewStoreError(op, w.path, err)
	}
	if err := os.Rename(tmp.Name(), w.path); err != nil {
		return errors.NewStoreError(op, w.path, err)
	}

	w.logger.Debug("Weights saved",
		log.PathKey, w.path,
		log.Theta0Key, p.Theta0,
		log.Theta1Key, p.Theta1,
	)
	return nil
}
