package csvstore

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/YuminosukeSato/ftlinear/core/model"
	"github.com/YuminosukeSato/ftlinear/pkg/errors"
	"github.com/YuminosukeSato/ftlinear/pkg/log"
)

// DefaultDatasetPath is the dataset file read when no path is configured.
const DefaultDatasetPath = "data.csv"

// DatasetFile loads (km, price) records from a CSV file whose header names
// a "km" and a "price" column, in any order. Other columns are ignored.
type DatasetFile struct {
	path   string
	logger log.Logger
}

// NewDatasetFile returns a store reading path.
func NewDatasetFile(path string) *DatasetFile {
	if path == "" {
		path = DefaultDatasetPath
	}
	return &DatasetFile{path: path, logger: log.GetLoggerWithName("csvstore")}
}

// Path returns the backing file.
func (d *DatasetFile) Path() string {
	return d.path
}

// Load implements model.DatasetStore.
func (d *DatasetFile) Load() (*model.Dataset, error) {
	const op = "DatasetFile.Load"

	f, err := os.Open(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewStoreError(op, d.path, errors.ErrNotFound)
		}
		return nil, errors.NewStoreError(op, d.path, err)
	}
	defer f.Close()

	ds, err := readDataset(newReader(csv.NewReader(f)))
	if err != nil {
		var dataErr *errors.DataError
		if errors.As(err, &dataErr) {
			return nil, err
		}
		if errors.Is(err, errors.ErrMalformedRecord) {
			return nil, errors.NewDataError(op, errors.Wrapf(err, "%s", d.path))
		}
		return nil, errors.NewStoreError(op, d.path, err)
	}

	d.logger.Debug("Dataset loaded", log.PathKey, d.path, log.SamplesKey, ds.Len())
	return ds, nil
}

func readDataset(r *csv.Reader) (*model.Dataset, error) {
	header, err := r.Read()
	if err == io.EOF {
		return nil, errors.NewDataError("DatasetFile.Load", errors.ErrEmptyData)
	}
	if err != nil {
		return nil, csvError(err)
	}
	cols, err := columnIndex(header, "km", "price")
	if err != nil {
		return nil, err
	}

	var records []model.Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		line, _ := r.FieldPos(0)

		if cols[0] >= len(row) || cols[1] >= len(row) {
			return nil, errors.Wrapf(errors.ErrMalformedRecord, "line %d: expected %d fields, got %d", line, len(header), len(row))
		}
		km, err := parseField(row[cols[0]], "km", line)
		if err != nil {
			return nil, err
		}
		price, err := parseField(row[cols[1]], "price", line)
		if err != nil {
			return nil, err
		}
		records = append(records, model.Record{Feature: km, Target: price})
	}

	return model.NewDataset(records)
}

// csvError maps csv parse errors to ErrMalformedRecord and leaves I/O
// errors untouched.
func csvError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return errors.Wrapf(errors.ErrMalformedRecord, "line %d: %v", parseErr.Line, parseErr.Err)
	}
	return err
}
