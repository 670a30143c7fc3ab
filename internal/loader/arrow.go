package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"tablehash/internal/table"
)

// readParquet reads a Parquet file through the Arrow bridge.
func readParquet(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()

	pf, err := file.NewParquetReader(f)
	if err != nil {
		return nil, fmt.Errorf("open parquet %s: %w", path, err)
	}
	defer pf.Close()

	reader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, memory.NewGoAllocator())
	if err != nil {
		return nil, fmt.Errorf("arrow reader %s: %w", path, err)
	}
	atbl, err := reader.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", path, err)
	}
	defer atbl.Release()

	return fromArrowTable(atbl)
}

// readFeather reads an Arrow IPC file (Feather v2).
func readFeather(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()

	reader, err := ipc.NewFileReader(f, ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		return nil, fmt.Errorf("open feather %s: %w", path, err)
	}
	defer reader.Close()

	schema := reader.Schema()
	cols := make([]table.Column, len(schema.Fields()))
	for i, fld := range schema.Fields() {
		cols[i].Name = fld.Name
	}
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read feather %s: %w", path, err)
		}
		for c := 0; c < int(rec.NumCols()); c++ {
			if err := appendArrowValues(&cols[c].Cells, rec.Column(c)); err != nil {
				return nil, fmt.Errorf("read feather %s: column %q: %w", path, cols[c].Name, err)
			}
		}
	}
	return table.New(cols...)
}

func fromArrowTable(atbl arrow.Table) (*table.Table, error) {
	schema := atbl.Schema()
	cols := make([]table.Column, atbl.NumCols())
	for i := 0; i < int(atbl.NumCols()); i++ {
		name := schema.Field(i).Name
		cells := make([]table.Cell, 0, atbl.NumRows())
		for _, chunk := range atbl.Column(i).Data().Chunks() {
			if err := appendArrowValues(&cells, chunk); err != nil {
				return nil, fmt.Errorf("column %q: %w", name, err)
			}
		}
		cols[i] = table.Column{Name: name, Cells: cells}
	}
	return table.New(cols...)
}

// appendArrowValues converts one Arrow array into cells. Nulls become missing
// cells uniformly; timestamps keep their instant (the standardizer owns the
// textual form).
func appendArrowValues(cells *[]table.Cell, arr arrow.Array) error {
	n := arr.Len()
	add := func(i int, c table.Cell) {
		if arr.IsNull(i) {
			*cells = append(*cells, table.Missing())
			return
		}
		*cells = append(*cells, c)
	}

	switch a := arr.(type) {
	case *array.Null:
		for i := 0; i < n; i++ {
			*cells = append(*cells, table.Missing())
		}
	case *array.Boolean:
		for i := 0; i < n; i++ {
			add(i, table.Bool(a.Value(i)))
		}
	case *array.Int8:
		for i := 0; i < n; i++ {
			add(i, table.Int(int64(a.Value(i))))
		}
	case *array.Int16:
		for i := 0; i < n; i++ {
			add(i, table.Int(int64(a.Value(i))))
		}
	case *array.Int32:
		for i := 0; i < n; i++ {
			add(i, table.Int(int64(a.Value(i))))
		}
	case *array.Int64:
		for i := 0; i < n; i++ {
			add(i, table.Int(a.Value(i)))
		}
	case *array.Uint8:
		for i := 0; i < n; i++ {
			add(i, table.Int(int64(a.Value(i))))
		}
	case *array.Uint16:
		for i := 0; i < n; i++ {
			add(i, table.Int(int64(a.Value(i))))
		}
	case *array.Uint32:
		for i := 0; i < n; i++ {
			add(i, table.Int(int64(a.Value(i))))
		}
	case *array.Uint64:
		for i := 0; i < n; i++ {
			v := a.Value(i)
			if v > math.MaxInt64 {
				add(i, table.Text(strconv.FormatUint(v, 10)))
			} else {
				add(i, table.Int(int64(v)))
			}
		}
	case *array.Float32:
		for i := 0; i < n; i++ {
			add(i, table.Float(float64(a.Value(i))))
		}
	case *array.Float64:
		for i := 0; i < n; i++ {
			add(i, table.Float(a.Value(i)))
		}
	case *array.String:
		for i := 0; i < n; i++ {
			add(i, table.Text(a.Value(i)))
		}
	case *array.LargeString:
		for i := 0; i < n; i++ {
			add(i, table.Text(a.Value(i)))
		}
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		for i := 0; i < n; i++ {
			add(i, table.Time(a.Value(i).ToTime(unit)))
		}
	case *array.Date32:
		for i := 0; i < n; i++ {
			add(i, table.Time(a.Value(i).ToTime()))
		}
	case *array.Date64:
		for i := 0; i < n; i++ {
			add(i, table.Time(a.Value(i).ToTime()))
		}
	default:
		return fmt.Errorf("unsupported arrow type %s", arr.DataType())
	}
	return nil
}
