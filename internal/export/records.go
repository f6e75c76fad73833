package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/warpsim/internal/metric"
)

var (
	Header2D = []string{"x", "y"}
	Header3D = []string{"i", "j", "z", "sx", "sy", "sz"}
)

// WriteCSV2D writes x as an integer and y with two decimals.
func WriteCSV2D(w io.Writer, pts []metric.Point2D) error {
	return WriteRecordsCSV2D(w, metric.Records2D(pts))
}

// WriteCSV3D writes raw and scaled triples at full precision, row-major.
func WriteCSV3D(w io.Writer, samples []metric.GridSample) error {
	return WriteRecordsCSV3D(w, metric.Records3D(samples))
}

func WriteRecordsCSV2D(w io.Writer, recs []metric.Record2D) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header2D); err != nil {
		return err
	}
	for _, r := range recs {
		if err := cw.Write([]string{strconv.Itoa(r.X), r.Y}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteRecordsCSV3D(w io.Writer, recs []metric.Record3D) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header3D); err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{
			ftoa(r.Raw.X), ftoa(r.Raw.Y), ftoa(r.Raw.Z),
			ftoa(r.Scaled.X), ftoa(r.Scaled.Y), ftoa(r.Scaled.Z),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ReadCSV2D(r io.Reader) ([]metric.Record2D, error) {
	rows, err := readCSV(r, Header2D)
	if err != nil {
		return nil, err
	}
	out := make([]metric.Record2D, len(rows))
	for i, row := range rows {
		x, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out[i] = metric.Record2D{X: x, Y: row[1]}
	}
	return out, nil
}

func ReadCSV3D(r io.Reader) ([]metric.Record3D, error) {
	rows, err := readCSV(r, Header3D)
	if err != nil {
		return nil, err
	}
	out := make([]metric.Record3D, len(rows))
	for i, row := range rows {
		var v [6]float64
		for c := range v {
			if v[c], err = strconv.ParseFloat(row[c], 64); err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
		}
		out[i] = metric.Record3D{
			Raw:    metric.Point3D{X: v[0], Y: v[1], Z: v[2]},
			Scaled: metric.Point3D{X: v[3], Y: v[4], Z: v[5]},
		}
	}
	return out, nil
}

func readCSV(r io.Reader, header []string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv: missing header")
	}
	for i, h := range header {
		if rows[0][i] != h {
			return nil, fmt.Errorf("csv: unexpected header %v", rows[0])
		}
	}
	return rows[1:], nil
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func WriteJSON2D(w io.Writer, pts []metric.Point2D) error {
	return writeJSON(w, metric.Records2D(pts))
}

func WriteJSON3D(w io.Writer, samples []metric.GridSample) error {
	return writeJSON(w, metric.Records3D(samples))
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
