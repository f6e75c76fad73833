package storage

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/san-kum/warpsim/internal/export"
	"github.com/san-kum/warpsim/internal/metric"
)

// codec turns a sample into a compressed CSV payload and back.
type codec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func newCodec() (*codec, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, fmt.Errorf("create encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("create decoder: %w", err)
	}
	return &codec{encoder: encoder, decoder: decoder}, nil
}

func (c *codec) close() {
	c.encoder.Close()
	c.decoder.Close()
}

// encode samples the snapshot's curve or surface and returns the compressed
// CSV together with the number of records written.
func (c *codec) encode(mode metric.Mode, view metric.View, p metric.Params) ([]byte, int, error) {
	var buf bytes.Buffer
	var n int
	switch view {
	case metric.View3D:
		samples := metric.Sample3D(mode, p, metric.Domain3D)
		if err := export.WriteCSV3D(&buf, samples); err != nil {
			return nil, 0, err
		}
		n = len(samples)
	default:
		pts := metric.Sample2D(mode, p, metric.Domain2D)
		if err := export.WriteCSV2D(&buf, pts); err != nil {
			return nil, 0, err
		}
		n = len(pts)
	}
	return c.encoder.EncodeAll(buf.Bytes(), make([]byte, 0, buf.Len()/2)), n, nil
}

func (c *codec) decode(view metric.View, blob []byte) (*Records, error) {
	raw, err := c.decoder.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	recs := &Records{View: view}
	if view == metric.View3D {
		recs.Samples, err = export.ReadCSV3D(bytes.NewReader(raw))
	} else {
		recs.Points, err = export.ReadCSV2D(bytes.NewReader(raw))
	}
	if err != nil {
		return nil, err
	}
	return recs, nil
}
