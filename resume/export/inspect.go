package export

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
)

const pointsPerMillimeter = 72 / 25.4

// PageInfo is the physical size of one PDF page.
type PageInfo struct {
	WidthMM  float64
	HeightMM float64
}

// Info describes an assembled PDF.
type Info struct {
	Pages []PageInfo
}

// Inspect reads a PDF back and reports each page's MediaBox in millimetres.
func Inspect(data []byte) (Info, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Info{}, err
	}
	var info Info
	for i := 1; i <= r.NumPage(); i++ {
		box, err := mediaBox(r.Page(i).V)
		if err != nil {
			return Info{}, fmt.Errorf("page %d: %w", i, err)
		}
		info.Pages = append(info.Pages, PageInfo{
			WidthMM:  (box[2] - box[0]) / pointsPerMillimeter,
			HeightMM: (box[3] - box[1]) / pointsPerMillimeter,
		})
	}
	return info, nil
}

// mediaBox resolves the page MediaBox, inheriting from parent page tree nodes.
func mediaBox(v pdf.Value) ([4]float64, error) {
	for node := v; !node.IsNull(); node = node.Key("Parent") {
		mb := node.Key("MediaBox")
		if mb.IsNull() || mb.Len() != 4 {
			continue
		}
		var out [4]float64
		for i := 0; i < 4; i++ {
			out[i] = mb.Index(i).Float64()
		}
		return out, nil
	}
	return [4]float64{}, errors.New("missing MediaBox")
}
