package pkg

import (
	"fmt"
	"io"

	"github.com/hansbonini/ecmtools/pkg/common"
)

// progressMeter prints "Decoding (NN%)" each time the position crosses a
// MiB boundary.
type progressMeter struct {
	w     io.Writer
	total int64
	pos   int64
}

func newProgressMeter(w io.Writer, total int64) *progressMeter {
	return &progressMeter{w: w, total: total}
}

// percent scales pos to 0..100 in 128-byte units so that large totals do
// not overflow.
func (m *progressMeter) percent(pos int64) int64 {
	a := (pos + 64) / 128
	d := (m.total + 64) / 128
	if d == 0 {
		d = 1
	}
	return 100 * a / d
}

func (m *progressMeter) set(pos int64) {
	if pos>>20 != m.pos>>20 {
		fmt.Fprintf(m.w, common.InfoProgressPercent, m.percent(pos))
	}
	m.pos = pos
}
