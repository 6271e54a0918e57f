package ecm

import (
	"fmt"
	"io"

	"github.com/hansbonini/ecmtools/pkg/cdrom"
)

// Report describes an ECM stream: its chunk layout and whether it decodes.
type Report struct {
	Valid       bool         `yaml:"valid"`
	Error       string       `yaml:"error,omitempty"`
	InputBytes  int64        `yaml:"input_bytes"`
	OutputBytes int64        `yaml:"output_bytes"`
	Checksum    string       `yaml:"checksum"`
	Totals      ChunkTotals  `yaml:"totals"`
	Chunks      []ChunkEntry `yaml:"chunks,omitempty"`
}

// ChunkTotals aggregates the chunks of a stream by type.
type ChunkTotals struct {
	Chunks            int    `yaml:"chunks"`
	LiteralChunks     int    `yaml:"literal_chunks"`
	LiteralBytes      uint64 `yaml:"literal_bytes"`
	Mode1Sectors      uint64 `yaml:"mode1_sectors"`
	Mode2Form1Sectors uint64 `yaml:"mode2form1_sectors"`
	Mode2Form2Sectors uint64 `yaml:"mode2form2_sectors"`
	RegeneratedBytes  uint64 `yaml:"regenerated_bytes"`
}

// ChunkEntry is one chunk as listed in a report.
type ChunkEntry struct {
	Offset int64  `yaml:"offset"`
	Type   string `yaml:"type"`
	Count  uint64 `yaml:"count"`
}

// add accounts for one chunk in the totals.
func (t *ChunkTotals) add(chunk Chunk) {
	t.Chunks++
	switch chunk.Type {
	case ChunkLiteral:
		t.LiteralChunks++
		t.LiteralBytes += chunk.Count
		return
	case ChunkMode1:
		t.Mode1Sectors += chunk.Count
	case ChunkMode2Form1:
		t.Mode2Form1Sectors += chunk.Count
	case ChunkMode2Form2:
		t.Mode2Form2Sectors += chunk.Count
	}
	mode := chunk.Type.SectorMode()
	t.RegeneratedBytes += chunk.Count * uint64(mode.OutputSize()-mode.PayloadSize())
}

// Inspect decodes r without keeping the output and reports its structure.
// When listChunks is set every chunk is listed individually. The report is
// always returned; err is the decode failure, if any.
func Inspect(r io.Reader, listChunks bool) (*Report, error) {
	report := &Report{}
	edc := cdrom.NewEDC()
	var last Progress

	decoder := NewDecoder(
		WithChunkObserver(func(chunk Chunk) {
			report.Totals.add(chunk)
			if listChunks {
				report.Chunks = append(report.Chunks, ChunkEntry{
					Offset: chunk.Offset,
					Type:   chunk.Type.String(),
					Count:  chunk.Count,
				})
			}
		}),
		WithProgress(func(p Progress) { last = p }),
	)

	written, err := decoder.Decode(r, edc)
	report.InputBytes = last.Input
	report.OutputBytes = written
	report.Checksum = fmt.Sprintf("%08X", edc.Sum32())
	if err != nil {
		report.Error = err.Error()
		return report, err
	}

	report.Valid = true
	return report, nil
}
