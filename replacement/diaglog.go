package replacement

import (
	"bufio"
	"fmt"
	"os"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// diagLog writes the optional victim-decision CSV log (§6): one row per
// FindVictim call, hex-formatted timestamps and addresses, header emitted
// once. Buffered, with its flush-and-close registered to run at process
// exit.
type diagLog struct {
	file *os.File
	w    *bufio.Writer
}

func newDiagLog(path string) (*diagLog, error) {
	if path == "" {
		path = "beladyopt_" + xid.New().String() + ".csv"
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	d := &diagLog{file: f, w: bufio.NewWriter(f)}
	fmt.Fprint(d.w, "cpu, instr_id, set, way, timestamp, address, ip, type\n")

	atexit.Register(func() {
		_ = d.Close()
	})
	return d, nil
}

func (d *diagLog) writeRow(cpu uint32, t uint64, setID uint32, way int, timestamp, addr, ip uint64, accessType uint32) {
	fmt.Fprintf(d.w, "%d,0x%x,%d,0x%x,0x%x,0x%x,0x%x,%d\n",
		cpu, t, setID, way, timestamp, addr, ip, accessType)
}

func (d *diagLog) Flush() error { return d.w.Flush() }

func (d *diagLog) Close() error {
	if d.file == nil {
		return nil
	}
	if err := d.Flush(); err != nil {
		return err
	}
	err := d.file.Close()
	d.file = nil
	return err
}
