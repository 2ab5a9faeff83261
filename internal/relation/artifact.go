package relation

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/robalobadob/wordle/apps/solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Artifact file names inside an artifact directory.
const (
	WordListFile = "wordlist.txt"
	TableFile    = "table.bin"
)

// tableMagic prefixes table.bin; followed by little-endian uint32 n and n*n code bytes.
var tableMagic = [4]byte{'W', 'R', 'T', '1'}

// Load reads an artifact directory from disk.
func Load(dir string) (*Table, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads wordlist.txt and table.bin from fsys.
func LoadFS(fsys fs.FS) (*Table, error) {
	wf, err := fsys.Open(WordListFile)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", WordListFile, err)
	}
	defer wf.Close()
	vocab, err := words.Read(wf)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", WordListFile, err)
	}

	tf, err := fsys.Open(TableFile)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", TableFile, err)
	}
	defer tf.Close()
	codes, err := readTable(bufio.NewReader(tf), len(vocab))
	if err != nil {
		return nil, err
	}
	return New(vocab, codes)
}

func readTable(r io.Reader, want int) ([]feedback.Code, error) {
	var hdr struct {
		Magic [4]byte
		N     uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: read %s header: %v", ErrShape, TableFile, err)
	}
	if hdr.Magic != tableMagic {
		return nil, fmt.Errorf("%w: %s has bad magic %q", ErrShape, TableFile, hdr.Magic[:])
	}
	if int(hdr.N) != want {
		return nil, fmt.Errorf("%w: %s is %d×%d but %s has %d words",
			ErrShape, TableFile, hdr.N, hdr.N, WordListFile, want)
	}
	buf := make([]byte, want*want)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: read %s body: %v", ErrShape, TableFile, err)
	}
	codes := make([]feedback.Code, len(buf))
	for i, b := range buf {
		codes[i] = feedback.Code(b)
	}
	return codes, nil
}

// Write persists t into dir, creating the directory if needed.
func (t *Table) Write(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	var wl bytes.Buffer
	for _, w := range t.words {
		wl.WriteString(w)
		wl.WriteByte('\n')
	}
	if err := os.WriteFile(filepath.Join(dir, WordListFile), wl.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", WordListFile, err)
	}

	tb := make([]byte, 0, 8+len(t.codes))
	tb = append(tb, tableMagic[:]...)
	tb = binary.LittleEndian.AppendUint32(tb, uint32(len(t.words)))
	for _, c := range t.codes {
		tb = append(tb, byte(c))
	}
	if err := os.WriteFile(filepath.Join(dir, TableFile), tb, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", TableFile, err)
	}
	return nil
}
