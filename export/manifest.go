package export

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/nathoo/duelset/engine"
)

// ManifestSuffix is appended to the data path to name its manifest.
const ManifestSuffix = ".manifest.json"

// ErrDigestMismatch is returned by Verify when the data file changed.
var ErrDigestMismatch = errors.New("data digest does not match manifest")

// Manifest describes one generated dataset.
type Manifest struct {
	Version     string    `json:"version"`
	Format      string    `json:"format"`
	DataFile    string    `json:"data_file"`
	DataSha256  string    `json:"data_sha256"`
	Columns     []string  `json:"columns"`
	Rows        int       `json:"rows"`
	Requested   int       `json:"requested"`
	SelfPairs   int       `json:"self_pairs"`
	Positives   int       `json:"positives"`
	Seed        int64     `json:"seed"`
	LevelLow    int       `json:"level_low"`
	LevelHigh   int       `json:"level_high"`
	RNGPosition int64     `json:"rng_position"`
	Roster      string    `json:"roster,omitempty"`
	RosterSize  int       `json:"roster_size,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ManifestPath returns the manifest path for a data file.
func ManifestPath(dataPath string) string {
	return dataPath + ManifestSuffix
}

// NewManifest describes run as written to dataPath. The data file must
// already exist.
func NewManifest(run *engine.Run, dataPath, format, version string) (*Manifest, error) {
	sum, err := Digest(dataPath)
	if err != nil {
		return nil, err
	}
	return &Manifest{
		Version:     version,
		Format:      format,
		DataFile:    filepath.Base(dataPath),
		DataSha256:  sum,
		Columns:     Columns,
		Rows:        len(run.Records),
		Requested:   run.Params.Count,
		SelfPairs:   run.SelfPairs,
		Positives:   run.Positives(),
		Seed:        run.Params.Seed,
		LevelLow:    run.Params.LevelLow,
		LevelHigh:   run.Params.LevelHigh,
		RNGPosition: run.RNGPosition,
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
	}, nil
}

// Digest returns the hex SHA-256 of the file at path.
func Digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("export: open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("export: hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// WriteManifest writes m as indented JSON to path.
func WriteManifest(path string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("export: encode manifest: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("export: write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("export: read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("export: decode manifest %s: %w", path, err)
	}
	if m.DataSha256 == "" {
		return nil, fmt.Errorf("export: manifest %s has no data_sha256", path)
	}
	return &m, nil
}

// Verify recomputes the digest of dataPath and compares it with the manifest
// at manifestPath. For JSONL and CSV it also checks the row count.
func Verify(dataPath, manifestPath string) (*Manifest, error) {
	m, err := ReadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	sum, err := Digest(dataPath)
	if err != nil {
		return m, err
	}
	if sum != m.DataSha256 {
		return m, fmt.Errorf("%w: have %s, manifest says %s", ErrDigestMismatch, sum, m.DataSha256)
	}

	var n int
	switch m.Format {
	case FormatJSONL:
		n, err = countLines(dataPath)
	case FormatCSV:
		n, err = countCSVRecords(dataPath)
		n-- // header
	default:
		return m, nil
	}
	if err != nil {
		return m, err
	}
	if n != m.Rows {
		return m, fmt.Errorf("export: %s has %d rows, manifest says %d", dataPath, n, m.Rows)
	}
	return m, nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("export: open %s: %w", path, err)
	}
	defer f.Close()

	n := 0
	r := bufio.NewReader(f)
	buf := make([]byte, 32*1024)
	for {
		c, err := r.Read(buf)
		n += bytes.Count(buf[:c], []byte{'\n'})
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return 0, fmt.Errorf("export: read %s: %w", path, err)
		}
	}
}

// countCSVRecords counts CSV records, so quoted fields spanning lines count once.
func countCSVRecords(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("export: open %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(bufio.NewReader(f))
	cr.ReuseRecord = true
	n := 0
	for {
		_, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return 0, fmt.Errorf("export: read %s: %w", path, err)
		}
		n++
	}
}
