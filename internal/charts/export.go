package charts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/loandash/internal/dashboard"
)

// ExportResult lists what Export wrote and which panels had nothing to draw.
type ExportResult struct {
	Files   []string
	Skipped []dashboard.PanelID
}

// FileName returns the file name for a panel, e.g. "histogram-bad-loan.svg".
// The analysis panels carry the condition in the name.
func FileName(id dashboard.PanelID, condition string, f Format) string {
	stem := string(id)
	if id == dashboard.PanelHistogram || id == dashboard.PanelBoxPlot {
		stem += "-" + slug(condition)
	}
	return stem + "." + string(f)
}

// Export renders every panel of d into dir.
func Export(dir string, d dashboard.Dashboard, opts Options) (*ExportResult, error) {
	opts = opts.normalized()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	result := &ExportResult{}
	for _, p := range dashboard.Panels {
		path := filepath.Join(dir, FileName(p.ID, d.Condition, opts.Format))
		err := writePanel(path, d, p.ID, opts)
		if errors.Is(err, ErrNoData) {
			result.Skipped = append(result.Skipped, p.ID)
			continue
		}
		if err != nil {
			return result, fmt.Errorf("rendering %s: %w", p.ID, err)
		}
		result.Files = append(result.Files, path)
	}
	return result, nil
}

func writePanel(path string, d dashboard.Dashboard, id dashboard.PanelID, opts Options) error {
	f, err := os.Create(path) //nolint:gosec // path is built from the configured export dir
	if err != nil {
		return err
	}
	if err := Render(f, d, id, opts); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

func slug(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			if len(out) > 0 && out[len(out)-1] != '-' {
				out = append(out, '-')
			}
		}
	}
	for len(out) > 0 && out[len(out)-1] == '-' {
		out = out[:len(out)-1]
	}
	return string(out)
}
