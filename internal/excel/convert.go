package excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// convertLegacy converts a .xls file to .xlsx in a uuid-suffixed work
// directory so concurrent invocations never collide.
//
// Returns (outPath, cleanup, err). Call cleanup() to remove the work dir.
func (im *Importer) convertLegacy(ctx context.Context, in string) (string, func(), error) {
	workDir := filepath.Join(im.cfg.WorkDir, "xls-convert-"+uuid.NewString())
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return "", func() {}, err
	}
	cleanup := func() {
		if err := os.RemoveAll(workDir); err != nil {
			im.logger.Warn("remove conversion work dir", "dir", workDir, "error", err)
		}
	}

	// libreoffice --headless --convert-to xlsx --outdir <workDir> <in>
	// ssconvert writes the output path given as the second argument.
	switch filepath.Base(im.cfg.XLSConverter) {
	case "ssconvert":
		out := filepath.Join(workDir, "converted.xlsx")
		if _, errb, err := im.runner.Run(ctx, im.cfg.XLSConverter, in, out); err != nil {
			return "", cleanup, fmt.Errorf("ssconvert failed: %w: %s", err, string(errb))
		}
		return out, cleanup, nil
	default:
		if _, errb, err := im.runner.Run(ctx, im.cfg.XLSConverter,
			"--headless", "--convert-to", "xlsx", "--outdir", workDir, in); err != nil {
			return "", cleanup, fmt.Errorf("xls conversion failed: %w: %s", err, string(errb))
		}
		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + ".xlsx"
		out := filepath.Join(workDir, base)
		if _, statErr := os.Stat(out); statErr != nil {
			return "", cleanup, fmt.Errorf("xls conversion produced no output: %v", statErr)
		}
		return out, cleanup, nil
	}
}
