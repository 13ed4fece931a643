package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maini-dms/demand-importer/internal/common"
	"github.com/maini-dms/demand-importer/internal/extract"
	"github.com/maini-dms/demand-importer/internal/router"
)

func newTestProcessor() *Processor {
	rt := router.New(&common.Config{}, nil)
	return NewProcessor(nil, rt, nil)
}

func writeDropFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessFileCSV(t *testing.T) {
	path := writeDropFile(t, "demand.csv", "PO,Open Sched Qty,Ship date\nP-100,7,2024-05-01\n")
	p := newTestProcessor()

	res, err := p.ProcessFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, extract.OutcomeData, res.Outcome.Kind)
	require.Len(t, res.Records, 1)
	rec := res.Records[0]
	require.NotNil(t, rec.POOrForecast)
	assert.Equal(t, "P-100", *rec.POOrForecast)
	require.NotNil(t, rec.OpenQty)
	assert.Equal(t, 7.0, *rec.OpenQty)
	require.NotNil(t, rec.SalesMonth)
	assert.Equal(t, "2024-05", *rec.SalesMonth)
	assert.Equal(t, res.FileID, rec.FileID)
	assert.Empty(t, res.RowDiagnostics)
}

// Reprocessing the same file yields byte-for-byte the same records, so a
// second run cleanly supersedes the first.
func TestProcessFileIsDeterministic(t *testing.T) {
	path := writeDropFile(t, "demand.csv", "PO,Open Sched Qty\nP-100,7\nP-200,3\n")
	p := newTestProcessor()

	first, err := p.ProcessFile(context.Background(), path)
	require.NoError(t, err)
	second, err := p.ProcessFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, first.FileID, second.FileID)
	assert.Equal(t, first.Records, second.Records)
}

func TestProcessFileUnsupportedExtension(t *testing.T) {
	path := writeDropFile(t, "archive.zip", "not really a zip")
	p := newTestProcessor()

	res, err := p.ProcessFile(context.Background(), path)
	assert.ErrorIs(t, err, common.ErrUnsupportedFormat)
	assert.Equal(t, extract.OutcomeFailure, res.Outcome.Kind)
	assert.Equal(t, "route", res.Outcome.Stage)
}

func TestProcessFileFreeTextIsSuccessEmpty(t *testing.T) {
	path := writeDropFile(t, "note.txt", "please expedite the pending order\nthanks")
	p := newTestProcessor()

	res, err := p.ProcessFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, extract.OutcomeEmpty, res.Outcome.Kind)
	assert.Empty(t, res.Records)
	assert.Contains(t, res.Payload.RawText, "expedite")
}
