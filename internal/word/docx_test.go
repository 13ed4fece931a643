package word

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maini-dms/demand-importer/internal/common"
)

func writeDocx(t *testing.T, documentXML string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demand.docx")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

const tableDoc = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>PO</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>Open Sched Qty</w:t></w:r></w:p></w:tc>
      </w:tr>
      <w:tr>
        <w:tc><w:p><w:r><w:t>P1</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>5</w:t></w:r></w:p></w:tc>
      </w:tr>
      <w:tr>
        <w:tc><w:p><w:r><w:t>P2</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>3</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`

const noTableDoc = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>just a paragraph</w:t></w:r></w:p>
  </w:body>
</w:document>`

func TestWordImporterParsesTables(t *testing.T) {
	path := writeDocx(t, tableDoc)

	p, err := NewImporter(nil).Parse(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, p.Rows, 2)
	assert.Equal(t, "P1", p.Rows[0]["PO"])
	assert.Equal(t, "5", p.Rows[0]["Open Sched Qty"])
	assert.Equal(t, "P2", p.Rows[1]["PO"])
}

func TestWordImporterNoTablesIsAnError(t *testing.T) {
	path := writeDocx(t, noTableDoc)

	_, err := NewImporter(nil).Parse(context.Background(), path)
	assert.ErrorIs(t, err, common.ErrNoTables)
}

func TestWordImporterBadArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := NewImporter(nil).Parse(context.Background(), path)
	assert.Error(t, err)
}
