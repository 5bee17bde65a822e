package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"git.thinkinpower.net/bindb/bdata"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const updatedBinData = `"bin","country","reserved","scheme","type","brand","bank"
"640001","SG","","VISA","CREDIT","SIGNATURE","DBS BANK LTD"
`

func binDataServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestUpdate(t *testing.T) {
	srv := binDataServer(t, http.StatusOK, updatedBinData)
	dir := t.TempDir()
	dst := filepath.Join(dir, "data", "bin_data.csv")

	res := execute(t, bdata.NewMemoryDatabase(nil), "", "--data", dst, "update", "--url", srv.URL+"/bin_data.csv")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "bin data saved")

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, updatedBinData, string(content))

	entries, err := os.ReadDir(filepath.Dir(dst))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "bin_data.csv", entries[0].Name())

	res = execute(t, bdata.NewMemoryDatabase(nil), "", "--data", dst, "--bin", "640001", "--format", "csv")
	require.NoError(t, res.err)
	assert.Equal(t, "VISA,CREDIT,SIGNATURE,DBS BANK LTD,SG\n", res.stdout)
}

func TestUpdateReplacesExistingFile(t *testing.T) {
	srv := binDataServer(t, http.StatusOK, updatedBinData)
	dst := filepath.Join(t.TempDir(), "bin_data.csv")
	require.NoError(t, os.WriteFile(dst, []byte("old"), 0644))
	t.Setenv("BINDB_DATA_URL", srv.URL)

	res := execute(t, bdata.NewMemoryDatabase(nil), "", "--data", dst, "update")
	require.NoError(t, res.err)

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, updatedBinData, string(content))
}

func TestUpdateFailureKeepsExistingFile(t *testing.T) {
	srv := binDataServer(t, http.StatusInternalServerError, "boom")
	dir := t.TempDir()
	dst := filepath.Join(dir, "bin_data.csv")
	require.NoError(t, os.WriteFile(dst, []byte("old"), 0644))

	res := execute(t, bdata.NewMemoryDatabase(nil), "", "--data", dst, "update", "--url", srv.URL)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "status 500")

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "old", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDownload(t *testing.T) {
	srv := binDataServer(t, http.StatusOK, updatedBinData)
	fs := afero.NewMemMapFs()

	n, err := download(context.Background(), fs, srv.Client(), srv.URL, "/srv/bindb/bin_data.csv")
	require.NoError(t, err)
	assert.Equal(t, int64(len(updatedBinData)), n)

	content, err := afero.ReadFile(fs, "/srv/bindb/bin_data.csv")
	require.NoError(t, err)
	assert.Equal(t, updatedBinData, string(content))

	_, err = download(context.Background(), fs, srv.Client(), "", "/srv/bindb/bin_data.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data.url is required")
}

func TestDownloadCanceled(t *testing.T) {
	srv := binDataServer(t, http.StatusOK, updatedBinData)
	fs := afero.NewMemMapFs()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := download(ctx, fs, srv.Client(), srv.URL, "/srv/bindb/bin_data.csv")
	require.Error(t, err)

	exists, err := afero.Exists(fs, "/srv/bindb/bin_data.csv")
	require.NoError(t, err)
	assert.False(t, exists)
}
