package cli

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// UpdateOptions holds flags for the update command.
type UpdateOptions struct {
	*RootOptions
	URL     string
	Timeout time.Duration

	fs afero.Fs
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UpdateOptions{RootOptions: rootOpts, fs: afero.NewOsFs()}

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Download the latest BIN data file",
		Long: `Download the BIN data CSV to the configured data path.

The file is written next to the target and renamed over it once complete, so
a running "bindb serve --wait" never sees a partial file. On failure the
existing file is left untouched.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			url := opts.Config.Data.URL
			if cmd.Flags().Changed("url") {
				url = opts.URL
			}
			n, err := download(cmd.Context(), opts.fs, &http.Client{Timeout: opts.Timeout}, url, opts.Config.Data.Path)
			if err != nil {
				return err
			}
			logger.Infof("bin data saved, bytes: %d, filepath: %s", n, opts.Config.Data.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.URL, "url", "", "download URL (default from data.url)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "download timeout")

	return cmd
}

// download fetches url into dst through a temporary file in dst's directory.
func download(ctx context.Context, fs afero.Fs, client *http.Client, url, dst string) (int64, error) {
	if url == "" {
		return 0, errors.New("data.url is required")
	}
	logger.Infof("downloading bin data, url: %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, errors.Wrapf(err, "download %s", url)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, errors.Wrapf(err, "download %s", url)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, errors.Errorf("download %s: status %d", url, resp.StatusCode)
	}

	dir := filepath.Dir(dst)
	if err = fs.MkdirAll(dir, 0755); err != nil {
		return 0, errors.Wrapf(err, "create data dir %s", dir)
	}
	tmp, err := afero.TempFile(fs, dir, ".bin_data-*.csv")
	if err != nil {
		return 0, errors.Wrap(err, "create temp file")
	}
	n, err := io.Copy(tmp, resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		fs.Remove(tmp.Name())
		return 0, errors.Wrapf(err, "download %s", url)
	}
	if err = fs.Rename(tmp.Name(), dst); err != nil {
		fs.Remove(tmp.Name())
		return 0, errors.Wrapf(err, "replace %s", dst)
	}
	return n, nil
}
