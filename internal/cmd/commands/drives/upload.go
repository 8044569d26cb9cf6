package drives

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/atriumhq/atrium-go/internal/cmd/base"
	"github.com/atriumhq/atrium-go/pkg/drive"
)

type UploadCommand struct {
	*base.Command

	flagDrive      string
	flagPath       string
	flagConcurrent int
}

func (c *UploadCommand) Synopsis() string {
	return "Upload files into a drive"
}

func (c *UploadCommand) Help() string {
	return `Usage: atrium drives upload -drive=<id> [options] <file> [<file> ...]

  Upload one or more local files into a drive. Each file is uploaded
  directly to storage through a presigned URL; files that fail do not
  abort the rest of the batch.

Options:

  -config=<path>    Path to the HCL configuration file.
  -drive=<id>       ID of the target drive (required).
  -path=<path>      Target directory inside the drive.
  -concurrent=<n>   Maximum simultaneous uploads (0 = unlimited).`
}

func (c *UploadCommand) Run(args []string) int {
	f := c.FlagSet("drives upload")
	f.StringVar(&c.flagDrive, "drive", "", "")
	f.StringVar(&c.flagPath, "path", "", "")
	f.IntVar(&c.flagConcurrent, "concurrent", 0, "")
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if c.flagDrive == "" {
		c.UI.Error("the -drive flag is required")
		return 1
	}
	paths := f.Args()
	if len(paths) == 0 {
		c.UI.Error("at least one file argument is required")
		return 1
	}

	client, err := c.Client()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	fs := afero.NewOsFs()
	files := make([]drive.FileSource, 0, len(paths))
	for _, path := range paths {
		source, err := drive.NewFileSource(fs, path)
		if err != nil {
			c.UI.Error(err.Error())
			return 1
		}
		files = append(files, source)
	}

	uploader := client.DriveUploaderByID(c.flagDrive)
	result, err := uploader.UploadFiles(context.Background(), files, &drive.UploadOptions{
		Path:          c.flagPath,
		MaxConcurrent: c.flagConcurrent,
		Progress: func(job *drive.UploadJob, pct float64) {
			c.Log.Debug("upload progress", "file", job.Name, "percent", fmt.Sprintf("%.0f", pct))
		},
	})
	if err != nil {
		c.UI.Error(fmt.Sprintf("upload failed: %v", err))
		return 1
	}

	for _, job := range result.Jobs {
		c.UI.Output(fmt.Sprintf("%-40s %s", job.Name, job.Status()))
	}
	for _, name := range result.Skipped {
		c.UI.Warn(fmt.Sprintf("%-40s skipped (empty file)", name))
	}
	if err := result.Err(); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	c.UI.Info(result.Message)
	return 0
}
