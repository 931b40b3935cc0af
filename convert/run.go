// Package convert drives file to file conversion for the cli tool.
package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"github.com/kleczekr/html-to-shopify-richtext/config"
	"github.com/kleczekr/html-to-shopify-richtext/richtext"
	"github.com/kleczekr/html-to-shopify-richtext/state"
)

// Run is the action behind "convert SOURCE [DESTINATION]". SOURCE is an HTML
// file, a directory to process recursively, or "-" for stdin. Per-file
// failures are logged and collected, a bad file does not stop the batch.
func Run(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Log

	if cmd.NArg() == 0 {
		return fmt.Errorf("no source specified")
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	env.Overwrite = cmd.Bool("overwrite")

	source := cmd.Args().Get(0)
	dest := cmd.Args().Get(1)
	if len(dest) == 0 {
		dest = "."
	}

	if source == "-" {
		return convertStdin(env, log)
	}

	inputs, err := collectInputs(source)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		log.Warn("No HTML files to process", zap.String("source", source))
		return nil
	}

	var result error
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return multierr.Append(result, err)
		}
		if err := convertFile(in, dest, env, log); err != nil {
			log.Error("Conversion failed", zap.String("source", in), zap.Error(err))
			result = multierr.Append(result, fmt.Errorf("unable to convert '%s': %w", in, err))
		}
	}
	return result
}

// collectInputs expands source into the list of files to process. For a
// directory all .html/.htm files under it are taken in natural order,
// symbolic links are not followed.
func collectInputs(source string) ([]string, error) {
	fi, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("unable to access source '%s': %w", source, err)
	}
	if !fi.IsDir() {
		return []string{source}, nil
	}

	var files []string
	err = filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".html", ".htm":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to scan source directory '%s': %w", source, err)
	}
	sort.Sort(natural.StringSlice(files))
	return files, nil
}

func convertFile(srcName, destDir string, env *state.LocalEnv, log *zap.Logger) error {
	f, err := os.Open(srcName)
	if err != nil {
		return fmt.Errorf("unable to open source: %w", err)
	}
	defer f.Close()

	data, err := convertReader(f, env, log)
	if err != nil {
		return err
	}

	outName, err := expandOutputName(env.Cfg.Document.OutputNameTemplate, srcName)
	if err != nil {
		return fmt.Errorf("unable to expand output name template: %w", err)
	}
	outPath := filepath.Join(destDir, config.CleanFileName(outName))

	if !env.Overwrite {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("destination '%s' already exists, use --overwrite to continue", outPath)
		}
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("unable to create destination directory: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("unable to write destination: %w", err)
	}

	log.Info("Converted", zap.String("source", srcName), zap.String("output", outPath))
	return nil
}

func convertStdin(env *state.LocalEnv, log *zap.Logger) error {
	data, err := convertReader(os.Stdin, env, log)
	if err != nil {
		return fmt.Errorf("unable to convert stdin: %w", err)
	}
	_, err = os.Stdout.Write(append(data, '\n'))
	return err
}

// convertReader reads HTML from r, sniffing its encoding the way browsers
// do, and returns the serialized rich text document.
func convertReader(r io.Reader, env *state.LocalEnv, log *zap.Logger) ([]byte, error) {
	cr, err := charset.NewReader(r, "text/html")
	if err != nil {
		return nil, fmt.Errorf("unable to determine input encoding: %w", err)
	}
	fragment, err := io.ReadAll(cr)
	if err != nil {
		return nil, fmt.Errorf("unable to read source: %w", err)
	}

	data, err := richtext.ConvertJSON(string(fragment), log)
	if err != nil {
		return nil, err
	}

	if env.Cfg.Document.Pretty {
		// json.Indent keeps key order, output stays deterministic
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return nil, fmt.Errorf("unable to indent output: %w", err)
		}
		return buf.Bytes(), nil
	}
	return data, nil
}
