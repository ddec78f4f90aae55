package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pdfdocx/internal/convert"
	"pdfdocx/internal/model"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.pdf>",
	Short: "Convert a PDF file to DOCX",
	Long: `Convert reads a PDF file and writes a DOCX next to it (or to --output).
Use --pages to convert a range such as 2-4; pages are 1-indexed and inclusive.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := args[0]
		data, err := os.ReadFile(in)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		mode, err := convert.ParseMode(viper.GetString("mode"))
		if err != nil {
			return err
		}
		pages, err := convert.ParsePageRange(viper.GetString("pages"))
		if err != nil {
			return err
		}

		svc := newService(cmd.ErrOrStderr())
		res, err := svc.Convert(cmd.Context(),
			model.UploadedDocument{Filename: filepath.Base(in), Data: data},
			model.ConversionRequest{Mode: mode, Pages: pages},
		)
		if err != nil {
			return err
		}

		out := viper.GetString("output")
		if out == "" {
			out = filepath.Join(filepath.Dir(in), res.Filename)
		}
		if err := writeOutput(in, out, res.Data); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d page(s), %s\n", out, res.PageCount, mode.Label())
		return nil
	},
}

// writeOutput writes data to out through a temporary file in the same
// directory, so a failed write never leaves a truncated file behind.
// It refuses to replace the input document.
func writeOutput(in, out string, data []byte) error {
	if same, err := samePath(in, out); err != nil {
		return err
	} else if same {
		return fmt.Errorf("output %s would overwrite the input file", out)
	}

	tmp, err := os.CreateTemp(filepath.Dir(out), ".pdf2docx-*.docx")
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := os.Rename(tmp.Name(), out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	if absA == absB {
		return true, nil
	}
	infoA, errA := os.Stat(absA)
	infoB, errB := os.Stat(absB)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB), nil
}

func init() {
	convertCmd.Flags().String("mode", string(model.ModeTextPreserving), "conversion mode: text or image")
	convertCmd.Flags().String("pages", "", "page range such as 2-4 (default: all pages)")
	convertCmd.Flags().Float64("dpi", convert.DefaultDPI, "render resolution for image mode")
	convertCmd.Flags().Duration("timeout", 0, "abort the conversion after this long (0 disables)")
	convertCmd.Flags().StringP("output", "o", "", "output path (default: input name with .docx)")

	for _, name := range []string{"mode", "pages", "dpi", "timeout", "output"} {
		_ = viper.BindPFlag(name, convertCmd.Flags().Lookup(name))
	}

	rootCmd.AddCommand(convertCmd)
}
