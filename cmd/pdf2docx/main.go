// Command pdf2docx converts PDF files to DOCX offline using the same
// conversion pipeline as the HTTP service.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pdfdocx/internal/logging"
	"pdfdocx/internal/pdfkit"
	"pdfdocx/internal/service"
)

var rootCmd = &cobra.Command{
	Use:   "pdf2docx",
	Short: "Convert PDF documents to DOCX",
	Long: `pdf2docx converts PDF documents to DOCX with one of two strategies:

  text   rebuild editable paragraphs from the PDF text layer (default)
  image  embed every page as a full-page picture for an exact visual copy

Flags can also be set through PDF2DOCX_* environment variables or a
pdf2docx.yaml config file.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdf2docx.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log conversion events to stderr")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf2docx")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("PDF2DOCX")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newService builds a stateless conversion service for one CLI run.
func newService(errOut io.Writer) service.ConversionService {
	log := slog.New(slog.NewJSONHandler(io.Discard, nil))
	if viper.GetBool("verbose") {
		log = logging.New(errOut, time.Local)
	}
	return service.NewConversionService(pdfkit.NewDispatcher(viper.GetFloat64("dpi")), pdfkit.NewInspector(), service.Options{
		Logger:  log,
		Timeout: viper.GetDuration("timeout"),
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
