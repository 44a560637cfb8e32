package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"syscall"

	"github.com/fivetwenty-io/sophos-partner-client/pkg/sophos"
	"github.com/fivetwenty-io/sophos-partner-client/pkg/sophosclient"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Output format constants.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
)

// CreateClient builds a sophos.Client from flags and environment. When the
// client secret is absent and stdin is a terminal, the user is prompted for
// it rather than failing outright.
func CreateClient() (sophos.Client, error) {
	clientID := viper.GetString("client-id")
	clientSecret := viper.GetString("client-secret")

	if clientID != "" && clientSecret == "" && term.IsTerminal(int(syscall.Stdin)) {
		secret, err := promptForSecret()
		if err != nil {
			return nil, err
		}

		clientSecret = secret
	}

	config := &sophos.Config{
		ClientID:           clientID,
		ClientSecret:       clientSecret,
		TokenURL:           viper.GetString("token-url"),
		PartnerAPIEndpoint: viper.GetString("api"),
		Debug:              viper.GetBool("debug"),
		Logger:             newLogger(),
	}

	client, err := sophosclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

func promptForSecret() (string, error) {
	fmt.Fprint(os.Stderr, "Client secret: ")

	byteSecret, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read client secret: %w", err)
	}

	fmt.Fprintln(os.Stderr)

	return string(byteSecret), nil
}

// newLogger returns a sophos.Logger backed by zap. Warnings (per-tenant
// fetch failures) always surface; debug output needs --verbose or --debug.
func newLogger() sophos.Logger {
	var (
		logger *zap.Logger
		err    error
	)

	if viper.GetBool("verbose") || viper.GetBool("debug") {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}

	if err != nil {
		return nil
	}

	return &zapLogger{logger: logger}
}

// zapLogger adapts zap to the sophos.Logger interface.
type zapLogger struct {
	logger *zap.Logger
}

func (l *zapLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, zapFields(fields)...)
}

func (l *zapLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, zapFields(fields)...)
}

func (l *zapLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, zapFields(fields)...)
}

func (l *zapLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, zapFields(fields)...)
}

func zapFields(fields map[string]interface{}) []zap.Field {
	zapped := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		zapped = append(zapped, zap.Any(key, value))
	}

	return zapped
}

// StandardJSONRenderer writes data to stdout as indented JSON.
func StandardJSONRenderer(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes data to stdout as YAML.
func StandardYAMLRenderer(data interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding YAML output: %w", err)
	}

	return encoder.Close()
}

// exportEnabled reports whether operations should write CSV files.
func exportEnabled() bool {
	return !viper.GetBool("no-csv")
}

// reportExport prints the written CSV path, or the failure. Export failures
// are reported, never fatal.
func reportExport(path string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: CSV export failed: %v\n", err)

		return
	}

	fmt.Printf("Data exported to: %s\n", path)
}
