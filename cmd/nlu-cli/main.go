package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/supportbot/nlu-go/internal/model"
	"github.com/supportbot/nlu-go/internal/nlu"
	"github.com/supportbot/nlu-go/internal/schema"
	"github.com/supportbot/nlu-go/internal/service"
	"github.com/supportbot/nlu-go/pkg/logger"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd 构建命令行入口
func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var keywordsFile string
	var logLevel string

	root := &cobra.Command{
		Use:           "nlu-cli",
		Short:         "Persian intent parser for the sales assistant",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.PersistentFlags().StringVar(&keywordsFile, "keywords", "", "keyword tables YAML (defaults to built-in tables)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	parseCmd := &cobra.Command{
		Use:   "parse [message...]",
		Short: "Parse messages and print the JSON envelope, one per line",
		Long: "Each argument is parsed as one message. With no arguments, every line\n" +
			"read from stdin is parsed as one message.",
		RunE: func(cmd *cobra.Command, args []string) error {
			zapLogger, err := logger.NewLogger(logLevel)
			if err != nil {
				return err
			}
			defer zapLogger.Sync()

			parser, err := newParser(keywordsFile, zapLogger)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)

			if len(args) > 0 {
				for _, msg := range args {
					if err := enc.Encode(envelope(cmd.Context(), parser, msg)); err != nil {
						return err
					}
				}
				return nil
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Buffer(make([]byte, 64*1024), 1024*1024)
			for scanner.Scan() {
				if err := enc.Encode(envelope(cmd.Context(), parser, scanner.Text())); err != nil {
					return err
				}
			}
			return scanner.Err()
		},
	}

	tablesCmd := &cobra.Command{
		Use:   "tables",
		Short: "Print the effective keyword tables as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := loadTables(keywordsFile)
			if err != nil {
				return err
			}
			classifier, err := nlu.NewClassifier(tables)
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(classifier.Tables())
		},
	}

	root.AddCommand(parseCmd, tablesCmd)
	return root
}

func loadTables(path string) (*nlu.Tables, error) {
	if path == "" {
		return nlu.DefaultTables(), nil
	}
	tables, err := nlu.LoadTables(path)
	if err != nil {
		return nil, fmt.Errorf("加载关键词表失败: %w", err)
	}
	return tables, nil
}

func newParser(keywordsFile string, zapLogger *zap.Logger) (*service.ParserService, error) {
	tables, err := loadTables(keywordsFile)
	if err != nil {
		return nil, err
	}

	classifier, err := nlu.NewClassifier(tables)
	if err != nil {
		return nil, err
	}

	catalog := schema.NewRegistry(zapLogger)
	if err := schema.RegisterBuiltinIntents(catalog, zapLogger); err != nil {
		return nil, err
	}

	return service.NewParserService(classifier, catalog, nil, zapLogger), nil
}

// envelope 与 HTTP 接口返回相同结构
func envelope(ctx context.Context, parser *service.ParserService, message string) interface{} {
	message = strings.TrimRight(message, "\r")

	result, err := parser.Parse(ctx, message, "cli")
	if errors.Is(err, service.ErrEmptyMessage) {
		return model.ErrorResponse{Error: model.NoMessageError}
	}
	if err != nil {
		return model.ErrorResponse{Error: err.Error()}
	}
	return model.ParseResponse{OK: true, ParsedJSON: result}
}
