package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgt24/orderboard/internal/ports"
)

// InputFormat — допустимые форматы входного файла.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// ValidateFile — валидирует файл как JSON (один заказ либо массив заказов,
// как в экспорте кэша) или JSONL; валидный вывод пишет в writer.
func ValidateFile(ctx context.Context, validator ports.OrderValidator, filePath string, format InputFormat, ow io.Writer) (string, error) {
	// auto по расширению
	if format == FormatAuto {
		switch strings.ToLower(filepath.Ext(filePath)) {
		case ".jsonl":
			format = FormatJSONL
		default:
			format = FormatJSON
		}
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatJSON:
		raw, err := io.ReadAll(file)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		return validateJSONBytes(ctx, validator, raw, ow)

	case FormatJSONL:
		result, err := ValidateJSONLStream(ctx, validator, file, ow)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d valid / %d invalid", result.ValidLinesCount, result.InvalidLinesCount), nil

	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// validateJSONBytes — либо один объект заказа, либо массив (снимок кэша).
func validateJSONBytes(ctx context.Context, validator ports.OrderValidator, raw []byte, ow io.Writer) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var rawItems []json.RawMessage
		if err := json.Unmarshal(raw, &rawItems); err != nil {
			return "", fmt.Errorf("invalid json array: %w", err)
		}
		valid, invalid := 0, 0
		for _, item := range rawItems {
			order, err := ValidateOrderFromJSON(ctx, validator, item)
			if err != nil {
				invalid++
				continue
			}
			canonical, _ := json.Marshal(order)
			if _, err := ow.Write(append(canonical, '\n')); err != nil {
				return "", fmt.Errorf("write json: %w", err)
			}
			valid++
		}
		summary := fmt.Sprintf("%d valid / %d invalid", valid, invalid)
		if invalid > 0 {
			return summary, fmt.Errorf("%d invalid records", invalid)
		}
		return summary, nil
	}

	order, err := ValidateOrderFromJSON(ctx, validator, raw)
	if err != nil {
		return "0 valid / 1 invalid", err
	}
	canonical, _ := json.Marshal(order)
	if _, err := ow.Write(append(canonical, '\n')); err != nil {
		return "", fmt.Errorf("write json: %w", err)
	}
	return "1 valid / 0 invalid", nil
}
