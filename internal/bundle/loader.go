package bundle

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/nurpe/bill-studio/internal/model"
)

// LoadInvoice reads the telecom invoice bundle. A missing or unreadable
// bundle is not fatal: it is logged and an empty invoice is returned.
func LoadInvoice(path string, log zerolog.Logger) *model.InvoiceDocument {
	doc := model.NewInvoiceDocument()
	if err := load(path, doc); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("invoice data not loaded, using empty defaults")
		return model.NewInvoiceDocument()
	}
	if doc.Items == nil {
		doc.Items = []model.LineItem{}
	}
	log.Info().Str("path", path).Int("items", len(doc.Items)).Msg("invoice data loaded")
	return doc
}

// LoadFuel reads the fuel bill bundle with the same fallback as LoadInvoice.
func LoadFuel(path string, log zerolog.Logger) *model.FuelBillDocument {
	doc := model.NewFuelBillDocument()
	if err := load(path, doc); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("fuel data not loaded, using empty defaults")
		return model.NewFuelBillDocument()
	}
	log.Info().Str("path", path).Msg("fuel data loaded")
	return doc
}

func load(path string, into interface{}) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("no bundle path configured")
	}
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read bundle: %w", err)
	}
	if err := v.Unmarshal(into); err != nil {
		return fmt.Errorf("decode bundle: %w", err)
	}
	return nil
}
