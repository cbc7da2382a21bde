// Package parse implements the Parser interface.
// It reads the export.data JSON document of a 1Password export and
// flattens accounts[0].vaults[0].items into records.
//
// Only the first account and its first vault are read. Items that cannot
// be decoded are skipped with a warning so one bad entry never aborts
// the whole conversion.
package parse

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gaurav-prasanna/onepux/core"
	jsoniter "github.com/json-iterator/go"
)

// DefaultTitle is used for items without a title.
const DefaultTitle = "Untitled"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// document mirrors the parts of export.data that are read.
// Items stay raw so each one decodes or fails on its own.
type document struct {
	Accounts []struct {
		Vaults []struct {
			Items []jsoniter.RawMessage `json:"items"`
		} `json:"vaults"`
	} `json:"accounts"`
}

type item struct {
	Overview *struct {
		Title *string `json:"title"`
		URL   *string `json:"url"`
	} `json:"overview"`
	Details *struct {
		LoginFields []jsoniter.RawMessage `json:"loginFields"`
	} `json:"details"`
}

type loginField struct {
	Name  *string `json:"name"`
	Value *string `json:"value"`
}

// DocumentParser decodes 1Password export documents.
type DocumentParser struct {
	logger *slog.Logger
}

// New creates a DocumentParser that reports skipped items to logger.
func New(logger *slog.Logger) *DocumentParser {
	return &DocumentParser{logger: logger}
}

// Parse reads documentPath and returns its records in source order.
func (p *DocumentParser) Parse(documentPath string) ([]core.Record, error) {
	data, err := os.ReadFile(documentPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", core.ErrMalformedDocument, documentPath, err)
	}
	return p.ParseBytes(data)
}

// ParseBytes decodes an in-memory export document.
func (p *DocumentParser) ParseBytes(data []byte) ([]core.Record, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: document is not valid UTF-8", core.ErrMalformedDocument)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON in export.data: %w", core.ErrMalformedDocument, err)
	}

	if len(doc.Accounts) == 0 {
		return nil, core.ErrEmptyAccountList
	}
	vaults := doc.Accounts[0].Vaults
	if len(vaults) == 0 {
		return nil, core.ErrEmptyVaultList
	}

	items := vaults[0].Items
	p.logger.Info("processing items", "count", len(items))

	records := make([]core.Record, 0, len(items))
	for i, raw := range items {
		record, err := parseItem(raw)
		if err != nil {
			p.logger.Warn("skipping item", "index", i, "error", err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func parseItem(raw jsoniter.RawMessage) (core.Record, error) {
	if string(bytes.TrimSpace(raw)) == "null" {
		return core.Record{}, errors.New("item is null")
	}

	var it item
	if err := json.Unmarshal(raw, &it); err != nil {
		return core.Record{}, fmt.Errorf("decoding item: %w", err)
	}

	record := core.Record{Title: DefaultTitle}
	if it.Overview != nil {
		if it.Overview.Title != nil && *it.Overview.Title != "" {
			record.Title = *it.Overview.Title
		}
		if it.Overview.URL != nil {
			record.URL = *it.Overview.URL
		}
	}
	if it.Details != nil {
		record.Username, record.Password = parseLoginFields(it.Details.LoginFields)
	}
	return record, nil
}

// parseLoginFields scans fields in order; the last username and the last
// password field win. Fields without both a name and a value are ignored.
func parseLoginFields(fields []jsoniter.RawMessage) (username, password string) {
	for _, raw := range fields {
		var f loginField
		if err := json.Unmarshal(raw, &f); err != nil {
			continue
		}
		if f.Name == nil || f.Value == nil {
			continue
		}
		switch strings.ToLower(*f.Name) {
		case "username":
			username = *f.Value
		case "password":
			password = *f.Value
		}
	}
	return username, password
}
