// Package dataset provides the identifiers that are audited and seeded as
// practical examples, either the built-in set or one loaded from a file.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is one identifier to audit under a category label.
type Entry struct {
	Category   string `yaml:"category"`
	Identifier string `yaml:"identifier"`
}

// file is the YAML document shape: a top-level examples list.
type file struct {
	Examples []Entry `yaml:"examples"`
}

// Default returns the built-in example set, good and bad names for every
// category, in seeding order.
func Default() []Entry {
	return []Entry{
		// Views
		{"View", "vwUsuarioProcesso"},
		{"View", "vmProcessoUsuario"},
		{"View", "ViewUsuarios"},
		{"View", "ViewMatUsuario"},
		{"View", "vw_usuario_log"},

		// Tables
		{"Tabela", "Veiculo"},
		{"Tabela", "tbVeiculo"},
		{"Tabela", "tabela_veiculos"},
		{"Tabela", "LogParcelaDebito"},
		{"Tabela", "tmpRestricaoVeiculo"},
		{"Tabela", "Veiculos"},

		// Procedures
		{"Procedure", "BatchConsumoServicoWebS"},
		{"Procedure", "VerificaAdvertenciaS"},
		{"Procedure", "VerificaAdvertenciaS.scp"},
		{"Procedure", "CalculaMulta"},
		{"Procedure", "AtualizarDadosCliente"},
		{"Procedure", "PopulaVeiculoRoubadoSDS"},

		// Keys
		{"PK", "pkVeiculo"},
		{"PK", "id"},
		{"PK", "id_veiculo"},
		{"FK", "fkVeiculoCategoria"},
		{"FK", "fkVeiculo"},
		{"FK", "FKveiculo"},
		{"FK", "FK_Carro"},
	}
}

// Load reads entries from a .yaml/.yml or .csv file.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided by design
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	var entries []Entry
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		entries, err = decodeYAML(f)
	case ".csv":
		entries, err = decodeCSV(f)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q (want .yaml, .yml or .csv)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}

	return normalize(entries), nil
}

// decodeYAML accepts either {examples: [...]} or a bare list.
func decodeYAML(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		var entries []Entry
		if err := root.Decode(&entries); err != nil {
			return nil, err
		}
		return entries, nil
	}

	var f file
	if err := root.Decode(&f); err != nil {
		return nil, err
	}
	return f.Examples, nil
}

// decodeCSV expects a header row naming the category and identifier columns.
func decodeCSV(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	catCol, idCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "category":
			catCol = i
		case "identifier":
			idCol = i
		}
	}
	if catCol < 0 || idCol < 0 {
		return nil, fmt.Errorf("csv header must contain category and identifier columns, got %v", header)
	}

	var entries []Entry
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) <= catCol || len(rec) <= idCol {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected at least %d fields", line, max(catCol, idCol)+1)
		}
		entries = append(entries, Entry{Category: rec[catCol], Identifier: rec[idCol]})
	}
	return entries, nil
}

// normalize trims category labels and drops blank rows.
// Identifiers are kept literally so whitespace mistakes are audited as written.
func normalize(entries []Entry) []Entry {
	out := entries[:0]
	for _, e := range entries {
		e.Category = strings.TrimSpace(e.Category)
		if e.Category == "" && e.Identifier == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}
