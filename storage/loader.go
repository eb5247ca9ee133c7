package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"ubi-analysis/models"
	"ubi-analysis/utils"
)

// WeightVector decodes a population weight vector written either flat
// ([a, b]) or as a column of single-element rows ([[a], [b]]).
type WeightVector []float64

func (w *WeightVector) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: weight vector must be a sequence", node.Line)
	}
	out := make([]float64, 0, len(node.Content))
	for _, item := range node.Content {
		elem := item
		if item.Kind == yaml.SequenceNode {
			if len(item.Content) != 1 {
				return fmt.Errorf("line %d: nested weight must hold exactly one value, got %d",
					item.Line, len(item.Content))
			}
			elem = item.Content[0]
		}
		if elem.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: weight must be a number", elem.Line)
		}
		var v float64
		if err := elem.Decode(&v); err != nil {
			return fmt.Errorf("line %d: %w", elem.Line, err)
		}
		out = append(out, v)
	}
	*w = out
	return nil
}

type ssVarsDoc struct {
	InterestRate    *float64    `yaml:"rss"`
	Wage            *float64    `yaml:"wss"`
	Factor          *float64    `yaml:"factor_ss"`
	Capital         [][]float64 `yaml:"bssmat_s"`
	Labor           [][]float64 `yaml:"nssmat"`
	Consumption     [][]float64 `yaml:"cssmat"`
	BeforeTaxIncome [][]float64 `yaml:"yss_before_tax_mat"`
	Bequests        [][]float64 `yaml:"bqssmat"`
	Transfers       [][]float64 `yaml:"trssmat"`
}

type paramsDoc struct {
	StartAge     *int          `yaml:"start_age"`
	Lambdas      WeightVector  `yaml:"lambdas"`
	Omegas       WeightVector  `yaml:"omega_SS"`
	Productivity [][]float64   `yaml:"e"`
	TaxFuncType  string        `yaml:"tax_func_type"`
	ETRParams    [][][]float64 `yaml:"etr_params"`
}

// ScenarioLoader reads scenario bundles from directories.
type ScenarioLoader struct {
	ssVarsFile string
	paramsFile string
	logger     *utils.Logger
}

// NewScenarioLoader creates a loader for bundles holding the two named files.
func NewScenarioLoader(ssVarsFile, paramsFile string, logger *utils.Logger) *ScenarioLoader {
	return &ScenarioLoader{ssVarsFile: ssVarsFile, paramsFile: paramsFile, logger: logger}
}

// Load reads and validates the bundle in dir.
func (l *ScenarioLoader) Load(name, dir string) (*models.Scenario, error) {
	var vars ssVarsDoc
	if err := readYAML(filepath.Join(dir, l.ssVarsFile), &vars); err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	var params paramsDoc
	if err := readYAML(filepath.Join(dir, l.paramsFile), &params); err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	result, err := vars.toResult()
	if err != nil {
		return nil, fmt.Errorf("load %s: %s: %w", name, l.ssVarsFile, err)
	}
	p, err := params.toParams()
	if err != nil {
		return nil, fmt.Errorf("load %s: %s: %w", name, l.paramsFile, err)
	}

	s := &models.Scenario{Name: name, Result: result, Params: p}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	ages, skills := result.Dims()
	l.logger.Debug("[loader] %s: %d ages x %d skill types, r=%g w=%g factor=%g, tax func %s",
		name, ages, skills, result.InterestRate, result.Wage, result.Factor, p.TaxFuncType)
	return s, nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %q: %w", path, err)
	}
	return nil
}

func (d *ssVarsDoc) toResult() (*models.ScenarioResult, error) {
	scalars := []struct {
		name string
		v    *float64
	}{{"rss", d.InterestRate}, {"wss", d.Wage}, {"factor_ss", d.Factor}}
	for _, s := range scalars {
		if s.v == nil {
			return nil, fmt.Errorf("%s missing", s.name)
		}
	}

	r := &models.ScenarioResult{
		InterestRate: *d.InterestRate,
		Wage:         *d.Wage,
		Factor:       *d.Factor,
	}
	fields := []struct {
		name string
		rows [][]float64
		dst  **mat.Dense
	}{
		{"bssmat_s", d.Capital, &r.Capital},
		{"nssmat", d.Labor, &r.Labor},
		{"cssmat", d.Consumption, &r.Consumption},
		{"yss_before_tax_mat", d.BeforeTaxIncome, &r.BeforeTaxIncome},
		{"bqssmat", d.Bequests, &r.Bequests},
		{"trssmat", d.Transfers, &r.Transfers},
	}
	for _, f := range fields {
		m, err := toDense(f.name, f.rows)
		if err != nil {
			return nil, err
		}
		*f.dst = m
	}
	return r, nil
}

func (d *paramsDoc) toParams() (*models.ScenarioParams, error) {
	if len(d.Lambdas) == 0 {
		return nil, fmt.Errorf("lambdas missing")
	}
	if len(d.Omegas) == 0 {
		return nil, fmt.Errorf("omega_SS missing")
	}
	e, err := toDense("e", d.Productivity)
	if err != nil {
		return nil, err
	}
	kind, err := parseTaxFuncType(d.TaxFuncType)
	if err != nil {
		return nil, err
	}
	if len(d.ETRParams) == 0 {
		return nil, fmt.Errorf("etr_params missing")
	}

	startAge := models.DefaultStartAge
	if d.StartAge != nil {
		startAge = *d.StartAge
	}
	return &models.ScenarioParams{
		StartAge:     startAge,
		Lambdas:      d.Lambdas,
		Omegas:       d.Omegas,
		Productivity: e,
		TaxFuncType:  kind,
		ETRParams:    d.ETRParams,
	}, nil
}

func parseTaxFuncType(s string) (models.TaxFuncType, error) {
	for _, k := range []models.TaxFuncType{models.TaxFuncLinear, models.TaxFuncGS, models.TaxFuncDEP} {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown tax_func_type %q", s)
}

// toDense converts a rectangular, non-empty row list into a matrix.
func toDense(name string, rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%s missing or empty", name)
	}
	cols := len(rows[0])
	flat := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%s row %d has %d values, want %d", name, i, len(row), cols)
		}
		flat = append(flat, row...)
	}
	return mat.NewDense(len(rows), cols, flat), nil
}
